package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/hakim/surfwatch/internal/tools"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check for external discovery tools",
	Long: `Verify which external discovery tools are installed and available.
Shows installation status, version information, and instructions for
missing tools.

All tools are optional: discovery falls back to certificate transparency
logs alone when none are installed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		results := tools.CheckAll()

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Tool\tStatus\tVersion\tPurpose")
		fmt.Fprintln(w, "----\t------\t-------\t-------")

		foundCount := 0
		for _, result := range results {
			status := "[-]"
			version := "-"
			if result.Found {
				status = "[+]"
				foundCount++
				if result.Version != "" && result.Version != "unknown" {
					version = result.Version
				}
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				result.Tool.Name, status, version, result.Tool.Purpose)
		}
		w.Flush()

		fmt.Println()
		missing := false
		for _, result := range results {
			if !result.Found {
				if !missing {
					fmt.Println("Missing tools:")
					missing = true
				}
				fmt.Printf("  %s\n    Install: %s\n", result.Tool.Name, result.Tool.InstallCmd)
			}
		}

		fmt.Println()
		fmt.Printf("Summary: %d/%d tools found\n", foundCount, len(results))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
