package main

import (
	"fmt"

	"github.com/hakim/surfwatch/internal/models"
	"github.com/hakim/surfwatch/internal/storage"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show run history for a domain",
	Long: `Display a formatted table of past monitoring runs for a target domain.

Runs are listed newest-first. Each row shows the run ID (truncated), start time,
completion status, collection counts, and the alert level raised.

Use --limit to cap the number of rows shown (default: 10).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		domain, _ := cmd.Flags().GetString("domain")
		limit, _ := cmd.Flags().GetInt("limit")

		if cfg == nil {
			return fmt.Errorf("config not loaded. Run 'surfwatch init' first to create config")
		}

		store, err := storage.NewStore(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer store.Close()

		runs, err := store.ListRuns(domain)
		if err != nil {
			return fmt.Errorf("listing runs for %s: %w", domain, err)
		}

		if len(runs) == 0 {
			fmt.Printf("No run history found for %s\n", domain)
			return nil
		}

		if limit > 0 && len(runs) > limit {
			runs = runs[:limit]
		}

		const separator = "────────────────────────────────────────────────────────────────────────"

		fmt.Printf("\nRun History for %s\n", domain)
		fmt.Println(separator)
		fmt.Printf("  %-3s  %-12s  %-20s  %-10s  %-6s  %-6s  %s\n",
			"#", "Run ID", "Started", "Status", "Subs", "Chgs", "Alert")
		fmt.Println(separator)

		for i, run := range runs {
			id := run.ID
			if len(id) > 12 {
				id = id[:12]
			}

			alert := string(run.Alert)
			if run.FirstRun {
				alert = "first run"
			} else if alert == "" {
				alert = "-"
			}

			fmt.Printf("  %-3d  %-12s  %-20s  %-10s  %-6d  %-6d  %s\n",
				i+1,
				id,
				run.StartedAt.Format("2006-01-02 15:04:05"),
				run.Status,
				run.SubdomainCount,
				run.ChangeCount,
				alert)
		}
		fmt.Println(separator)

		critical := 0
		for _, run := range runs {
			if run.Alert == models.AlertCritical {
				critical++
			}
		}
		if critical > 0 {
			fmt.Printf("  %d run(s) raised critical alerts\n", critical)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	historyCmd.Flags().StringP("domain", "d", "", "target domain (required)")
	historyCmd.Flags().Int("limit", 10, "max rows to show")
	historyCmd.MarkFlagRequired("domain")
	rootCmd.AddCommand(historyCmd)
}
