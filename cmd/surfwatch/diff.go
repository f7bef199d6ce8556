package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/hakim/surfwatch/internal/diff"
	"github.com/hakim/surfwatch/internal/models"
	"github.com/hakim/surfwatch/internal/report"
	"github.com/hakim/surfwatch/internal/storage"
	"github.com/spf13/cobra"
)

var diffCmd = &cobra.Command{
	Use:   "diff",
	Short: "Compare two baseline files and report what changed",
	Long: `Compute the change set between two saved baseline snapshots without
running any collection.

This is the offline counterpart of 'surfwatch monitor': it loads both JSON
documents, computes the delta across subdomains, endpoints, and takeover
candidates, escalates it to an alert level, and writes a markdown report.

The old and new snapshot files are given positionally:

  surfwatch diff old_baseline.json new_baseline.json

Use --json to print the structured change set to stdout instead of a report.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOut, _ := cmd.Flags().GetBool("json")

		if cfg == nil {
			return fmt.Errorf("config not loaded. Run 'surfwatch init' first to create config")
		}

		oldBaseline, err := loadBaselineFile(args[0])
		if err != nil {
			return fmt.Errorf("loading old snapshot: %w", err)
		}
		newBaseline, err := loadBaselineFile(args[1])
		if err != nil {
			return fmt.Errorf("loading new snapshot: %w", err)
		}

		if oldBaseline.Domain != newBaseline.Domain {
			fmt.Printf("[!] Warning: snapshots are for different domains (%s vs %s)\n",
				oldBaseline.Domain, newBaseline.Domain)
		}

		fmt.Printf("[*] Old: %d subdomains, %d endpoints, %d takeover candidates\n",
			oldBaseline.SubdomainCount(), oldBaseline.EndpointCount(), len(oldBaseline.Takeovers))
		fmt.Printf("[*] New: %d subdomains, %d endpoints, %d takeover candidates\n",
			newBaseline.SubdomainCount(), newBaseline.EndpointCount(), len(newBaseline.Takeovers))

		cs := diff.Compute(oldBaseline, newBaseline)
		cs.Timestamp = time.Now().UTC().Format("20060102_150405")
		level := diff.Escalate(cs)

		if jsonOut {
			out, err := json.MarshalIndent(cs, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling change set: %w", err)
			}
			fmt.Println(string(out))
			return nil
		}

		if cs.Empty() {
			fmt.Println("[+] No changes detected")
			return nil
		}

		fmt.Printf("[!] Alert level: %s\n", level)
		fmt.Printf("    New subdomains: %d, removed: %d\n", len(cs.NewSubdomains), len(cs.RemovedSubdomains))
		fmt.Printf("    New endpoints: %d, removed: %d, changed: %d\n",
			len(cs.NewEndpoints), len(cs.RemovedEndpoints), len(cs.ChangedEndpoints))
		fmt.Printf("    New takeovers: %d, resolved: %d\n", len(cs.NewTakeovers), len(cs.ResolvedTakeovers))

		reportPath := storage.ReportPath(cfg.ReportDir, cs.Domain, cs.Timestamp)
		if err := report.WriteChangeReport(cs, level, reportPath); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Printf("[+] Report: %s\n", reportPath)
		return nil
	},
}

func loadBaselineFile(path string) (*models.Baseline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var baseline models.Baseline
	if err := json.Unmarshal(data, &baseline); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &baseline, nil
}

func init() {
	diffCmd.Flags().Bool("json", false, "print the change set as JSON instead of writing a report")
	rootCmd.AddCommand(diffCmd)
}
