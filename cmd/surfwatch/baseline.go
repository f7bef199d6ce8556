package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hakim/surfwatch/internal/models"
	"github.com/hakim/surfwatch/internal/monitor"
	"github.com/hakim/surfwatch/internal/report"
	"github.com/hakim/surfwatch/internal/storage"
	"github.com/spf13/cobra"
)

var baselineCmd = &cobra.Command{
	Use:   "baseline",
	Short: "Capture a baseline snapshot for a domain",
	Long: `Discover subdomains, probe every live endpoint, and check for takeover
candidates, then save the result as the stored baseline for the domain.

Subsequent 'surfwatch monitor' runs compare against this snapshot. Capturing
a new baseline replaces the stored one, so any changes since the previous
baseline will not be reported — use --force to confirm an overwrite.

Examples:
  surfwatch baseline -d example.com
  surfwatch baseline -d example.com --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		domain, _ := cmd.Flags().GetString("domain")
		force, _ := cmd.Flags().GetBool("force")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		if cfg == nil {
			return fmt.Errorf("config not loaded. Run 'surfwatch init' first to create config")
		}
		if domain == "" {
			return fmt.Errorf("domain is required (use -d)")
		}

		// Refuse to silently discard an existing baseline.
		existingPath := storage.BaselinePath(cfg.BaselineDir, domain)
		if _, err := os.Stat(existingPath); err == nil && !force {
			return fmt.Errorf("baseline already exists at %s. Use --force to replace it", existingPath)
		}

		store, err := storage.NewStore(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer store.Close()

		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		m := monitor.New(cfg, store)

		scope := &monitor.Scope{AllowedDomains: cfg.Scope.AllowedDomains}
		if err := scope.ValidateTarget(domain); err != nil {
			return err
		}

		meta := models.NewRunMeta(domain)
		meta.Status = models.StatusRunning
		meta.FirstRun = true
		if err := store.SaveRun(meta); err != nil {
			return fmt.Errorf("saving run record: %w", err)
		}

		baseline, err := m.Collect(ctx, domain)
		if err != nil {
			_ = store.UpdateRunStatus(meta.ID, models.StatusFailed)
			return err
		}

		path, err := storage.SaveBaseline(cfg.BaselineDir, baseline)
		if err != nil {
			_ = store.UpdateRunStatus(meta.ID, models.StatusFailed)
			return err
		}

		meta.SubdomainCount = baseline.SubdomainCount()
		meta.EndpointCount = baseline.EndpointCount()
		meta.TakeoverCount = len(baseline.Takeovers)
		meta.BaselineFile = path
		if err := store.SaveRun(meta); err != nil {
			fmt.Printf("[!] Warning: could not persist run summary: %v\n", err)
		}
		if err := store.UpdateRunStatus(meta.ID, models.StatusComplete); err != nil {
			fmt.Printf("[!] Warning: could not mark run complete: %v\n", err)
		}

		timestamp := time.Now().UTC().Format("20060102_150405")
		reportPath := storage.ReportPath(cfg.ReportDir, domain, timestamp)
		if err := report.WriteBaselineReport(baseline, reportPath); err != nil {
			fmt.Printf("[!] Warning: could not write baseline report: %v\n", err)
		} else {
			fmt.Printf("[+] Report: %s\n", reportPath)
		}

		fmt.Printf("[+] Baseline saved: %s (%d subdomains, %d endpoints, %d takeover candidates)\n",
			path, baseline.SubdomainCount(), baseline.EndpointCount(), len(baseline.Takeovers))
		return nil
	},
}

func init() {
	baselineCmd.Flags().StringP("domain", "d", "", "target domain (required)")
	baselineCmd.Flags().Bool("force", false, "replace an existing baseline")
	baselineCmd.Flags().Duration("timeout", 0, "overall timeout for the capture (0 = none)")
	baselineCmd.MarkFlagRequired("domain")
	rootCmd.AddCommand(baselineCmd)
}
