package main

import (
	"context"
	"fmt"
	"time"

	"github.com/hakim/surfwatch/internal/models"
	"github.com/hakim/surfwatch/internal/monitor"
	"github.com/hakim/surfwatch/internal/storage"
	"github.com/spf13/cobra"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Run a monitoring pass and report changes",
	Long: `Capture a fresh snapshot for each target domain and compare it against the
stored baseline.

A domain without a stored baseline gets one established (first run, no diff).
Otherwise the change set is computed, escalated to an alert level, written to
the diff directory as JSON and the report directory as markdown, and — when
the level meets notify.min_level — delivered to the configured webhook. The
fresh snapshot then replaces the stored baseline.

With no -d flag, every domain from targets.domains and targets.domains_file
is monitored in sequence.

Examples:
  surfwatch monitor -d example.com
  surfwatch monitor
  surfwatch monitor --timeout 30m`,
	RunE: func(cmd *cobra.Command, args []string) error {
		domain, _ := cmd.Flags().GetString("domain")
		timeout, _ := cmd.Flags().GetDuration("timeout")

		if cfg == nil {
			return fmt.Errorf("config not loaded. Run 'surfwatch init' first to create config")
		}

		var targets []string
		if domain != "" {
			targets = []string{domain}
		} else {
			var err error
			targets, err = cfg.GetTargets()
			if err != nil {
				return err
			}
			if len(targets) == 0 {
				return fmt.Errorf("no targets configured. Add domains to surfwatch.yaml or pass -d")
			}
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

		failed := 0
		for i, target := range targets {
			fmt.Printf("[*] Monitoring %s (%d/%d)\n", target, i+1, len(targets))

			result, err := m.Run(ctx, target)
			if err != nil {
				failed++
				fmt.Printf("[!] %s failed: %v\n", target, err)
				if ctx.Err() != nil {
					return fmt.Errorf("monitoring aborted: %w", ctx.Err())
				}
				continue
			}

			printRunSummary(result)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d target(s) failed", failed, len(targets))
		}
		return nil
	},
}

func printRunSummary(result *monitor.RunResult) {
	if result.Meta.FirstRun {
		fmt.Printf("[+] First run for %s complete in %s: baseline established (%d subdomains, %d endpoints)\n",
			result.Meta.Domain, result.Elapsed.Round(time.Second),
			result.Meta.SubdomainCount, result.Meta.EndpointCount)
		return
	}

	if result.Changes == nil || result.Changes.Empty() {
		fmt.Printf("[+] %s unchanged (%s)\n", result.Meta.Domain, result.Elapsed.Round(time.Second))
		return
	}

	fmt.Printf("[+] %s: %d change(s), alert level %s (%s)\n",
		result.Meta.Domain, result.Meta.ChangeCount, result.Alert, result.Elapsed.Round(time.Second))
	if result.Alert.AtLeast(models.AlertCritical) {
		fmt.Printf("[!] CRITICAL findings — review %s\n", result.ReportFile)
	} else if result.ReportFile != "" {
		fmt.Printf("[*] Report: %s\n", result.ReportFile)
	}
}

func init() {
	monitorCmd.Flags().StringP("domain", "d", "", "single target domain (default: all configured targets)")
	monitorCmd.Flags().Duration("timeout", 0, "overall timeout for the whole pass (0 = none)")
	rootCmd.AddCommand(monitorCmd)
}
