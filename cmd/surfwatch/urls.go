package main

import (
	"context"
	"fmt"
	"time"

	"github.com/hakim/surfwatch/internal/report"
	"github.com/hakim/surfwatch/internal/storage"
	"github.com/hakim/surfwatch/internal/wayback"
	"github.com/spf13/cobra"
)

var urlsCmd = &cobra.Command{
	Use:   "urls",
	Short: "Analyze historical URLs for a domain",
	Long: `Fetch archived URLs for a domain from the Wayback Machine CDX index and
classify them against the risk rules: exposed backups, config files,
credentials, source code, and interesting query parameters.

This surfaces paths that existed at some point — many still respond, and even
dead ones reveal naming conventions worth probing.

Examples:
  surfwatch urls -d example.com
  surfwatch urls -d example.com --limit 5000 --top 20`,
	RunE: func(cmd *cobra.Command, args []string) error {
		domain, _ := cmd.Flags().GetString("domain")
		limit, _ := cmd.Flags().GetInt("limit")
		top, _ := cmd.Flags().GetInt("top")

		if cfg == nil {
			return fmt.Errorf("config not loaded. Run 'surfwatch init' first to create config")
		}
		if domain == "" {
			return fmt.Errorf("domain is required (use -d)")
		}

		if limit <= 0 {
			limit = cfg.Wayback.MaxResults
		}
		timeout, _ := time.ParseDuration(cfg.Wayback.Timeout)

		fmt.Printf("[*] Fetching archived URLs for %s (limit %d)\n", domain, limit)
		urls, err := wayback.FetchURLs(context.Background(), domain, wayback.Config{
			MaxResults: limit,
			Timeout:    timeout,
		})
		if err != nil {
			return fmt.Errorf("fetching archived URLs: %w", err)
		}
		if len(urls) == 0 {
			fmt.Printf("No archived URLs found for %s\n", domain)
			return nil
		}
		fmt.Printf("[+] Retrieved %d URL(s)\n", len(urls))

		analysis := wayback.Analyze(domain, urls)

		fmt.Printf("[+] High-value URLs: %d\n", len(analysis.HighValue))
		shown := len(analysis.HighValue)
		if top > 0 && shown > top {
			shown = top
		}
		for _, c := range analysis.HighValue[:shown] {
			fmt.Printf("    [%d|%s] %s\n", c.Score, c.Priority, c.URL)
		}

		timestamp := time.Now().UTC().Format("20060102_150405")
		reportPath := storage.ReportPath(cfg.ReportDir, domain+"_urls", timestamp)
		if err := report.WriteURLReport(analysis, reportPath); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		fmt.Printf("[+] Report: %s\n", reportPath)
		return nil
	},
}

func init() {
	urlsCmd.Flags().StringP("domain", "d", "", "target domain (required)")
	urlsCmd.Flags().Int("limit", 0, "max URLs to fetch (default: wayback.max_results)")
	urlsCmd.Flags().Int("top", 10, "high-value URLs to print to the console")
	urlsCmd.MarkFlagRequired("domain")
	rootCmd.AddCommand(urlsCmd)
}
