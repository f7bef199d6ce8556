package main

import (
	"fmt"

	"github.com/hakim/surfwatch/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "surfwatch",
	Short: "Attack surface change monitor",
	Long: `SurfWatch continuously monitors the external attack surface of your domains.

Each run discovers subdomains, probes every live endpoint, classifies what it finds
against risk rules, and checks dangling CNAMEs for subdomain takeover exposure.
The result is compared against the stored baseline: new subdomains, changed
endpoints, and takeover candidates are reported, escalated, and optionally
delivered to a webhook.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		skipConfig := map[string]bool{
			"check":   true,
			"init":    true,
			"help":    true,
			"version": true,
		}

		if skipConfig[cmd.Name()] {
			return nil
		}

		// Load config if file exists
		if cfgFile != "" {
			var err error
			cfg, err = config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
		}

		return nil
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "surfwatch.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose output")

	// Version flag
	rootCmd.Version = "0.1.0-dev"
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}
