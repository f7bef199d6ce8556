package main

import (
	"fmt"
	"os"

	"github.com/hakim/surfwatch/internal/config"
	"github.com/hakim/surfwatch/internal/storage"
	"github.com/spf13/cobra"
)

var (
	initForce bool
	initDir   string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize surfwatch with default configuration",
	Long: `Creates a default configuration file (surfwatch.yaml), initializes the
data directory structure, and sets up the database for storing run history.

This is typically the first command you run when setting up surfwatch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath := "surfwatch.yaml"
		if initDir != "." {
			configPath = fmt.Sprintf("%s/surfwatch.yaml", initDir)
		}

		// Check if config already exists
		if _, err := os.Stat(configPath); err == nil && !initForce {
			return fmt.Errorf("config file already exists at %s. Use --force to overwrite", configPath)
		}

		// Create default config
		if err := config.WriteDefault(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		fmt.Printf("Created %s with default configuration\n", configPath)

		// Load the config we just created to get paths
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// Create data directories
		for _, dir := range []string{cfg.DataDir, cfg.BaselineDir, cfg.DiffDir, cfg.ReportDir} {
			if err := storage.EnsureDir(dir); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}
		}
		fmt.Printf("Created data directories under %s\n", cfg.DataDir)

		// Initialize the run history database
		store, err := storage.NewStore(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer store.Close()
		fmt.Printf("Initialized database at %s\n", cfg.DBPath)

		fmt.Println("\nNext steps:")
		fmt.Println("  1. Add target domains to surfwatch.yaml (targets.domains)")
		fmt.Println("  2. Run 'surfwatch check' to verify external tools")
		fmt.Println("  3. Run 'surfwatch baseline -d example.com' to capture a first snapshot")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	initCmd.Flags().StringVar(&initDir, "dir", ".", "directory to create config in")
	rootCmd.AddCommand(initCmd)
}
