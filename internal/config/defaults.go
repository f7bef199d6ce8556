package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		DataDir:     "data",
		BaselineDir: "data/baselines",
		DiffDir:     "data/diffs",
		ReportDir:   "data/reports",
		DBPath:      "surfwatch.db",
		Targets: TargetsConfig{
			Domains:     []string{},
			DomainsFile: "",
		},
		Probe: ProbeConfig{
			Workers:   20,
			Timeout:   "10s",
			UserAgent: "Mozilla/5.0 (Security Scanner)",
		},
		Tools: ToolsConfig{
			Subfinder: ToolConfig{
				Path:    "subfinder",
				Threads: 10,
				Timeout: "10m",
			},
			Assetfinder: ToolConfig{
				Path:    "assetfinder",
				Timeout: "5m",
			},
			Dnsx: ToolConfig{
				Path:    "dnsx",
				Timeout: "10m",
			},
		},
		Wayback: WaybackConfig{
			Enabled:    false,
			MaxResults: 10000,
			Timeout:    "30s",
		},
		Notify: NotifyConfig{
			WebhookURL: "",
			MinLevel:   "high",
		},
		Scope: ScopeConfig{
			AllowedDomains: []string{},
		},
	}
}

// WriteDefault writes a default configuration to the specified path
func WriteDefault(path string) error {
	cfg := DefaultConfig()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
