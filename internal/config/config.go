package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/hakim/surfwatch/internal/models"
)

// Config represents the application configuration
type Config struct {
	DataDir     string        `mapstructure:"data_dir" yaml:"data_dir"`
	BaselineDir string        `mapstructure:"baseline_dir" yaml:"baseline_dir"`
	DiffDir     string        `mapstructure:"diff_dir" yaml:"diff_dir"`
	ReportDir   string        `mapstructure:"report_dir" yaml:"report_dir"`
	DBPath      string        `mapstructure:"db_path" yaml:"db_path"`
	Targets     TargetsConfig `mapstructure:"targets" yaml:"targets"`
	Probe       ProbeConfig   `mapstructure:"probe" yaml:"probe"`
	Tools       ToolsConfig   `mapstructure:"tools" yaml:"tools"`
	Wayback     WaybackConfig `mapstructure:"wayback" yaml:"wayback"`
	Notify      NotifyConfig  `mapstructure:"notify" yaml:"notify"`
	Scope       ScopeConfig   `mapstructure:"scope" yaml:"scope"`
}

// TargetsConfig lists the domains to monitor, inline and/or from a file
type TargetsConfig struct {
	Domains     []string `mapstructure:"domains" yaml:"domains"`
	DomainsFile string   `mapstructure:"domains_file" yaml:"domains_file"`
}

// ProbeConfig controls the HTTP probing pipeline
type ProbeConfig struct {
	Workers   int    `mapstructure:"workers" yaml:"workers"`
	Timeout   string `mapstructure:"timeout" yaml:"timeout"`
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
}

// ToolConfig represents configuration for a single external tool
type ToolConfig struct {
	Path    string `mapstructure:"path" yaml:"path"`
	Threads int    `mapstructure:"threads" yaml:"threads"`
	Timeout string `mapstructure:"timeout" yaml:"timeout"`
}

// ToolsConfig contains configuration for all external tools
type ToolsConfig struct {
	Subfinder   ToolConfig `mapstructure:"subfinder" yaml:"subfinder"`
	Assetfinder ToolConfig `mapstructure:"assetfinder" yaml:"assetfinder"`
	Dnsx        ToolConfig `mapstructure:"dnsx" yaml:"dnsx"`
}

// WaybackConfig controls historical URL analysis
type WaybackConfig struct {
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled"`
	MaxResults int    `mapstructure:"max_results" yaml:"max_results"`
	Timeout    string `mapstructure:"timeout" yaml:"timeout"`
}

// NotifyConfig controls webhook delivery of change reports
type NotifyConfig struct {
	WebhookURL string `mapstructure:"webhook_url" yaml:"webhook_url"`
	// MinLevel is the lowest alert level that triggers delivery:
	// normal, high, or critical.
	MinLevel string `mapstructure:"min_level" yaml:"min_level"`
}

// ScopeConfig restricts which targets may be monitored.
// Empty means everything is allowed.
type ScopeConfig struct {
	AllowedDomains []string `mapstructure:"allowed_domains" yaml:"allowed_domains"`
}

// Load reads and parses configuration from a YAML file.
// If path is empty, searches for surfwatch.yaml in the current
// directory, ./configs, and ~/.config/surfwatch/.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("surfwatch")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")

		homeDir, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(homeDir, ".config", "surfwatch"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	var errs []error

	if c.BaselineDir == "" {
		errs = append(errs, errors.New("baseline_dir cannot be empty"))
	}
	if c.DiffDir == "" {
		errs = append(errs, errors.New("diff_dir cannot be empty"))
	}
	if c.DBPath == "" {
		errs = append(errs, errors.New("db_path cannot be empty"))
	}
	if c.Probe.Workers <= 0 {
		errs = append(errs, errors.New("probe workers must be positive"))
	}
	if _, err := parseTimeout(c.Probe.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("probe timeout: %w", err))
	}

	switch models.AlertLevel(c.Notify.MinLevel) {
	case models.AlertNormal, models.AlertHigh, models.AlertCritical:
	default:
		errs = append(errs, fmt.Errorf("notify min_level must be normal, high, or critical (got %q)", c.Notify.MinLevel))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// GetTargets merges inline domains with the optional domains file and
// returns a deduplicated, sorted list. A missing domains file is
// silently skipped.
func (c *Config) GetTargets() ([]string, error) {
	seen := make(map[string]bool)
	var targets []string

	add := func(domain string) {
		domain = strings.TrimSpace(domain)
		if domain == "" || seen[domain] {
			return
		}
		seen[domain] = true
		targets = append(targets, domain)
	}

	for _, d := range c.Targets.Domains {
		add(d)
	}

	if c.Targets.DomainsFile != "" {
		data, err := os.ReadFile(c.Targets.DomainsFile)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("reading domains file: %w", err)
			}
		} else {
			for _, line := range strings.Split(string(data), "\n") {
				add(line)
			}
		}
	}

	sort.Strings(targets)
	return targets, nil
}

// ProbeTimeout returns the parsed per-URL probe timeout.
func (c *Config) ProbeTimeout() time.Duration {
	d, err := parseTimeout(c.Probe.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// MinNotifyLevel returns the configured minimum alert level.
func (c *Config) MinNotifyLevel() models.AlertLevel {
	return models.AlertLevel(c.Notify.MinLevel)
}

func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 0, errors.New("timeout cannot be empty")
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration %q must be positive", s)
	}
	return d, nil
}
