package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakim/surfwatch/internal/models"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, 10*time.Second, cfg.ProbeTimeout())
	assert.Equal(t, models.AlertHigh, cfg.MinNotifyLevel())
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BaselineDir = ""
	cfg.DBPath = ""
	cfg.Probe.Workers = 0
	cfg.Probe.Timeout = "fast"
	cfg.Notify.MinLevel = "urgent"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "baseline_dir")
	assert.Contains(t, err.Error(), "db_path")
	assert.Contains(t, err.Error(), "workers")
	assert.Contains(t, err.Error(), "timeout")
	assert.Contains(t, err.Error(), "min_level")
}

func TestValidateRejectsNegativeTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Probe.Timeout = "-5s"
	assert.Error(t, cfg.Validate())
}

func TestWriteDefaultAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "surfwatch.yaml")
	require.NoError(t, WriteDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data/baselines", cfg.BaselineDir)
	assert.Equal(t, 20, cfg.Probe.Workers)
	assert.Equal(t, "high", cfg.Notify.MinLevel)
	assert.Equal(t, "subfinder", cfg.Tools.Subfinder.Path)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGetTargetsMergesAndDedupes(t *testing.T) {
	dir := t.TempDir()
	domainsFile := filepath.Join(dir, "domains.txt")
	require.NoError(t, os.WriteFile(domainsFile, []byte("b.com\n\n  c.com  \na.com\n"), 0o644))

	cfg := DefaultConfig()
	cfg.Targets.Domains = []string{"a.com", "d.com"}
	cfg.Targets.DomainsFile = domainsFile

	targets, err := cfg.GetTargets()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.com", "b.com", "c.com", "d.com"}, targets)
}

func TestGetTargetsMissingFileIsSkipped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Targets.Domains = []string{"a.com"}
	cfg.Targets.DomainsFile = filepath.Join(t.TempDir(), "missing.txt")

	targets, err := cfg.GetTargets()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.com"}, targets)
}

func TestProbeTimeoutFallsBackOnBadValue(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Probe.Timeout = "not-a-duration"
	assert.Equal(t, 10*time.Second, cfg.ProbeTimeout())
}
