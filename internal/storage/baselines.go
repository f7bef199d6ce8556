package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hakim/surfwatch/internal/models"
)

// SaveBaseline writes a baseline document, atomically replacing any
// previous one for the domain. The new baseline fully supersedes the
// old for persistence; callers wanting a diff must load the old one
// before saving.
func SaveBaseline(baselineDir string, baseline *models.Baseline) (string, error) {
	if err := EnsureDir(baselineDir); err != nil {
		return "", fmt.Errorf("creating baseline dir: %w", err)
	}

	path := BaselinePath(baselineDir, baseline.Domain)

	data, err := json.MarshalIndent(baseline, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling baseline: %w", err)
	}

	// Write-then-rename so a crash never leaves a truncated baseline
	tmp, err := os.CreateTemp(filepath.Dir(path), ".baseline-*.json")
	if err != nil {
		return "", fmt.Errorf("creating temp baseline: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("writing baseline: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("closing baseline: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("replacing baseline: %w", err)
	}

	return path, nil
}

// LoadBaseline reads the saved baseline for a domain. Returns
// (nil, nil) when no baseline exists — that is the first-run path, not
// an error. A baseline that exists but fails to parse is returned as an
// error; the caller decides whether to treat the domain as a first run
// or skip it.
func LoadBaseline(baselineDir, domain string) (*models.Baseline, error) {
	path := BaselinePath(baselineDir, domain)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading baseline: %w", err)
	}

	var baseline models.Baseline
	if err := json.Unmarshal(data, &baseline); err != nil {
		return nil, fmt.Errorf("parsing baseline %s: %w", path, err)
	}

	return &baseline, nil
}

// SaveChangeSet persists a change set document for a run.
func SaveChangeSet(diffDir string, cs *models.ChangeSet) (string, error) {
	if err := EnsureDir(diffDir); err != nil {
		return "", fmt.Errorf("creating diff dir: %w", err)
	}

	path := ChangesPath(diffDir, cs.Domain, cs.Timestamp)

	data, err := json.MarshalIndent(cs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling change set: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing change set: %w", err)
	}

	return path, nil
}

// LoadChangeSet reads a previously saved change set document.
func LoadChangeSet(path string) (*models.ChangeSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading change set: %w", err)
	}

	var cs models.ChangeSet
	if err := json.Unmarshal(data, &cs); err != nil {
		return nil, fmt.Errorf("parsing change set %s: %w", path, err)
	}

	return &cs, nil
}
