package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// SanitizeTarget replaces characters unsafe for filesystem paths.
// Allows alphanumeric, dots, and hyphens. Replaces everything else with underscore.
func SanitizeTarget(target string) string {
	re := regexp.MustCompile(`[^a-zA-Z0-9.\-]+`)
	return re.ReplaceAllString(target, "_")
}

// BaselinePath returns the canonical baseline file for a domain.
// Format: {baselineDir}/{domain}_baseline.json
func BaselinePath(baselineDir, domain string) string {
	return filepath.Join(baselineDir, SanitizeTarget(domain)+"_baseline.json")
}

// ChangesPath returns the file a change set is written to.
// Format: {diffDir}/{domain}_{timestamp}.json
func ChangesPath(diffDir, domain, timestamp string) string {
	name := fmt.Sprintf("%s_%s.json", SanitizeTarget(domain), timestamp)
	return filepath.Join(diffDir, name)
}

// ReportPath returns the markdown report file for a run.
func ReportPath(reportDir, domain, timestamp string) string {
	name := fmt.Sprintf("%s_%s.md", SanitizeTarget(domain), timestamp)
	return filepath.Join(reportDir, name)
}

// EnsureDir creates a directory and all parent directories if they don't exist
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
