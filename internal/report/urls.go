package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/hakim/surfwatch/internal/wayback"
)

// WriteURLReport generates a markdown report for an archived-URL
// analysis.
func WriteURLReport(analysis *wayback.Analysis, outputPath string) error {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# Archived URL Analysis — %s\n\n", analysis.Domain))
	b.WriteString(fmt.Sprintf("**Date:** %s\n", time.Now().UTC().Format("2006-01-02 15:04:05 UTC")))
	b.WriteString(fmt.Sprintf("**Total URLs:** %d\n", analysis.TotalURLs))
	b.WriteString(fmt.Sprintf("**High-value URLs:** %d\n\n", len(analysis.HighValue)))

	b.WriteString("## Categories\n\n")
	b.WriteString("| Category | Count |\n")
	b.WriteString("|----------|-------|\n")
	for _, name := range sortedKeys(analysis.Categories) {
		b.WriteString(fmt.Sprintf("| %s | %d |\n", name, len(analysis.Categories[name])))
	}
	b.WriteString("\n")

	if len(analysis.HighValue) > 0 {
		b.WriteString("## High-Value URLs\n\n")
		b.WriteString("| Score | Priority | Categories | URL |\n")
		b.WriteString("|-------|----------|------------|-----|\n")
		limit := len(analysis.HighValue)
		if limit > 100 {
			limit = 100
		}
		for _, c := range analysis.HighValue[:limit] {
			cats := strings.Join(c.Categories, ", ")
			if cats == "" {
				cats = "—"
			}
			b.WriteString(fmt.Sprintf("| %d | %s | %s | %s |\n", c.Score, c.Priority, cats, c.URL))
		}
		b.WriteString("\n")
	}

	if len(analysis.Parameters) > 0 {
		b.WriteString("## Interesting Parameters\n\n")
		for _, name := range sortedKeys(analysis.Parameters) {
			b.WriteString(fmt.Sprintf("- `%s` (%d occurrences)\n", name, analysis.Parameters[name]))
		}
		b.WriteString("\n")
	}

	return writeFile(outputPath, b.String())
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func writeFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
