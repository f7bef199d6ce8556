package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/hakim/surfwatch/internal/models"
)

// WriteBaselineReport generates a markdown summary of a freshly captured
// baseline. It is produced on first runs, where there is no change set
// to report on.
func WriteBaselineReport(baseline *models.Baseline, outputPath string) error {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# Baseline Snapshot — %s\n\n", baseline.Domain))
	b.WriteString(fmt.Sprintf("**Date:** %s\n", time.Now().UTC().Format("2006-01-02 15:04:05 UTC")))
	b.WriteString(fmt.Sprintf("**Subdomains:** %d\n", baseline.SubdomainCount()))
	b.WriteString(fmt.Sprintf("**Endpoints:** %d\n", baseline.EndpointCount()))
	b.WriteString(fmt.Sprintf("**Takeover candidates:** %d\n\n", len(baseline.Takeovers)))

	if len(baseline.Takeovers) > 0 {
		b.WriteString("## Potential Subdomain Takeovers\n\n")
		b.WriteString("| Subdomain | Service | CNAME | Confidence |\n")
		b.WriteString("|-----------|---------|-------|------------|\n")
		for _, t := range baseline.Takeovers {
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", t.Subdomain, t.Service, t.CNAME, t.Confidence))
		}
		b.WriteString("\n")
	}

	writeFlaggedEndpoints(&b, baseline)

	return writeFile(outputPath, b.String())
}

// writeFlaggedEndpoints lists only endpoints that tripped at least one
// classification rule, worst severity first.
func writeFlaggedEndpoints(b *strings.Builder, baseline *models.Baseline) {
	type flagged struct {
		url string
		rec models.EndpointRecord
	}
	var items []flagged
	for u, rec := range baseline.Endpoints {
		if len(rec.Flags) > 0 {
			items = append(items, flagged{url: u, rec: rec})
		}
	}
	if len(items) == 0 {
		return
	}

	rank := map[models.Severity]int{models.SeverityHigh: 0, models.SeverityMedium: 1, models.SeverityLow: 2}
	worst := func(f flagged) int {
		best := 3
		for _, fl := range f.rec.Flags {
			if r, ok := rank[fl.Severity]; ok && r < best {
				best = r
			}
		}
		return best
	}
	sort.Slice(items, func(i, j int) bool {
		wi, wj := worst(items[i]), worst(items[j])
		if wi != wj {
			return wi < wj
		}
		return items[i].url < items[j].url
	})

	b.WriteString(fmt.Sprintf("## Flagged Endpoints (%d)\n\n", len(items)))
	for _, item := range items {
		b.WriteString(fmt.Sprintf("### %s\n\n", item.url))
		for _, f := range item.rec.Flags {
			b.WriteString(fmt.Sprintf("- [%s] %s\n", f.Severity, f.Message))
		}
		b.WriteString("\n")
	}
}
