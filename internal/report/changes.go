// Package report renders change sets and URL analyses as markdown
// documents for humans; the JSON artifacts written by storage remain
// the machine-readable source of truth.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/hakim/surfwatch/internal/models"
)

// WriteChangeReport generates a markdown report for one change set and
// writes it to outputPath.
func WriteChangeReport(cs *models.ChangeSet, level models.AlertLevel, outputPath string) error {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("# Attack Surface Changes — %s\n\n", cs.Domain))
	b.WriteString(fmt.Sprintf("**Date:** %s\n", time.Now().UTC().Format("2006-01-02 15:04:05 UTC")))
	b.WriteString(fmt.Sprintf("**Alert level:** %s\n\n", level))

	if cs.Empty() {
		b.WriteString("No changes detected.\n")
		return writeFile(outputPath, b.String())
	}

	writeSummaryTable(&b, cs)
	writeTakeovers(&b, cs)
	writeStringSection(&b, "New Subdomains", "+", cs.NewSubdomains)
	writeStringSection(&b, "Removed Subdomains", "-", cs.RemovedSubdomains)
	writeStringSection(&b, "New Endpoints", "+", cs.NewEndpoints)
	writeStringSection(&b, "Removed Endpoints", "-", cs.RemovedEndpoints)
	writeChangedEndpoints(&b, cs.ChangedEndpoints)

	return writeFile(outputPath, b.String())
}

// ---------------------------------------------------------------------------
// Section writers
// ---------------------------------------------------------------------------

func writeSummaryTable(b *strings.Builder, cs *models.ChangeSet) {
	b.WriteString("## Summary\n\n")
	b.WriteString("| Category | New | Removed / Resolved |\n")
	b.WriteString("|----------|-----|--------------------|\n")
	b.WriteString(fmt.Sprintf("| Subdomains | %d | %d |\n", len(cs.NewSubdomains), len(cs.RemovedSubdomains)))
	b.WriteString(fmt.Sprintf("| Endpoints | %d | %d |\n", len(cs.NewEndpoints), len(cs.RemovedEndpoints)))
	b.WriteString(fmt.Sprintf("| Changed endpoints | %d | — |\n", len(cs.ChangedEndpoints)))
	b.WriteString(fmt.Sprintf("| Takeover candidates | %d | %d |\n\n", len(cs.NewTakeovers), len(cs.ResolvedTakeovers)))
}

// writeTakeovers renders takeover findings first — they are the reason
// anyone reads this report urgently.
func writeTakeovers(b *strings.Builder, cs *models.ChangeSet) {
	if len(cs.NewTakeovers) > 0 {
		b.WriteString("## Potential Subdomain Takeovers\n\n")
		b.WriteString("| Subdomain | Service | CNAME | Confidence | Fingerprint |\n")
		b.WriteString("|-----------|---------|-------|------------|-------------|\n")
		for _, t := range cs.NewTakeovers {
			fingerprint := t.Fingerprint
			if fingerprint == "" {
				fingerprint = "—"
			}
			b.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				t.Subdomain, t.Service, t.CNAME, t.Confidence, fingerprint))
		}
		b.WriteString("\n")
	}

	if len(cs.ResolvedTakeovers) > 0 {
		b.WriteString("## Resolved Takeovers\n\n")
		for _, sub := range cs.ResolvedTakeovers {
			b.WriteString(fmt.Sprintf("- %s\n", sub))
		}
		b.WriteString("\n")
	}
}

func writeStringSection(b *strings.Builder, title, marker string, items []string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("## %s (%d)\n\n", title, len(items)))
	for _, item := range items {
		b.WriteString(fmt.Sprintf("- %s %s\n", marker, item))
	}
	b.WriteString("\n")
}

func writeChangedEndpoints(b *strings.Builder, changes []models.EndpointChange) {
	if len(changes) == 0 {
		return
	}
	b.WriteString(fmt.Sprintf("## Changed Endpoints (%d)\n\n", len(changes)))

	for _, ec := range changes {
		b.WriteString(fmt.Sprintf("### %s\n\n", ec.URL))

		if sc := ec.Changes.StatusCode; sc != nil {
			b.WriteString(fmt.Sprintf("- Status: %s -> %s\n", formatStatus(sc.Old), formatStatus(sc.New)))
		}
		if tc := ec.Changes.Title; tc != nil {
			b.WriteString(fmt.Sprintf("- Title: %s -> %s\n", formatTitle(tc.Old), formatTitle(tc.New)))
		}
		if bl := ec.Changes.BodyLength; bl != nil {
			b.WriteString(fmt.Sprintf("- Body length: %d -> %d (%.1f%% change)\n", bl.Old, bl.New, bl.DiffPercent))
		}
		if td := ec.Changes.Technologies; td != nil {
			if len(td.Added) > 0 {
				b.WriteString(fmt.Sprintf("- Tech added: %s\n", strings.Join(td.Added, ", ")))
			}
			if len(td.Removed) > 0 {
				b.WriteString(fmt.Sprintf("- Tech removed: %s\n", strings.Join(td.Removed, ", ")))
			}
		}
		for _, f := range ec.Changes.NewFlags {
			b.WriteString(fmt.Sprintf("- **FLAG** [%s] %s\n", f.Severity, f.Message))
		}
		b.WriteString("\n")
	}
}

func formatStatus(status *int) string {
	if status == nil {
		return "unreachable"
	}
	return fmt.Sprintf("%d", *status)
}

func formatTitle(title string) string {
	if title == "" {
		return "(none)"
	}
	if len(title) > 50 {
		return title[:50]
	}
	return title
}
