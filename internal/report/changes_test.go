package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakim/surfwatch/internal/models"
)

func intPtr(v int) *int { return &v }

func TestWriteChangeReport(t *testing.T) {
	cs := models.NewChangeSet("example.com", "20260830_120000")
	cs.NewSubdomains = []string{"new.example.com"}
	cs.RemovedSubdomains = []string{"gone.example.com"}
	cs.NewTakeovers = []models.TakeoverCandidate{{
		Subdomain:   "t.example.com",
		CNAME:       "x.herokuapp.com",
		Service:     "heroku",
		Confidence:  models.ConfidenceHigh,
		Fingerprint: "No such app",
	}}
	cs.ResolvedTakeovers = []string{"old.example.com"}
	cs.ChangedEndpoints = []models.EndpointChange{{
		URL: "https://www.example.com",
		Changes: models.EndpointDelta{
			StatusCode: &models.StatusDelta{Old: intPtr(403), New: intPtr(200)},
			Title:      &models.TitleDelta{Old: "Forbidden", New: "Admin Dashboard"},
			BodyLength: &models.BodyLengthDelta{Old: 100, New: 900, DiffPercent: 800},
			NewFlags: []models.Flag{
				{Kind: models.FlagHighValue, Message: "admin panel", Severity: models.SeverityHigh},
			},
		},
	}}

	path := filepath.Join(t.TempDir(), "reports", "changes.md")
	require.NoError(t, WriteChangeReport(cs, models.AlertCritical, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "# Attack Surface Changes — example.com")
	assert.Contains(t, content, "**Alert level:** critical")
	assert.Contains(t, content, "## Potential Subdomain Takeovers")
	assert.Contains(t, content, "| t.example.com | heroku | x.herokuapp.com | high | No such app |")
	assert.Contains(t, content, "## Resolved Takeovers")
	assert.Contains(t, content, "- old.example.com")
	assert.Contains(t, content, "- + new.example.com")
	assert.Contains(t, content, "- - gone.example.com")
	assert.Contains(t, content, "### https://www.example.com")
	assert.Contains(t, content, "- Status: 403 -> 200")
	assert.Contains(t, content, "- Title: Forbidden -> Admin Dashboard")
	assert.Contains(t, content, "- **FLAG** [high] admin panel")
}

func TestWriteChangeReportUnreachableStatus(t *testing.T) {
	cs := models.NewChangeSet("example.com", "20260830_120000")
	cs.ChangedEndpoints = []models.EndpointChange{{
		URL: "https://down.example.com",
		Changes: models.EndpointDelta{
			StatusCode: &models.StatusDelta{Old: intPtr(200), New: nil},
		},
	}}

	path := filepath.Join(t.TempDir(), "changes.md")
	require.NoError(t, WriteChangeReport(cs, models.AlertNormal, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "- Status: 200 -> unreachable")
}

func TestWriteChangeReportEmpty(t *testing.T) {
	cs := models.NewChangeSet("example.com", "20260830_120000")
	path := filepath.Join(t.TempDir(), "changes.md")
	require.NoError(t, WriteChangeReport(cs, models.AlertNormal, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "No changes detected.")
}

func TestWriteBaselineReport(t *testing.T) {
	b := models.NewBaseline("example.com", "2026-08-30T00:00:00Z")
	b.Subdomains["example.com"] = true
	b.Subdomains["admin.example.com"] = true
	b.Endpoints["https://admin.example.com"] = models.EndpointRecord{
		URL:        "https://admin.example.com",
		StatusCode: intPtr(200),
		Flags: []models.Flag{
			{Kind: models.FlagHighValue, Message: "High-value target: admin (admin in URL)", Severity: models.SeverityHigh},
		},
		Reachable: true,
	}
	b.Endpoints["https://www.example.com"] = models.EndpointRecord{
		URL:        "https://www.example.com",
		StatusCode: intPtr(200),
		Reachable:  true,
	}
	b.Takeovers = []models.TakeoverCandidate{
		{Subdomain: "t.example.com", CNAME: "x.github.io", Service: "github", Confidence: models.ConfidenceMedium},
	}

	path := filepath.Join(t.TempDir(), "baseline.md")
	require.NoError(t, WriteBaselineReport(b, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "# Baseline Snapshot — example.com")
	assert.Contains(t, content, "**Subdomains:** 2")
	assert.Contains(t, content, "**Endpoints:** 2")
	assert.Contains(t, content, "| t.example.com | github | x.github.io | medium |")
	// Only the flagged endpoint is listed.
	assert.Contains(t, content, "### https://admin.example.com")
	assert.NotContains(t, content, "### https://www.example.com")
}
