package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakim/surfwatch/internal/models"
)

func intPtr(v int) *int { return &v }

func TestBaselineRoundTrip(t *testing.T) {
	dir := t.TempDir()

	b := models.NewBaseline("example.com", "2026-08-30T00:00:00Z")
	b.Subdomains["example.com"] = true
	b.Subdomains["www.example.com"] = true
	b.Endpoints["https://www.example.com"] = models.EndpointRecord{
		URL:        "https://www.example.com",
		StatusCode: intPtr(200),
		Title:      "Example",
		BodyLength: 1234,
		Headers:    map[string]string{"Server": "nginx"},
		Flags: []models.Flag{
			{Kind: models.FlagSecurity, Message: "Missing security headers: X-Frame-Options", Severity: models.SeverityLow},
		},
		Reachable: true,
	}
	b.Takeovers = []models.TakeoverCandidate{
		{Subdomain: "old.example.com", CNAME: "x.herokuapp.com", Service: "heroku", Confidence: models.ConfidenceMedium},
	}

	path, err := SaveBaseline(dir, b)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "example.com_baseline.json"), path)

	loaded, err := LoadBaseline(dir, "example.com")
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, b.Domain, loaded.Domain)
	assert.Equal(t, b.Subdomains, loaded.Subdomains)
	assert.Equal(t, b.Takeovers, loaded.Takeovers)

	rec := loaded.Endpoints["https://www.example.com"]
	require.NotNil(t, rec.StatusCode)
	assert.Equal(t, 200, *rec.StatusCode)
	assert.Equal(t, "Example", rec.Title)
	assert.Len(t, rec.Flags, 1)
}

func TestLoadBaselineMissingIsFirstRun(t *testing.T) {
	loaded, err := LoadBaseline(t.TempDir(), "example.com")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestLoadBaselineCorruptIsError(t *testing.T) {
	dir := t.TempDir()
	path := BaselinePath(dir, "example.com")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	loaded, err := LoadBaseline(dir, "example.com")
	assert.Error(t, err)
	assert.Nil(t, loaded)
}

func TestSaveBaselineReplacesExisting(t *testing.T) {
	dir := t.TempDir()

	first := models.NewBaseline("example.com", "2026-08-29T00:00:00Z")
	first.Subdomains["a.example.com"] = true
	_, err := SaveBaseline(dir, first)
	require.NoError(t, err)

	second := models.NewBaseline("example.com", "2026-08-30T00:00:00Z")
	second.Subdomains["b.example.com"] = true
	_, err = SaveBaseline(dir, second)
	require.NoError(t, err)

	loaded, err := LoadBaseline(dir, "example.com")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-30T00:00:00Z", loaded.Timestamp)
	assert.False(t, loaded.Subdomains["a.example.com"])
	assert.True(t, loaded.Subdomains["b.example.com"])
}

func TestChangeSetRoundTrip(t *testing.T) {
	dir := t.TempDir()

	cs := models.NewChangeSet("example.com", "20260830_120000")
	cs.NewSubdomains = []string{"new.example.com"}
	cs.NewTakeovers = []models.TakeoverCandidate{
		{Subdomain: "t.example.com", Service: "github", Confidence: models.ConfidenceHigh},
	}
	cs.ResolvedTakeovers = []string{"gone.example.com"}

	path, err := SaveChangeSet(dir, cs)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "example.com_20260830_120000.json"), path)

	loaded, err := LoadChangeSet(path)
	require.NoError(t, err)
	assert.Equal(t, cs.NewSubdomains, loaded.NewSubdomains)
	assert.Equal(t, cs.NewTakeovers, loaded.NewTakeovers)
	assert.Equal(t, cs.ResolvedTakeovers, loaded.ResolvedTakeovers)
}

func TestSanitizeTarget(t *testing.T) {
	assert.Equal(t, "example.com", SanitizeTarget("example.com"))
	assert.Equal(t, "sub.example-dev.com", SanitizeTarget("sub.example-dev.com"))
	assert.Equal(t, "a_b_c", SanitizeTarget("a/b:c"))
}
