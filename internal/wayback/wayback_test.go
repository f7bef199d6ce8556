package wayback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakim/surfwatch/internal/models"
)

func TestAnalyzeAggregates(t *testing.T) {
	urls := []string{
		"https://example.com/backup/db.sql.bak",
		"https://example.com/certs/server.pem",
		"https://example.com/about",
		"https://example.com/report.pdf",
		"https://example.com/page?id=1&token=x",
	}

	a := Analyze("example.com", urls)

	assert.Equal(t, "example.com", a.Domain)
	assert.Equal(t, len(urls), a.TotalURLs)

	require.Contains(t, a.Categories, "backup")
	require.Contains(t, a.Categories, "credentials")
	require.Contains(t, a.Categories, "documents")
	assert.Contains(t, a.Categories, "uncategorized")

	assert.Equal(t, 1, a.Extensions[".bak"])
	assert.Equal(t, 1, a.Extensions[".pem"])
	assert.Equal(t, 1, a.Extensions[".pdf"])

	assert.Equal(t, 1, a.Parameters["id"])
	assert.Equal(t, 1, a.Parameters["token"])

	assert.GreaterOrEqual(t, a.ByPriority[models.PriorityCritical], 1)
	assert.GreaterOrEqual(t, a.ByPriority[models.PriorityLow], 1)
}

func TestAnalyzeHighValueSortedByScore(t *testing.T) {
	urls := []string{
		"https://example.com/report.pdf",          // medium, low score
		"https://example.com/backup/db.sql.bak",   // multiple high categories
		"https://example.com/certs/server.pem",    // critical
	}

	a := Analyze("example.com", urls)
	require.NotEmpty(t, a.HighValue)
	for i := 1; i < len(a.HighValue); i++ {
		assert.GreaterOrEqual(t, a.HighValue[i-1].Score, a.HighValue[i].Score)
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	a := Analyze("example.com", nil)
	assert.Equal(t, 0, a.TotalURLs)
	assert.Empty(t, a.Categories)
	assert.Empty(t, a.HighValue)
}
