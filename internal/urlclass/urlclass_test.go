package urlclass

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hakim/surfwatch/internal/models"
)

func TestClassifyCompoundBackupExtension(t *testing.T) {
	c := Classify("https://example.com/backup/db.sql.bak")

	// ".bak" puts it in backup; the inner ".sql." extension and the
	// "/backup/" path keyword keep both categories.
	assert.Contains(t, c.Categories, "backup")
	assert.Contains(t, c.Categories, "database")
	assert.Equal(t, models.PriorityHigh, c.Priority)
	assert.Equal(t, ".bak", c.FileExtension)
	assert.True(t, c.HighValue())
}

func TestClassifyCredentialsIsCritical(t *testing.T) {
	c := Classify("https://example.com/certs/server.pem")

	assert.Contains(t, c.Categories, "credentials")
	assert.Equal(t, models.PriorityCritical, c.Priority)
	assert.True(t, c.HighValue())
}

func TestClassifyPriorityIsMaxOfMatches(t *testing.T) {
	// "/logs/secret.log": logs is medium, credentials ("secret") is
	// critical — the final priority follows the highest match.
	c := Classify("https://example.com/logs/secret.log")

	assert.Contains(t, c.Categories, "logs")
	assert.Contains(t, c.Categories, "credentials")
	assert.Equal(t, models.PriorityCritical, c.Priority)
}

func TestClassifyUnmatchedURLIsLow(t *testing.T) {
	c := Classify("https://example.com/about")

	assert.Empty(t, c.Categories)
	assert.Equal(t, models.PriorityLow, c.Priority)
	assert.Equal(t, 0, c.Score)
	assert.False(t, c.HighValue())
}

func TestClassifyScore(t *testing.T) {
	// One category (config, high) and one interesting parameter:
	// 10 + 5 + 30 bonus = 45.
	c := Classify("https://example.com/settings.ini?id=1")

	assert.Equal(t, []string{"config"}, c.Categories)
	assert.Equal(t, models.PriorityHigh, c.Priority)
	assert.Equal(t, []string{"id"}, c.InterestingParams)
	assert.Equal(t, 45, c.Score)
}

func TestClassifyParameters(t *testing.T) {
	c := Classify("https://example.com/search?q=hello&utm_source=mail")

	assert.True(t, c.HasParameters)
	assert.Equal(t, []string{"q", "utm_source"}, c.ParameterNames)
	assert.Equal(t, []string{"q"}, c.InterestingParams)
}

func TestClassifyParameterOrderFollowsQueryString(t *testing.T) {
	c := Classify("https://example.com/page?zeta=1&id=2&alpha=3&token=4")

	// Names keep their query-string position regardless of how many
	// parameters are present, so repeated classifications of the same
	// URL always produce identical output.
	assert.Equal(t, []string{"zeta", "id", "alpha", "token"}, c.ParameterNames)
	assert.Equal(t, []string{"id", "token"}, c.InterestingParams)

	again := Classify("https://example.com/page?zeta=1&id=2&alpha=3&token=4")
	assert.Equal(t, c.ParameterNames, again.ParameterNames)
	assert.Equal(t, c.InterestingParams, again.InterestingParams)
}

func TestClassifyRepeatedParameterReportedOnce(t *testing.T) {
	c := Classify("https://example.com/page?id=1&id=2&lang=en")

	assert.Equal(t, []string{"id", "lang"}, c.ParameterNames)
	assert.Equal(t, []string{"id"}, c.InterestingParams)
}

func TestClassifyParameterMatchIsCaseInsensitive(t *testing.T) {
	c := Classify("https://example.com/page?TOKEN=abc")

	assert.Equal(t, []string{"TOKEN"}, c.InterestingParams)
}

func TestClassifyNoParameters(t *testing.T) {
	c := Classify("https://example.com/index.html")

	assert.False(t, c.HasParameters)
	assert.Empty(t, c.ParameterNames)
	assert.Empty(t, c.InterestingParams)
}

func TestClassifyFileExtensionFromLastDot(t *testing.T) {
	assert.Equal(t, ".bak", Classify("https://example.com/a/db.sql.bak").FileExtension)
	assert.Equal(t, ".pdf", Classify("https://example.com/report.pdf").FileExtension)
	assert.Equal(t, "", Classify("https://example.com/plain").FileExtension)
}

func TestClassifyKeywordInQuery(t *testing.T) {
	c := Classify("https://example.com/download?file=backup")

	assert.Contains(t, c.Categories, "backup")
}

func TestClassifyScoreAbove20IsHighValue(t *testing.T) {
	// Three categories at medium priority: 30 + 10 = 40 > 20.
	c := Classify("https://example.com/src/error_report.txt")

	assert.Contains(t, c.Categories, "source_code")
	assert.Contains(t, c.Categories, "documents")
	assert.Contains(t, c.Categories, "logs")
	assert.Equal(t, models.PriorityMedium, c.Priority)
	assert.True(t, c.HighValue())
}
