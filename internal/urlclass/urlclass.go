// Package urlclass scores arbitrary URLs (typically historical ones
// pulled from archive indexes) against the static category rules.
// Classification is a pure function of the URL and the rule tables.
package urlclass

import (
	"net/url"
	"strings"

	"github.com/hakim/surfwatch/internal/models"
	"github.com/hakim/surfwatch/internal/rules"
)

// Classification is the result of scoring one URL. A URL may belong to
// zero, one, or many categories; Priority is always the maximum
// priority among the matched categories, low when nothing matched.
type Classification struct {
	URL               string          `json:"url"`
	Categories        []string        `json:"categories"`
	Priority          models.Priority `json:"priority"`
	FileExtension     string          `json:"file_extension,omitempty"`
	HasParameters     bool            `json:"has_parameters"`
	ParameterNames    []string        `json:"parameter_names"`
	InterestingParams []string        `json:"interesting_params"`
	Score             int             `json:"score"`
}

// HighValue reports whether the URL is worth surfacing on its own:
// either it scored above 20 or it matched a critical/high category.
func (c *Classification) HighValue() bool {
	return c.Score > 20 ||
		c.Priority == models.PriorityCritical ||
		c.Priority == models.PriorityHigh
}

// Classify parses the URL and evaluates every category rule against
// its path and query. Malformed URLs still classify: whatever parses
// is matched, the rest contributes nothing.
func Classify(rawURL string) Classification {
	c := Classification{
		URL:               rawURL,
		Categories:        []string{},
		Priority:          models.PriorityLow,
		ParameterNames:    []string{},
		InterestingParams: []string{},
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return c
	}

	path := strings.ToLower(parsed.Path)
	query := strings.ToLower(parsed.RawQuery)
	c.HasParameters = parsed.RawQuery != ""
	c.FileExtension = fileExtension(path)

	for _, rule := range rules.URLCategories {
		if !matchesCategory(path, query, c.FileExtension, rule) {
			continue
		}
		c.Categories = append(c.Categories, rule.Name)
		c.Priority = c.Priority.Max(rule.Priority)
	}

	c.ParameterNames, c.InterestingParams = extractParams(parsed.RawQuery)

	c.Score = score(&c)
	return c
}

// fileExtension derives the extension from the final dot in the path,
// or returns empty when the path carries no dot at all.
func fileExtension(path string) string {
	idx := strings.LastIndex(path, ".")
	if idx < 0 {
		return ""
	}
	return path[idx:]
}

// matchesCategory reports whether the URL belongs to one category rule:
// extension match (exact final extension, path suffix, or an inner
// extension of a compound name like "db.sql.bak") or keyword
// containment in path or query.
func matchesCategory(path, query, ext string, rule rules.URLCategory) bool {
	if ext != "" {
		segment := path
		if idx := strings.LastIndex(path, "/"); idx >= 0 {
			segment = path[idx+1:]
		}
		for _, ruleExt := range rule.Extensions {
			if ext == ruleExt || strings.HasSuffix(path, ruleExt) {
				return true
			}
			// "db.sql.bak" counts for ".sql" as well as ".bak".
			if strings.Contains(segment, ruleExt+".") {
				return true
			}
		}
	}

	for _, kw := range rule.Keywords {
		if strings.Contains(path, kw) || strings.Contains(query, kw) {
			return true
		}
	}
	return false
}

// extractParams returns all query parameter names in the order they
// appear in the query string, plus the subset that appears on the
// interesting-parameter watchlist. Repeated names are reported once.
func extractParams(rawQuery string) (names, interesting []string) {
	names = []string{}
	interesting = []string{}
	if rawQuery == "" {
		return names, interesting
	}

	watch := make(map[string]bool, len(rules.InterestingParams))
	for _, p := range rules.InterestingParams {
		watch[p] = true
	}

	seen := make(map[string]bool)
	for _, pair := range strings.Split(rawQuery, "&") {
		name := pair
		if idx := strings.Index(pair, "="); idx >= 0 {
			name = pair[:idx]
		}
		if unescaped, err := url.QueryUnescape(name); err == nil {
			name = unescaped
		}
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
		if watch[strings.ToLower(name)] {
			interesting = append(interesting, name)
		}
	}
	return names, interesting
}

// score computes the numeric ranking: 10 per matched category, 5 per
// interesting parameter, plus a bonus for the final priority.
func score(c *Classification) int {
	s := len(c.Categories)*10 + len(c.InterestingParams)*5

	switch c.Priority {
	case models.PriorityCritical:
		s += 50
	case models.PriorityHigh:
		s += 30
	case models.PriorityMedium:
		s += 10
	}
	return s
}
