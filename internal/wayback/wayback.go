// Package wayback pulls historical URLs for a domain from the Wayback
// Machine CDX index and classifies them against the category rules.
package wayback

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/hakim/surfwatch/internal/models"
	"github.com/hakim/surfwatch/internal/urlclass"
)

const cdxEndpoint = "http://web.archive.org/cdx/search/cdx"

// Config controls CDX fetching.
type Config struct {
	// MaxResults caps the number of URLs requested from the index.
	MaxResults int
	// Timeout applies to the whole CDX request.
	Timeout time.Duration
}

// Analysis is the classified view of a domain's historical URLs.
type Analysis struct {
	Domain     string                              `json:"domain"`
	TotalURLs  int                                 `json:"total_urls"`
	Categories map[string][]urlclass.Classification `json:"categorized"`
	ByPriority map[models.Priority]int             `json:"by_priority"`
	Extensions map[string]int                      `json:"extensions"`
	Parameters map[string]int                      `json:"parameters"`
	HighValue  []urlclass.Classification           `json:"high_value"`
}

// FetchURLs queries the CDX API for unique historical URLs under the
// domain. The first response row is a header and is skipped.
func FetchURLs(ctx context.Context, domain string, cfg Config) ([]string, error) {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 10000
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	params := url.Values{}
	params.Set("url", "*."+domain+"/*")
	params.Set("output", "json")
	params.Set("fl", "original")
	params.Set("collapse", "urlkey")
	params.Set("limit", fmt.Sprintf("%d", cfg.MaxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cdxEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: cfg.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching CDX index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("CDX API returned status %d", resp.StatusCode)
	}

	var rows [][]string
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("parsing CDX response: %w", err)
	}

	var urls []string
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		urls = append(urls, row[0])
	}
	return urls, nil
}

// Analyze classifies every URL and aggregates the results by category,
// priority, extension, and parameter name.
func Analyze(domain string, urls []string) *Analysis {
	a := &Analysis{
		Domain:     domain,
		TotalURLs:  len(urls),
		Categories: make(map[string][]urlclass.Classification),
		ByPriority: make(map[models.Priority]int),
		Extensions: make(map[string]int),
		Parameters: make(map[string]int),
		HighValue:  []urlclass.Classification{},
	}

	for _, u := range urls {
		c := urlclass.Classify(u)

		if len(c.Categories) == 0 {
			a.Categories["uncategorized"] = append(a.Categories["uncategorized"], c)
		} else {
			for _, cat := range c.Categories {
				a.Categories[cat] = append(a.Categories[cat], c)
			}
		}

		a.ByPriority[c.Priority]++
		if c.FileExtension != "" {
			a.Extensions[c.FileExtension]++
		}
		for _, p := range c.ParameterNames {
			a.Parameters[p]++
		}
		if c.HighValue() {
			a.HighValue = append(a.HighValue, c)
		}
	}

	// Highest score first within each bucket
	for cat := range a.Categories {
		list := a.Categories[cat]
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Score > list[j].Score
		})
	}
	sort.SliceStable(a.HighValue, func(i, j int) bool {
		return a.HighValue[i].Score > a.HighValue[j].Score
	})

	return a
}
