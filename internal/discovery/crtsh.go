package discovery

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// crtshEntry is one certificate-transparency record returned by crt.sh.
type crtshEntry struct {
	NameValue string `json:"name_value"`
}

// QueryCrtsh pulls subdomains for a domain from certificate
// transparency logs via the crt.sh JSON endpoint. Wildcard prefixes are
// stripped and names outside the target domain are discarded.
func QueryCrtsh(ctx context.Context, domain string) ([]string, error) {
	endpoint := fmt.Sprintf("https://crt.sh/?q=%s&output=json", url.QueryEscape("%."+domain))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying crt.sh: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("crt.sh returned status %d", resp.StatusCode)
	}

	var entries []crtshEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("parsing crt.sh response: %w", err)
	}

	seen := make(map[string]bool)
	var subs []string
	for _, entry := range entries {
		// A single certificate may cover several names, one per line
		for _, name := range strings.Split(entry.NameValue, "\n") {
			name = strings.ToLower(strings.TrimSpace(name))
			name = strings.ReplaceAll(name, "*.", "")
			if name == "" || !strings.HasSuffix(name, domain) {
				continue
			}
			if !seen[name] {
				seen[name] = true
				subs = append(subs, name)
			}
		}
	}

	return subs, nil
}
