package models

// TakeoverCandidate is a subdomain whose CNAME delegates to a third-party
// service in a way that may indicate an unclaimed, hijackable resource.
type TakeoverCandidate struct {
	Subdomain  string     `json:"subdomain"`
	CNAME      string     `json:"cname"`
	Service    string     `json:"service"`
	Confidence Confidence `json:"confidence"`

	// Populated only after HTTP verification promoted the confidence.
	URL         string `json:"url,omitempty"`
	StatusCode  int    `json:"status_code,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
}

// Baseline is a full point-in-time snapshot of a domain's discovered
// attack surface: subdomain set, probed endpoints, and takeover
// candidates. A baseline is immutable once saved; each collection pass
// produces a new one that fully supersedes the old for persistence,
// while the old one remains the comparison point for the next diff.
type Baseline struct {
	Domain     string                    `json:"domain"`
	Timestamp  string                    `json:"timestamp"`
	Subdomains map[string]bool           `json:"subdomains"`
	Endpoints  map[string]EndpointRecord `json:"endpoints"`
	Takeovers  []TakeoverCandidate       `json:"subdomain_takeovers"`
}

// NewBaseline returns an empty baseline for a domain with all
// collections initialized.
func NewBaseline(domain, timestamp string) *Baseline {
	return &Baseline{
		Domain:     domain,
		Timestamp:  timestamp,
		Subdomains: make(map[string]bool),
		Endpoints:  make(map[string]EndpointRecord),
		Takeovers:  []TakeoverCandidate{},
	}
}

// SubdomainCount returns the number of subdomains in the baseline.
func (b *Baseline) SubdomainCount() int {
	return len(b.Subdomains)
}

// EndpointCount returns the number of probed endpoints in the baseline.
func (b *Baseline) EndpointCount() int {
	return len(b.Endpoints)
}
