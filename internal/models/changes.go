package models

// StatusDelta records a status-code change on one endpoint.
// Nil pointers mean the probe never completed on that side.
type StatusDelta struct {
	Old *int `json:"old"`
	New *int `json:"new"`
}

// TitleDelta records a page-title change on one endpoint.
type TitleDelta struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// BodyLengthDelta records a significant (>10% relative) body size change.
type BodyLengthDelta struct {
	Old         int     `json:"old"`
	New         int     `json:"new"`
	DiffPercent float64 `json:"diff_percent"`
}

// TechDelta records technologies that appeared or disappeared.
type TechDelta struct {
	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`
}

// EndpointDelta collects the field-level changes detected on a single
// endpoint present in both baselines. A nil field means no change of
// that kind was detected.
type EndpointDelta struct {
	StatusCode   *StatusDelta     `json:"status_code,omitempty"`
	Title        *TitleDelta      `json:"title,omitempty"`
	BodyLength   *BodyLengthDelta `json:"body_length,omitempty"`
	Technologies *TechDelta       `json:"technologies,omitempty"`
	NewFlags     []Flag           `json:"new_flags,omitempty"`
}

// Empty reports whether the delta carries no changes at all.
func (d *EndpointDelta) Empty() bool {
	return d.StatusCode == nil &&
		d.Title == nil &&
		d.BodyLength == nil &&
		d.Technologies == nil &&
		len(d.NewFlags) == 0
}

// EndpointChange pairs an endpoint URL with its field-level delta plus
// the full old and new records for report rendering.
type EndpointChange struct {
	URL     string         `json:"url"`
	Changes EndpointDelta  `json:"changes"`
	Old     EndpointRecord `json:"old"`
	New     EndpointRecord `json:"new"`
}

// ChangeSet is the structured difference between two baselines for the
// same domain. It is purely derived: emitted by the differ, consumed by
// reports and notifications, persisted once, and never itself diffed.
// All slice fields are non-nil (empty, not absent) so the JSON output
// always carries every key.
type ChangeSet struct {
	Domain    string `json:"domain"`
	Timestamp string `json:"timestamp"`

	NewSubdomains     []string `json:"new_subdomains"`
	RemovedSubdomains []string `json:"removed_subdomains"`

	NewEndpoints     []string `json:"new_endpoints"`
	RemovedEndpoints []string `json:"removed_endpoints"`

	ChangedEndpoints []EndpointChange `json:"changed_endpoints"`

	NewTakeovers      []TakeoverCandidate `json:"new_takeovers"`
	ResolvedTakeovers []string            `json:"resolved_takeovers"`
}

// NewChangeSet returns a ChangeSet with all slices initialized empty.
func NewChangeSet(domain, timestamp string) *ChangeSet {
	return &ChangeSet{
		Domain:            domain,
		Timestamp:         timestamp,
		NewSubdomains:     []string{},
		RemovedSubdomains: []string{},
		NewEndpoints:      []string{},
		RemovedEndpoints:  []string{},
		ChangedEndpoints:  []EndpointChange{},
		NewTakeovers:      []TakeoverCandidate{},
		ResolvedTakeovers: []string{},
	}
}

// Empty reports whether the change set records no changes at all.
func (c *ChangeSet) Empty() bool {
	return len(c.NewSubdomains) == 0 &&
		len(c.RemovedSubdomains) == 0 &&
		len(c.NewEndpoints) == 0 &&
		len(c.RemovedEndpoints) == 0 &&
		len(c.ChangedEndpoints) == 0 &&
		len(c.NewTakeovers) == 0 &&
		len(c.ResolvedTakeovers) == 0
}
