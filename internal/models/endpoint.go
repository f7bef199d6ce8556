package models

// Flag is a derived annotation on a probed endpoint indicating a
// security-relevant observation. Flags are recomputed fresh from the
// record on every probe and never mutated afterwards.
type Flag struct {
	Kind     FlagKind `json:"type"`
	Category string   `json:"category,omitempty"`
	Keyword  string   `json:"keyword,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// EndpointRecord holds the normalized result of probing one URL.
// Identity is the URL string. A record is replaced wholesale on each
// re-probe and never mutated in place, so two records can always be
// compared field by field.
type EndpointRecord struct {
	URL          string            `json:"url"`
	StatusCode   *int              `json:"status_code,omitempty"`
	Title        string            `json:"title,omitempty"`
	BodyLength   int               `json:"body_length"`
	ContentHash  string            `json:"content_hash,omitempty"`
	Technologies []string          `json:"technologies,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
	Server       string            `json:"server,omitempty"`
	Redirects    []string          `json:"redirects,omitempty"`
	Flags        []Flag            `json:"flags"`
	Reachable    bool              `json:"reachable"`
}

// Status returns the status code or zero when the probe never completed.
func (r *EndpointRecord) Status() int {
	if r.StatusCode == nil {
		return 0
	}
	return *r.StatusCode
}

// HasHighSeverityFlag reports whether any flag on the record is high severity.
func (r *EndpointRecord) HasHighSeverityFlag() bool {
	for _, f := range r.Flags {
		if f.Severity == SeverityHigh {
			return true
		}
	}
	return false
}
