// Package notify delivers change summaries to a webhook endpoint.
package notify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hakim/surfwatch/internal/models"
)

// Notifier posts run summaries to a webhook.
type Notifier struct {
	WebhookURL string // if empty, all sends are no-ops
	MinLevel   models.AlertLevel

	// Client can be overridden in tests; defaults to a 10s-timeout client.
	Client *http.Client
}

// changePayload is the JSON body posted to the webhook endpoint.
type changePayload struct {
	Domain            string `json:"domain"`
	Timestamp         string `json:"timestamp"`
	AlertLevel        string `json:"alert_level"`
	NewSubdomains     int    `json:"new_subdomains"`
	RemovedSubdomains int    `json:"removed_subdomains"`
	NewEndpoints      int    `json:"new_endpoints"`
	RemovedEndpoints  int    `json:"removed_endpoints"`
	ChangedEndpoints  int    `json:"changed_endpoints"`
	NewTakeovers      int    `json:"new_takeovers"`
	ResolvedTakeovers int    `json:"resolved_takeovers"`
	Message           string `json:"message"`
}

// SendChanges posts a change summary if level meets the configured
// minimum. Returns nil when delivery is skipped. Non-fatal — errors are
// returned but callers should treat them as warnings; the change set is
// already persisted by the time this runs.
func (n *Notifier) SendChanges(cs *models.ChangeSet, level models.AlertLevel) error {
	if n == nil || n.WebhookURL == "" {
		return nil
	}
	if !level.AtLeast(n.MinLevel) {
		return nil
	}

	payload := changePayload{
		Domain:            cs.Domain,
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
		AlertLevel:        string(level),
		NewSubdomains:     len(cs.NewSubdomains),
		RemovedSubdomains: len(cs.RemovedSubdomains),
		NewEndpoints:      len(cs.NewEndpoints),
		RemovedEndpoints:  len(cs.RemovedEndpoints),
		ChangedEndpoints:  len(cs.ChangedEndpoints),
		NewTakeovers:      len(cs.NewTakeovers),
		ResolvedTakeovers: len(cs.ResolvedTakeovers),
		Message:           summarize(cs, level),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("notify: marshaling payload: %w", err)
	}

	client := n.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Post(n.WebhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: posting to %s: %w", n.WebhookURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notify: webhook returned non-2xx status %d", resp.StatusCode)
	}

	return nil
}

// summarize builds the human-readable one-liner for the payload.
func summarize(cs *models.ChangeSet, level models.AlertLevel) string {
	switch level {
	case models.AlertCritical:
		if len(cs.NewTakeovers) > 0 {
			return fmt.Sprintf("CRITICAL: %d potential subdomain takeover(s) on %s", len(cs.NewTakeovers), cs.Domain)
		}
		return fmt.Sprintf("CRITICAL: high-severity findings on %s changed endpoints", cs.Domain)
	case models.AlertHigh:
		return fmt.Sprintf("Attack surface expanded on %s: %d new subdomain(s), %d new endpoint(s)",
			cs.Domain, len(cs.NewSubdomains), len(cs.NewEndpoints))
	default:
		return fmt.Sprintf("Changes detected on %s", cs.Domain)
	}
}
