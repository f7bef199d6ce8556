package models

import (
	"time"

	"github.com/google/uuid"
)

// RunMeta contains metadata about one monitoring run for a domain.
// It is the unit stored in the bbolt history database; the heavyweight
// baseline and change-set documents live on the filesystem.
type RunMeta struct {
	ID          string     `json:"id"`
	Domain      string     `json:"domain"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Status      RunStatus  `json:"status"`

	// Collection summary
	SubdomainCount int `json:"subdomain_count"`
	EndpointCount  int `json:"endpoint_count"`
	TakeoverCount  int `json:"takeover_count"`

	// Diff summary (zero values on a first run)
	FirstRun     bool       `json:"first_run"`
	ChangeCount  int        `json:"change_count"`
	Alert        AlertLevel `json:"alert,omitempty"`
	BaselineFile string     `json:"baseline_file,omitempty"`
	ChangesFile  string     `json:"changes_file,omitempty"`
}

// NewRunMeta creates a run record with a fresh ID in the pending state.
func NewRunMeta(domain string) *RunMeta {
	return &RunMeta{
		ID:        uuid.New().String(),
		Domain:    domain,
		StartedAt: time.Now(),
		Status:    StatusPending,
	}
}
