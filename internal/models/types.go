package models

// RunStatus represents the current state of a monitoring run
type RunStatus string

const (
	StatusPending  RunStatus = "pending"
	StatusRunning  RunStatus = "running"
	StatusComplete RunStatus = "complete"
	StatusFailed   RunStatus = "failed"
)

// Severity represents the severity level of a flag or delta
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Priority represents the ranked priority of a URL classification category
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// priorityRank defines the total order critical > high > medium > low.
var priorityRank = map[Priority]int{
	PriorityCritical: 4,
	PriorityHigh:     3,
	PriorityMedium:   2,
	PriorityLow:      1,
}

// Rank returns the numeric rank of a priority. Unknown values rank below low.
func (p Priority) Rank() int {
	return priorityRank[p]
}

// Max returns the higher-ranked of the two priorities.
func (p Priority) Max(other Priority) Priority {
	if other.Rank() > p.Rank() {
		return other
	}
	return p
}

// AlertLevel gates which notification channels receive a change report
type AlertLevel string

const (
	AlertNormal   AlertLevel = "normal"
	AlertHigh     AlertLevel = "high"
	AlertCritical AlertLevel = "critical"
)

// alertRank defines the order normal < high < critical.
var alertRank = map[AlertLevel]int{
	AlertNormal:   1,
	AlertHigh:     2,
	AlertCritical: 3,
}

// Rank returns the numeric rank of an alert level.
func (a AlertLevel) Rank() int {
	return alertRank[a]
}

// AtLeast reports whether a ranks at or above min.
func (a AlertLevel) AtLeast(min AlertLevel) bool {
	return a.Rank() >= min.Rank()
}

// FlagKind identifies the rule family that produced a flag
type FlagKind string

const (
	FlagHighValue        FlagKind = "high_value"
	FlagOutdatedTech     FlagKind = "outdated_tech"
	FlagStatus           FlagKind = "status"
	FlagSecurity         FlagKind = "security"
	FlagRedirect         FlagKind = "redirect"
	FlagDirectoryListing FlagKind = "directory_listing"
	FlagDefaultPage      FlagKind = "default_page"
	FlagError            FlagKind = "error"
)

// Confidence represents how certain a takeover finding is.
// Monotonic within a run: medium from the CNAME match alone, promoted
// to high after a body-fingerprint match, never demoted.
type Confidence string

const (
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)
