package diff

import "github.com/hakim/surfwatch/internal/models"

// Escalate reduces a change set to the alert level that gates
// notification delivery. It never gates persistence: a non-empty
// change set is always saved regardless of the level returned.
//
// Critical outranks everything: a new takeover candidate, or a changed
// endpoint carrying a new high-severity flag. High covers growth of
// the attack surface (new subdomains or endpoints) and status-code
// movement on known endpoints. Anything else is normal.
func Escalate(cs *models.ChangeSet) models.AlertLevel {
	if len(cs.NewTakeovers) > 0 {
		return models.AlertCritical
	}

	for _, ec := range cs.ChangedEndpoints {
		for _, f := range ec.Changes.NewFlags {
			if f.Severity == models.SeverityHigh {
				return models.AlertCritical
			}
		}
	}

	if len(cs.NewSubdomains) > 0 || len(cs.NewEndpoints) > 0 {
		return models.AlertHigh
	}

	for _, ec := range cs.ChangedEndpoints {
		if ec.Changes.StatusCode != nil {
			return models.AlertHigh
		}
	}

	return models.AlertNormal
}
