// Package diff computes the delta between two baselines of the same
// domain. Comparison is pure set/map work over fully materialized
// baselines: no I/O, no shared state, safe to call concurrently on
// independent inputs. Output slices are sorted so the result is stable
// for a given pair of inputs.
package diff

import (
	"math"
	"sort"

	"github.com/hakim/surfwatch/internal/models"
)

// bodyLengthThresholdPercent is the strict lower bound on the relative
// body-size change that counts as significant.
const bodyLengthThresholdPercent = 10.0

// Compute calculates the delta between an old and a new baseline.
// Both arguments must be non-nil and fully collected — a partial
// baseline must never be diffed. The first-run case (no old baseline)
// is the caller's responsibility; pass two real baselines here.
func Compute(old, new *models.Baseline) *models.ChangeSet {
	cs := models.NewChangeSet(new.Domain, new.Timestamp)

	diffSubdomains(cs, old, new)
	diffEndpoints(cs, old, new)
	diffTakeovers(cs, old, new)

	return cs
}

// ---------------------------------------------------------------------------
// Subdomain diff
// ---------------------------------------------------------------------------

func diffSubdomains(cs *models.ChangeSet, old, new *models.Baseline) {
	for sub := range new.Subdomains {
		if !old.Subdomains[sub] {
			cs.NewSubdomains = append(cs.NewSubdomains, sub)
		}
	}
	for sub := range old.Subdomains {
		if !new.Subdomains[sub] {
			cs.RemovedSubdomains = append(cs.RemovedSubdomains, sub)
		}
	}
	sort.Strings(cs.NewSubdomains)
	sort.Strings(cs.RemovedSubdomains)
}

// ---------------------------------------------------------------------------
// Endpoint diff
// ---------------------------------------------------------------------------

func diffEndpoints(cs *models.ChangeSet, old, new *models.Baseline) {
	for url := range new.Endpoints {
		if _, ok := old.Endpoints[url]; !ok {
			cs.NewEndpoints = append(cs.NewEndpoints, url)
		}
	}
	for url := range old.Endpoints {
		if _, ok := new.Endpoints[url]; !ok {
			cs.RemovedEndpoints = append(cs.RemovedEndpoints, url)
		}
	}
	sort.Strings(cs.NewEndpoints)
	sort.Strings(cs.RemovedEndpoints)

	// Field-level deltas for endpoints present in both baselines.
	var shared []string
	for url := range new.Endpoints {
		if _, ok := old.Endpoints[url]; ok {
			shared = append(shared, url)
		}
	}
	sort.Strings(shared)

	for _, url := range shared {
		oldRec := old.Endpoints[url]
		newRec := new.Endpoints[url]

		delta := compareRecords(&oldRec, &newRec)
		if delta.Empty() {
			continue
		}
		cs.ChangedEndpoints = append(cs.ChangedEndpoints, models.EndpointChange{
			URL:     url,
			Changes: delta,
			Old:     oldRec,
			New:     newRec,
		})
	}
}

// compareRecords computes the field-level delta between two immutable
// probe records for the same URL.
func compareRecords(old, new *models.EndpointRecord) models.EndpointDelta {
	var delta models.EndpointDelta

	if !statusEqual(old.StatusCode, new.StatusCode) {
		delta.StatusCode = &models.StatusDelta{Old: old.StatusCode, New: new.StatusCode}
	}

	if old.Title != new.Title {
		delta.Title = &models.TitleDelta{Old: old.Title, New: new.Title}
	}

	// Relative body-size change, strictly above the threshold. A zero
	// old length skips the check entirely.
	if old.BodyLength > 0 {
		diffPercent := math.Abs(float64(new.BodyLength-old.BodyLength)) / float64(old.BodyLength) * 100
		if diffPercent > bodyLengthThresholdPercent {
			delta.BodyLength = &models.BodyLengthDelta{
				Old:         old.BodyLength,
				New:         new.BodyLength,
				DiffPercent: math.Round(diffPercent*100) / 100,
			}
		}
	}

	added, removed := techSetDiff(old.Technologies, new.Technologies)
	if len(added) > 0 || len(removed) > 0 {
		delta.Technologies = &models.TechDelta{Added: added, Removed: removed}
	}

	// High-severity flags not already present in the old record.
	// Membership is by message string: a flag regenerated with an
	// identical message counts as unchanged even if its underlying
	// cause differs.
	oldMessages := make(map[string]bool, len(old.Flags))
	for _, f := range old.Flags {
		oldMessages[f.Message] = true
	}
	for _, f := range new.Flags {
		if f.Severity == models.SeverityHigh && !oldMessages[f.Message] {
			delta.NewFlags = append(delta.NewFlags, f)
		}
	}

	return delta
}

func statusEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// techSetDiff returns the technologies added and removed between two
// records, both sorted.
func techSetDiff(oldTech, newTech []string) (added, removed []string) {
	oldSet := make(map[string]bool, len(oldTech))
	for _, t := range oldTech {
		oldSet[t] = true
	}
	newSet := make(map[string]bool, len(newTech))
	for _, t := range newTech {
		newSet[t] = true
	}

	for t := range newSet {
		if !oldSet[t] {
			added = append(added, t)
		}
	}
	for t := range oldSet {
		if !newSet[t] {
			removed = append(removed, t)
		}
	}
	sort.Strings(added)
	sort.Strings(removed)
	return added, removed
}

// ---------------------------------------------------------------------------
// Takeover diff
// ---------------------------------------------------------------------------

// diffTakeovers compares the takeover lists by subdomain key: a key
// that appeared is a new takeover, a key that disappeared is resolved.
func diffTakeovers(cs *models.ChangeSet, old, new *models.Baseline) {
	oldByName := make(map[string]models.TakeoverCandidate, len(old.Takeovers))
	for _, t := range old.Takeovers {
		oldByName[t.Subdomain] = t
	}
	newByName := make(map[string]models.TakeoverCandidate, len(new.Takeovers))
	for _, t := range new.Takeovers {
		newByName[t.Subdomain] = t
	}

	for name, t := range newByName {
		if _, ok := oldByName[name]; !ok {
			cs.NewTakeovers = append(cs.NewTakeovers, t)
		}
	}
	sort.Slice(cs.NewTakeovers, func(i, j int) bool {
		return cs.NewTakeovers[i].Subdomain < cs.NewTakeovers[j].Subdomain
	})

	for name := range oldByName {
		if _, ok := newByName[name]; !ok {
			cs.ResolvedTakeovers = append(cs.ResolvedTakeovers, name)
		}
	}
	sort.Strings(cs.ResolvedTakeovers)
}
