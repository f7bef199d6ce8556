// Package fingerprint derives security flags from a single probed
// endpoint record. Classification is pure: it reads the record and the
// static rule tables, produces flags, and touches nothing else, so it
// is safe to call concurrently from the probing workers.
package fingerprint

import (
	"fmt"
	"strings"

	"github.com/hakim/surfwatch/internal/models"
	"github.com/hakim/surfwatch/internal/rules"
)

// Classify evaluates every flag rule against the record and returns all
// flags that apply. An endpoint may receive any number of flags; rules
// are independent of one another.
func Classify(rec *models.EndpointRecord) []models.Flag {
	// Always a non-nil slice: records carry their flags into baseline
	// JSON, where a clean endpoint must serialize as [] rather than null.
	flags := []models.Flag{}

	flags = append(flags, urlKeywordFlags(rec.URL)...)
	flags = append(flags, titleKeywordFlags(rec.Title)...)
	flags = append(flags, outdatedTechFlags(rec.Technologies)...)

	if f := statusFlag(rec); f != nil {
		flags = append(flags, *f)
	}
	if f := securityHeaderFlag(rec); f != nil {
		flags = append(flags, *f)
	}
	if f := redirectFlag(rec); f != nil {
		flags = append(flags, *f)
	}
	if f := directoryListingFlag(rec); f != nil {
		flags = append(flags, *f)
	}
	if f := defaultPageFlag(rec); f != nil {
		flags = append(flags, *f)
	}

	return flags
}

// ErrorFlag builds the flag attached to a record whose probe never
// completed. Probe failures are recorded, not raised.
func ErrorFlag(reason string) models.Flag {
	return models.Flag{
		Kind:     models.FlagError,
		Message:  reason,
		Severity: models.SeverityLow,
	}
}

// urlKeywordFlags checks the URL against every high-value keyword
// group. The first keyword hit per group produces one flag.
func urlKeywordFlags(url string) []models.Flag {
	urlLower := strings.ToLower(url)

	var flags []models.Flag
	for _, group := range rules.HighValueKeywords {
		for _, kw := range group.Keywords {
			if !strings.Contains(urlLower, kw) {
				continue
			}
			severity := models.SeverityMedium
			if rules.IsHighSeverityCategory(group.Category) {
				severity = models.SeverityHigh
			}
			flags = append(flags, models.Flag{
				Kind:     models.FlagHighValue,
				Category: group.Category,
				Keyword:  kw,
				Message:  fmt.Sprintf("High-value target: %s (%s in URL)", group.Category, kw),
				Severity: severity,
			})
			break
		}
	}
	return flags
}

// titleKeywordFlags checks the page title against the same keyword
// groups. Title matches are always medium severity.
func titleKeywordFlags(title string) []models.Flag {
	if title == "" {
		return nil
	}
	titleLower := strings.ToLower(title)

	var flags []models.Flag
	for _, group := range rules.HighValueKeywords {
		for _, kw := range group.Keywords {
			if !strings.Contains(titleLower, kw) {
				continue
			}
			flags = append(flags, models.Flag{
				Kind:     models.FlagHighValue,
				Category: group.Category,
				Keyword:  kw,
				Message:  fmt.Sprintf("High-value target: %s (%s in title)", group.Category, kw),
				Severity: models.SeverityMedium,
			})
			break
		}
	}
	return flags
}

// outdatedTechFlags flags any detected technology string that contains
// a known product name together with one of its vulnerable versions.
// The product match is case-insensitive; the version substring must
// appear verbatim.
func outdatedTechFlags(technologies []string) []models.Flag {
	var flags []models.Flag
	for _, tech := range technologies {
		techLower := strings.ToLower(tech)
		for _, entry := range rules.OutdatedTechVersions {
			if !strings.Contains(techLower, strings.ToLower(entry.Product)) {
				continue
			}
			for _, version := range entry.Versions {
				if strings.Contains(tech, version) {
					flags = append(flags, models.Flag{
						Kind:     models.FlagOutdatedTech,
						Message:  fmt.Sprintf("Outdated/vulnerable technology: %s", tech),
						Severity: models.SeverityHigh,
					})
					break
				}
			}
		}
	}
	return flags
}

// statusFlag flags responses whose status code is in the trigger set.
func statusFlag(rec *models.EndpointRecord) *models.Flag {
	status := rec.Status()
	if !rules.StatusFlagSet[status] {
		return nil
	}

	// Unreachable while 404 stays out of StatusFlagSet; the severity
	// expression is kept as written rather than second-guessed.
	severity := models.SeverityMedium
	if status == 404 {
		severity = models.SeverityLow
	}

	label, ok := rules.InterestingStatuses[status]
	if !ok {
		label = "Unknown"
	}
	return &models.Flag{
		Kind:     models.FlagStatus,
		Message:  fmt.Sprintf("Interesting status: %d - %s", status, label),
		Severity: severity,
	}
}

// securityHeaderFlag flags 200 responses missing any of the expected
// security headers. Header lookup is by exact name.
func securityHeaderFlag(rec *models.EndpointRecord) *models.Flag {
	if rec.Status() != 200 {
		return nil
	}

	var missing []string
	for _, h := range rules.SecurityHeaders {
		if _, ok := rec.Headers[h]; !ok {
			missing = append(missing, h)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &models.Flag{
		Kind:     models.FlagSecurity,
		Message:  fmt.Sprintf("Missing security headers: %s", strings.Join(missing, ", ")),
		Severity: models.SeverityLow,
	}
}

// redirectFlag flags endpoints that answered through one or more
// redirect hops (potential open redirect).
func redirectFlag(rec *models.EndpointRecord) *models.Flag {
	if len(rec.Redirects) == 0 {
		return nil
	}
	return &models.Flag{
		Kind:     models.FlagRedirect,
		Message:  fmt.Sprintf("Redirects detected: %d hop(s)", len(rec.Redirects)),
		Severity: models.SeverityLow,
	}
}

// directoryListingFlag flags 200 responses whose title looks like an
// index page.
func directoryListingFlag(rec *models.EndpointRecord) *models.Flag {
	if rec.Status() != 200 {
		return nil
	}
	if !strings.Contains(strings.ToLower(rec.Title), "index of") {
		return nil
	}
	return &models.Flag{
		Kind:     models.FlagDirectoryListing,
		Message:  "Possible directory listing",
		Severity: models.SeverityMedium,
	}
}

// defaultPageFlag flags endpoints serving a default or placeholder
// install page, identified by well-known title substrings.
func defaultPageFlag(rec *models.EndpointRecord) *models.Flag {
	titleLower := strings.ToLower(rec.Title)
	for _, dt := range rules.DefaultPageTitles {
		if strings.Contains(titleLower, dt) {
			return &models.Flag{
				Kind:     models.FlagDefaultPage,
				Message:  "Default/test page detected",
				Severity: models.SeverityLow,
			}
		}
	}
	return nil
}
