// Package rules holds the static classification tables used by the
// fingerprint, urlclass, and takeover packages. Tables are plain slices
// evaluated in declaration order so matching is deterministic; none of
// them are mutated at runtime.
package rules

// KeywordGroup names a high-value category and the keywords whose
// presence in a URL or page title flags an endpoint as belonging to it.
type KeywordGroup struct {
	Category string
	Keywords []string
}

// HighValueKeywords maps keyword groups to the categories flagged on
// probed endpoints. Matching is case-insensitive substring containment;
// the first keyword hit per group wins.
var HighValueKeywords = []KeywordGroup{
	{"admin", []string{"admin", "administrator", "console", "dashboard", "panel", "manage"}},
	{"auth", []string{"login", "signin", "authenticate", "auth", "sso", "oauth"}},
	{"backup", []string{"backup", "bak", "old", "archive", "dump", "sql"}},
	{"dev", []string{"dev", "development", "test", "staging", "debug", "beta"}},
	{"api", []string{"api", "graphql", "rest", "endpoint", "swagger", "docs"}},
	{"upload", []string{"upload", "uploader", "file", "attachment", "media"}},
	{"sensitive", []string{"config", "env", "secret", "key", "token", "password"}},
	{"internal", []string{"internal", "private", "corp", "vpn", "intranet"}},
}

// highSeverityCategories are the keyword groups that escalate a URL
// match to high severity. Title matches stay at medium regardless.
var highSeverityCategories = map[string]bool{
	"admin":  true,
	"backup": true,
	"upload": true,
}

// IsHighSeverityCategory reports whether a URL keyword match in the
// given category is high severity.
func IsHighSeverityCategory(category string) bool {
	return highSeverityCategories[category]
}

// OutdatedTech pairs a product name with the version substrings known
// to carry exploitable vulnerabilities. A technology string matches
// when it contains the product name (case-insensitive) and one of the
// listed version substrings verbatim.
type OutdatedTech struct {
	Product  string
	Versions []string
}

// OutdatedTechVersions is the vulnerable-version table.
var OutdatedTechVersions = []OutdatedTech{
	{"Apache", []string{"2.4.49", "2.4.50"}}, // path traversal CVEs
	{"nginx", []string{"1.18.0", "1.19.0"}},
	{"PHP", []string{"7.3", "7.4", "5.6"}},
	{"WordPress", []string{"5.8", "5.9"}},
	{"jQuery", []string{"1.", "2.", "3.0", "3.1", "3.2"}},
	{"Drupal", []string{"7.", "8."}},
	{"Joomla", []string{"3."}},
	{"IIS", []string{"8.5", "10.0"}},
}

// InterestingStatuses maps status codes worth flagging to a label.
// Only the codes in StatusFlagSet actually trigger a status flag; the
// rest exist for message rendering.
var InterestingStatuses = map[int]string{
	200: "OK",
	201: "Created",
	204: "No Content",
	301: "Moved Permanently",
	302: "Found (Redirect)",
	307: "Temporary Redirect",
	308: "Permanent Redirect",
	400: "Bad Request",
	401: "Unauthorized",
	403: "Forbidden",
	404: "Not Found",
	405: "Method Not Allowed",
	500: "Internal Server Error",
	502: "Bad Gateway",
	503: "Service Unavailable",
}

// StatusFlagSet is the set of status codes that produce a status flag.
// 404 is deliberately absent: the historical severity expression
// special-cased it, but it was never part of the triggering set, and
// that behavior is kept as-is.
var StatusFlagSet = map[int]bool{
	401: true,
	403: true,
	500: true,
	502: true,
	503: true,
}

// SecurityHeaders are the response headers whose absence on a 200
// response produces a security flag. Lookup is by exact header name.
var SecurityHeaders = []string{
	"X-Frame-Options",
	"X-Content-Type-Options",
	"Strict-Transport-Security",
	"Content-Security-Policy",
}

// DefaultPageTitles are title substrings that identify a default or
// placeholder install page.
var DefaultPageTitles = []string{
	"apache",
	"nginx",
	"welcome",
	"default page",
	"test page",
	"it works",
}
