package probe

import (
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strings"
)

// headerTech pairs a response header with an optional product label.
// An empty label means the header value is the technology string itself
// (e.g. Server: nginx/1.18.0).
type headerTech struct {
	header string
	label  string
}

var techHeaders = []headerTech{
	{"Server", ""},
	{"X-Powered-By", ""},
	{"X-AspNet-Version", "ASP.NET"},
	{"X-AspNetMvc-Version", "ASP.NET MVC"},
	{"X-Generator", ""},
	{"X-Drupal-Cache", "Drupal"},
	{"X-Drupal-Dynamic-Cache", "Drupal"},
}

var (
	wordpressVersionRe = regexp.MustCompile(`wordpress[/\s]+(\d+\.\d+(?:\.\d+)?)`)
	jqueryVersionRe    = regexp.MustCompile(`jquery[/-]?(\d+\.\d+\.\d+)`)
	bootstrapVersionRe = regexp.MustCompile(`bootstrap[/-]?(\d+\.\d+\.\d+)`)
)

// DetectTechnologies identifies technologies from response headers and
// body content markers. The result is deduplicated and sorted.
func DetectTechnologies(header http.Header, body []byte) []string {
	seen := make(map[string]bool)

	for _, ht := range techHeaders {
		value := header.Get(ht.header)
		if value == "" {
			continue
		}
		if ht.label != "" {
			seen[fmt.Sprintf("%s %s", ht.label, value)] = true
		} else {
			seen[value] = true
		}
	}

	content := strings.ToLower(string(body))

	if strings.Contains(content, "wp-content") || strings.Contains(content, "wp-includes") {
		if m := wordpressVersionRe.FindStringSubmatch(content); m != nil {
			seen["WordPress "+m[1]] = true
		} else {
			seen["WordPress"] = true
		}
	}

	if m := jqueryVersionRe.FindStringSubmatch(content); m != nil {
		seen["jQuery "+m[1]] = true
	}

	if strings.Contains(content, "react") && strings.Contains(content, "__react") {
		seen["React"] = true
	}

	if strings.Contains(content, "vue.js") || strings.Contains(content, "vuejs") {
		seen["Vue.js"] = true
	}

	if strings.Contains(content, "ng-app") || strings.Contains(content, "angular") {
		seen["Angular"] = true
	}

	if m := bootstrapVersionRe.FindStringSubmatch(content); m != nil {
		seen["Bootstrap "+m[1]] = true
	}

	if strings.Contains(content, "drupal") {
		seen["Drupal"] = true
	}

	if strings.Contains(content, "joomla") {
		seen["Joomla"] = true
	}

	technologies := make([]string, 0, len(seen))
	for t := range seen {
		technologies = append(technologies, t)
	}
	sort.Strings(technologies)
	return technologies
}
