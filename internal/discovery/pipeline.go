// Package discovery merges passive subdomain sources and resolves
// which of the discovered names look hijackable. External tools are
// strictly best-effort: a missing binary or a failed source shrinks
// the result, it never fails the pipeline.
package discovery

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/hakim/surfwatch/internal/models"
	"github.com/hakim/surfwatch/internal/takeover"
	"github.com/hakim/surfwatch/internal/tools"
)

// Config controls a discovery pass.
type Config struct {
	SubfinderPath    string
	AssetfinderPath  string
	DnsxPath         string
	SubfinderThreads int
	// SkipTakeoverCheck disables CNAME resolution and verification.
	SkipTakeoverCheck bool
	// VerifyTimeout caps each takeover verification fetch.
	VerifyTimeout time.Duration
}

// Result aggregates one discovery pass.
type Result struct {
	Subdomains []string                   // deduplicated, sorted
	BySource   map[string][]string        // source name -> names it contributed
	CNAMEs     map[string][]string        // subdomain -> CNAME targets
	Takeovers  []models.TakeoverCandidate // verified candidates (medium and high)
}

// Run executes every subdomain source, merges the results, resolves
// CNAMEs, and matches plus verifies takeover candidates.
func Run(ctx context.Context, domain string, cfg Config) *Result {
	result := &Result{
		BySource: make(map[string][]string),
		CNAMEs:   make(map[string][]string),
	}

	seen := make(map[string]bool)
	merge := func(source string, subs []string, err error) {
		if err != nil {
			fmt.Printf("[!] Warning: %s failed: %v\n", source, err)
			return
		}
		result.BySource[source] = subs
		for _, sub := range subs {
			if !seen[sub] {
				seen[sub] = true
				result.Subdomains = append(result.Subdomains, sub)
			}
		}
		fmt.Printf("[+] %s: %d subdomains\n", source, len(subs))
	}

	fmt.Printf("[*] Discovering subdomains for %s...\n", domain)

	subs, err := tools.RunSubfinder(ctx, domain, cfg.SubfinderThreads, cfg.SubfinderPath)
	merge("subfinder", subs, err)

	subs, err = tools.RunAssetfinder(ctx, domain, cfg.AssetfinderPath)
	merge("assetfinder", subs, err)

	subs, err = QueryCrtsh(ctx, domain)
	merge("crt.sh", subs, err)

	sort.Strings(result.Subdomains)
	fmt.Printf("[+] Total unique subdomains: %d\n", len(result.Subdomains))

	if cfg.SkipTakeoverCheck || len(result.Subdomains) == 0 {
		return result
	}

	// CNAME resolution feeds the takeover matcher
	fmt.Printf("[*] Resolving CNAME records...\n")
	result.CNAMEs = ResolveCNAMEs(ctx, result.Subdomains, cfg.DnsxPath)
	fmt.Printf("[+] CNAMEs: %d\n", len(result.CNAMEs))

	var candidates []models.TakeoverCandidate
	for _, sub := range result.Subdomains {
		cnames, ok := result.CNAMEs[sub]
		if !ok {
			continue
		}
		if cand := takeover.Match(sub, cnames); cand != nil {
			candidates = append(candidates, *cand)
		}
	}

	if len(candidates) > 0 {
		fmt.Printf("[*] Verifying %d potential takeover(s)...\n", len(candidates))
		timeout := cfg.VerifyTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		fetch := takeover.NewHTTPFetcher(timeout)
		result.Takeovers = takeover.VerifyAll(ctx, candidates, fetch)

		for _, t := range result.Takeovers {
			if t.Confidence == models.ConfidenceHigh {
				fmt.Printf("[!] POSSIBLE TAKEOVER: %s (%s, fingerprint %q)\n",
					t.Subdomain, t.Service, t.Fingerprint)
			}
		}
	}

	return result
}
