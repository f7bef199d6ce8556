package discovery

import (
	"context"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/hakim/surfwatch/internal/tools"
)

// ResolveCNAMEs maps each subdomain to its CNAME targets. It prefers
// dnsx when the binary is available (one batch invocation) and falls
// back to the stdlib resolver with a bounded worker pool otherwise.
// Subdomains without a CNAME are simply absent from the result.
func ResolveCNAMEs(ctx context.Context, subdomains []string, dnsxPath string) map[string][]string {
	if records, err := tools.RunDnsx(ctx, subdomains, dnsxPath); err == nil {
		cnames := make(map[string][]string)
		for _, rec := range records {
			if len(rec.CNAME) > 0 {
				cnames[rec.Host] = rec.CNAME
			}
		}
		return cnames
	}

	return resolveWithStdlib(ctx, subdomains)
}

// resolveWithStdlib performs per-host CNAME lookups through
// net.DefaultResolver, 10 at a time with a short per-lookup timeout.
func resolveWithStdlib(ctx context.Context, subdomains []string) map[string][]string {
	cnames := make(map[string][]string)

	jobs := make(chan string)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sub := range jobs {
				lookupCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
				cname, err := net.DefaultResolver.LookupCNAME(lookupCtx, sub)
				cancel()
				if err != nil {
					continue
				}
				cname = strings.TrimSuffix(cname, ".")
				// LookupCNAME echoes the input name when no CNAME exists
				if cname == "" || strings.EqualFold(cname, sub) {
					continue
				}
				mu.Lock()
				cnames[sub] = []string{cname}
				mu.Unlock()
			}
		}()
	}

	for _, sub := range subdomains {
		jobs <- sub
	}
	close(jobs)
	wg.Wait()

	return cnames
}
