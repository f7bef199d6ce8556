// Package takeover matches subdomain CNAMEs against known
// dangling-service signatures and verifies candidates over HTTP.
package takeover

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hakim/surfwatch/internal/models"
	"github.com/hakim/surfwatch/internal/rules"
)

// FetchFunc retrieves the response body and status code for a URL.
// Implementations must honor the context deadline; errors are expected
// and swallowed by the verifier.
type FetchFunc func(ctx context.Context, url string) (body string, statusCode int, err error)

// verifyProtocols is the order in which a candidate's host is fetched.
var verifyProtocols = []string{"https", "http"}

// Match checks a subdomain's CNAME records against the signature table
// and returns a medium-confidence candidate for the first matching
// service, or nil when no signature matches. Ties between signatures
// are broken by table declaration order, not alphabetically.
func Match(subdomain string, cnames []string) *models.TakeoverCandidate {
	for _, cname := range cnames {
		cnameLower := strings.ToLower(cname)

		for _, sig := range rules.TakeoverSignatures {
			for _, pattern := range sig.CNAMEs {
				if strings.Contains(cnameLower, pattern) {
					return &models.TakeoverCandidate{
						Subdomain:  subdomain,
						CNAME:      cname,
						Service:    sig.Service,
						Confidence: models.ConfidenceMedium,
					}
				}
			}
		}
	}
	return nil
}

// Verify fetches the candidate's host over https then http and promotes
// the confidence to high when the response body contains one of the
// matched service's fingerprints. Fetch failures are swallowed per
// protocol; when nothing matches the candidate is returned unchanged at
// medium confidence, never discarded and never demoted.
func Verify(ctx context.Context, cand models.TakeoverCandidate, fetch FetchFunc) models.TakeoverCandidate {
	sig := rules.SignatureFor(cand.Service)
	if sig == nil {
		return cand
	}

	for _, protocol := range verifyProtocols {
		url := protocol + "://" + cand.Subdomain

		body, statusCode, err := fetch(ctx, url)
		if err != nil {
			continue
		}

		bodyLower := strings.ToLower(body)
		for _, fingerprint := range sig.Fingerprints {
			if strings.Contains(bodyLower, strings.ToLower(fingerprint)) {
				cand.Confidence = models.ConfidenceHigh
				cand.URL = url
				cand.StatusCode = statusCode
				cand.Fingerprint = fingerprint
				return cand
			}
		}
	}

	return cand
}

// VerifyAll runs Verify over each candidate sequentially and returns
// the updated list. Order is preserved.
func VerifyAll(ctx context.Context, candidates []models.TakeoverCandidate, fetch FetchFunc) []models.TakeoverCandidate {
	verified := make([]models.TakeoverCandidate, 0, len(candidates))
	for _, cand := range candidates {
		verified = append(verified, Verify(ctx, cand, fetch))
	}
	return verified
}

// NewHTTPFetcher returns a FetchFunc backed by a plain HTTP client with
// the given per-request timeout. Redirects are followed.
func NewHTTPFetcher(timeout time.Duration) FetchFunc {
	client := &http.Client{Timeout: timeout}

	return func(ctx context.Context, url string) (string, int, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", 0, err
		}
		resp, err := client.Do(req)
		if err != nil {
			return "", 0, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", 0, err
		}
		return string(body), resp.StatusCode, nil
	}
}
