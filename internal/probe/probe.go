// Package probe fetches endpoints over HTTP and normalizes each
// response into an immutable EndpointRecord. Probing is best-effort
// per URL: a timeout or connection failure resolves to an unreachable
// record carrying an error flag, never an error return, so one hanging
// host cannot abort collection of the rest of the baseline.
package probe

import (
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/hakim/surfwatch/internal/fingerprint"
	"github.com/hakim/surfwatch/internal/models"
)

const defaultUserAgent = "Mozilla/5.0 (Security Scanner)"

// Config controls the probing pipeline.
type Config struct {
	// Workers bounds the number of concurrent probes.
	Workers int
	// Timeout applies per URL, not to the whole batch.
	Timeout time.Duration
	// UserAgent overrides the request User-Agent when non-empty.
	UserAgent string
}

// Prober probes URLs and builds endpoint records.
type Prober struct {
	cfg       Config
	transport *http.Transport
}

// New creates a Prober. Zero config fields fall back to 20 workers and
// a 10 second per-URL timeout. Certificate errors are ignored — the
// point is to observe what answers, not to trust it.
func New(cfg Config) *Prober {
	if cfg.Workers <= 0 {
		cfg.Workers = 20
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	return &Prober{
		cfg: cfg,
		transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		},
	}
}

// ProbeAll probes every URL through a bounded worker pool and returns
// the records keyed by URL. The batch completes even when individual
// probes fail or time out.
func (p *Prober) ProbeAll(ctx context.Context, urls []string) map[string]models.EndpointRecord {
	results := make(map[string]models.EndpointRecord, len(urls))

	jobs := make(chan string)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < p.cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for url := range jobs {
				rec := p.ProbeURL(ctx, url)
				mu.Lock()
				results[url] = rec
				mu.Unlock()
			}
		}()
	}

	for _, url := range urls {
		jobs <- url
	}
	close(jobs)
	wg.Wait()

	return results
}

// ProbeURL fetches one URL and normalizes the response. The returned
// record is complete: status, title, body length, content hash,
// detected technologies, redirect hops, and freshly computed flags.
func (p *Prober) ProbeURL(ctx context.Context, url string) models.EndpointRecord {
	rec := models.EndpointRecord{
		URL:   url,
		Flags: []models.Flag{},
	}

	reqCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	var redirects []string
	client := &http.Client{
		Transport: p.transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			redirects = append(redirects, via[len(via)-1].URL.String())
			return nil
		},
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		rec.Flags = append(rec.Flags, fingerprint.ErrorFlag(err.Error()))
		return rec
	}
	req.Header.Set("User-Agent", p.cfg.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		rec.Flags = append(rec.Flags, fingerprint.ErrorFlag(probeFailureReason(reqCtx, err)))
		return rec
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		rec.Flags = append(rec.Flags, fingerprint.ErrorFlag(err.Error()))
		return rec
	}

	status := resp.StatusCode
	rec.StatusCode = &status
	rec.BodyLength = len(body)
	rec.Reachable = true
	rec.Redirects = redirects

	sum := sha256.Sum256(body)
	rec.ContentHash = hex.EncodeToString(sum[:])

	rec.Headers = make(map[string]string, len(resp.Header))
	for name := range resp.Header {
		rec.Headers[name] = resp.Header.Get(name)
	}
	rec.Server = resp.Header.Get("Server")

	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		rec.Title = extractTitle(body)
	}

	rec.Technologies = DetectTechnologies(resp.Header, body)
	rec.Flags = fingerprint.Classify(&rec)

	return rec
}

// extractTitle pulls the first <title> text out of an HTML body.
func extractTitle(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

// probeFailureReason maps a transport error to the short reason stored
// on the error flag.
func probeFailureReason(ctx context.Context, err error) string {
	if ctx.Err() == context.DeadlineExceeded {
		return "Timeout"
	}
	if strings.Contains(err.Error(), "connection refused") {
		return "Connection Error"
	}
	return err.Error()
}
