package takeover

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakim/surfwatch/internal/models"
)

func TestMatchHerokuCNAME(t *testing.T) {
	cand := Match("app.example.com", []string{"myapp.herokuapp.com."})

	require.NotNil(t, cand)
	assert.Equal(t, "heroku", cand.Service)
	assert.Equal(t, "app.example.com", cand.Subdomain)
	assert.Equal(t, "myapp.herokuapp.com.", cand.CNAME)
	assert.Equal(t, models.ConfidenceMedium, cand.Confidence)
}

func TestMatchIsCaseInsensitive(t *testing.T) {
	cand := Match("pages.example.com", []string{"Example.GitHub.IO"})

	require.NotNil(t, cand)
	assert.Equal(t, "github", cand.Service)
	// Original CNAME casing is preserved in the candidate.
	assert.Equal(t, "Example.GitHub.IO", cand.CNAME)
}

func TestMatchTableOrderBreaksTies(t *testing.T) {
	// "github.map.fastly.net" satisfies both the github and fastly
	// patterns; github comes first in the table and wins.
	cand := Match("pages.example.com", []string{"example.github.map.fastly.net"})

	require.NotNil(t, cand)
	assert.Equal(t, "github", cand.Service)
}

func TestMatchNoSignature(t *testing.T) {
	assert.Nil(t, Match("www.example.com", []string{"lb.example-cdn.net"}))
	assert.Nil(t, Match("www.example.com", nil))
}

func TestVerifyPromotesOnFingerprint(t *testing.T) {
	cand := models.TakeoverCandidate{
		Subdomain:  "app.example.com",
		CNAME:      "myapp.herokuapp.com",
		Service:    "heroku",
		Confidence: models.ConfidenceMedium,
	}

	fetch := func(ctx context.Context, url string) (string, int, error) {
		return "<html><body>No such app</body></html>", 404, nil
	}

	got := Verify(context.Background(), cand, fetch)
	assert.Equal(t, models.ConfidenceHigh, got.Confidence)
	assert.Equal(t, "https://app.example.com", got.URL)
	assert.Equal(t, 404, got.StatusCode)
	assert.Equal(t, "No such app", got.Fingerprint)
}

func TestVerifyFingerprintMatchIsCaseInsensitive(t *testing.T) {
	cand := models.TakeoverCandidate{
		Subdomain:  "app.example.com",
		Service:    "heroku",
		Confidence: models.ConfidenceMedium,
	}

	fetch := func(ctx context.Context, url string) (string, int, error) {
		return "NO SUCH APP", 404, nil
	}

	got := Verify(context.Background(), cand, fetch)
	assert.Equal(t, models.ConfidenceHigh, got.Confidence)
}

func TestVerifyFallsBackToHTTP(t *testing.T) {
	cand := models.TakeoverCandidate{
		Subdomain:  "app.example.com",
		Service:    "heroku",
		Confidence: models.ConfidenceMedium,
	}

	var urls []string
	fetch := func(ctx context.Context, url string) (string, int, error) {
		urls = append(urls, url)
		if url == "https://app.example.com" {
			return "", 0, errors.New("tls handshake failure")
		}
		return "No such app", 404, nil
	}

	got := Verify(context.Background(), cand, fetch)
	assert.Equal(t, []string{"https://app.example.com", "http://app.example.com"}, urls)
	assert.Equal(t, models.ConfidenceHigh, got.Confidence)
	assert.Equal(t, "http://app.example.com", got.URL)
}

func TestVerifyNoFingerprintStaysMedium(t *testing.T) {
	cand := models.TakeoverCandidate{
		Subdomain:  "app.example.com",
		Service:    "heroku",
		Confidence: models.ConfidenceMedium,
	}

	fetch := func(ctx context.Context, url string) (string, int, error) {
		return "<html>Welcome to my app</html>", 200, nil
	}

	got := Verify(context.Background(), cand, fetch)
	assert.Equal(t, models.ConfidenceMedium, got.Confidence)
	assert.Empty(t, got.URL)
	assert.Empty(t, got.Fingerprint)
}

func TestVerifyAllFetchFailuresStaysMedium(t *testing.T) {
	cand := models.TakeoverCandidate{
		Subdomain:  "app.example.com",
		Service:    "heroku",
		Confidence: models.ConfidenceMedium,
	}

	fetch := func(ctx context.Context, url string) (string, int, error) {
		return "", 0, errors.New("connection refused")
	}

	got := Verify(context.Background(), cand, fetch)
	assert.Equal(t, models.ConfidenceMedium, got.Confidence)
}

func TestVerifyUnknownServiceUnchanged(t *testing.T) {
	cand := models.TakeoverCandidate{
		Subdomain:  "app.example.com",
		Service:    "not-a-service",
		Confidence: models.ConfidenceMedium,
	}

	called := false
	fetch := func(ctx context.Context, url string) (string, int, error) {
		called = true
		return "", 0, nil
	}

	got := Verify(context.Background(), cand, fetch)
	assert.False(t, called)
	assert.Equal(t, cand, got)
}

func TestVerifyAllPreservesOrder(t *testing.T) {
	candidates := []models.TakeoverCandidate{
		{Subdomain: "a.example.com", Service: "heroku", Confidence: models.ConfidenceMedium},
		{Subdomain: "b.example.com", Service: "github", Confidence: models.ConfidenceMedium},
	}

	fetch := func(ctx context.Context, url string) (string, int, error) {
		return "No such app", 404, nil
	}

	got := VerifyAll(context.Background(), candidates, fetch)
	require.Len(t, got, 2)
	assert.Equal(t, "a.example.com", got[0].Subdomain)
	assert.Equal(t, models.ConfidenceHigh, got[0].Confidence)
	// The github fingerprints don't appear in the body; b stays medium.
	assert.Equal(t, "b.example.com", got[1].Subdomain)
	assert.Equal(t, models.ConfidenceMedium, got[1].Confidence)
}
