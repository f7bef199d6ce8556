package notify

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakim/surfwatch/internal/models"
)

func changeSet() *models.ChangeSet {
	cs := models.NewChangeSet("example.com", "20260830_120000")
	cs.NewSubdomains = []string{"new.example.com"}
	cs.NewTakeovers = []models.TakeoverCandidate{
		{Subdomain: "t.example.com", Service: "heroku", Confidence: models.ConfidenceHigh},
	}
	return cs
}

func TestSendChangesPostsPayload(t *testing.T) {
	var received changePayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := &Notifier{WebhookURL: srv.URL, MinLevel: models.AlertNormal}
	err := n.SendChanges(changeSet(), models.AlertCritical)
	require.NoError(t, err)

	assert.Equal(t, "example.com", received.Domain)
	assert.Equal(t, "critical", received.AlertLevel)
	assert.Equal(t, 1, received.NewSubdomains)
	assert.Equal(t, 1, received.NewTakeovers)
	assert.Contains(t, received.Message, "takeover")
}

func TestSendChangesGatedByMinLevel(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	n := &Notifier{WebhookURL: srv.URL, MinLevel: models.AlertCritical}

	assert.NoError(t, n.SendChanges(changeSet(), models.AlertNormal))
	assert.NoError(t, n.SendChanges(changeSet(), models.AlertHigh))
	assert.False(t, called)

	assert.NoError(t, n.SendChanges(changeSet(), models.AlertCritical))
	assert.True(t, called)
}

func TestSendChangesEmptyURLIsNoOp(t *testing.T) {
	n := &Notifier{MinLevel: models.AlertNormal}
	assert.NoError(t, n.SendChanges(changeSet(), models.AlertCritical))
}

func TestSendChangesNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := &Notifier{WebhookURL: srv.URL, MinLevel: models.AlertNormal}
	err := n.SendChanges(changeSet(), models.AlertHigh)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestSendChangesUnreachableIsError(t *testing.T) {
	n := &Notifier{WebhookURL: "http://127.0.0.1:1", MinLevel: models.AlertNormal}
	assert.Error(t, n.SendChanges(changeSet(), models.AlertHigh))
}
