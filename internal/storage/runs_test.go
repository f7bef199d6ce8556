package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakim/surfwatch/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "surfwatch.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndGetRun(t *testing.T) {
	store := testStore(t)

	meta := models.NewRunMeta("example.com")
	meta.SubdomainCount = 12
	meta.Alert = models.AlertHigh
	require.NoError(t, store.SaveRun(meta))

	got, err := store.GetRun(meta.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, meta.ID, got.ID)
	assert.Equal(t, "example.com", got.Domain)
	assert.Equal(t, 12, got.SubdomainCount)
	assert.Equal(t, models.AlertHigh, got.Alert)
}

func TestGetRunMissing(t *testing.T) {
	store := testStore(t)

	got, err := store.GetRun("nope")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestSaveRunIsIdempotentInIndex(t *testing.T) {
	store := testStore(t)

	meta := models.NewRunMeta("example.com")
	require.NoError(t, store.SaveRun(meta))
	meta.SubdomainCount = 5
	require.NoError(t, store.SaveRun(meta))

	runs, err := store.ListRuns("example.com")
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, 5, runs[0].SubdomainCount)
}

func TestListRunsNewestFirst(t *testing.T) {
	store := testStore(t)

	older := models.NewRunMeta("example.com")
	older.StartedAt = time.Now().Add(-2 * time.Hour)
	newer := models.NewRunMeta("example.com")
	require.NoError(t, store.SaveRun(older))
	require.NoError(t, store.SaveRun(newer))

	// A run for another domain stays out of the listing.
	other := models.NewRunMeta("other.com")
	require.NoError(t, store.SaveRun(other))

	runs, err := store.ListRuns("example.com")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, newer.ID, runs[0].ID)
	assert.Equal(t, older.ID, runs[1].ID)

	latest, err := store.GetLatestRun("example.com")
	require.NoError(t, err)
	assert.Equal(t, newer.ID, latest.ID)
}

func TestListRunsEmptyDomain(t *testing.T) {
	store := testStore(t)

	runs, err := store.ListRuns("unknown.com")
	assert.NoError(t, err)
	assert.Empty(t, runs)

	latest, err := store.GetLatestRun("unknown.com")
	assert.NoError(t, err)
	assert.Nil(t, latest)
}

func TestUpdateRunStatusStampsCompletion(t *testing.T) {
	store := testStore(t)

	meta := models.NewRunMeta("example.com")
	require.NoError(t, store.SaveRun(meta))

	require.NoError(t, store.UpdateRunStatus(meta.ID, models.StatusRunning))
	got, err := store.GetRun(meta.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRunning, got.Status)
	assert.Nil(t, got.CompletedAt)

	require.NoError(t, store.UpdateRunStatus(meta.ID, models.StatusComplete))
	got, err = store.GetRun(meta.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusComplete, got.Status)
	require.NotNil(t, got.CompletedAt)
	assert.WithinDuration(t, time.Now(), *got.CompletedAt, time.Minute)
}
