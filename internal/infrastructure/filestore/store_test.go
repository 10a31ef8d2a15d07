package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanosuguru/carnival-corner/internal/domain/event"
	"github.com/sanosuguru/carnival-corner/internal/domain/persistence"
)

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := New(filepath.Join(t.TempDir(), "snapshots"))
	require.NoError(t, err)

	e := event.NewEvent(event.Details{Name: "Karachi Eat", City: "Karachi", Price: 300})
	e.ID = 3
	require.NoError(t, e.BookSeats([]string{"A1", "J10"}))
	in := []*event.Event{e}

	require.NoError(t, store.Persist(ctx, persistence.KeyEvents, in))

	var out []*event.Event
	found, err := store.Restore(ctx, persistence.KeyEvents, &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestStore_PersistOverwrites(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, store.Persist(ctx, "vendors", []int{1, 2, 3}))
	require.NoError(t, store.Persist(ctx, "vendors", []int{4}))

	var out []int
	found, err := store.Restore(ctx, "vendors", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []int{4}, out)

	// 一時ファイルが残っていない
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "vendors.json", entries[0].Name())
}

func TestStore_RestoreMissing(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	var out []int
	found, err := store.Restore(context.Background(), "bookings", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, out)
}

func TestStore_RestoreCorrupted(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "events.json"), []byte("{not json"), 0o644))
	store, err := New(dir)
	require.NoError(t, err)

	var out []*event.Event
	found, err := store.Restore(context.Background(), "events", &out)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestStore_InvalidKey(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape", "a/b", "with space"} {
		t.Run(key, func(t *testing.T) {
			assert.ErrorIs(t, store.Persist(context.Background(), key, 1), ErrInvalidKey)
			var out int
			_, err := store.Restore(context.Background(), key, &out)
			assert.ErrorIs(t, err, ErrInvalidKey)
		})
	}
}
