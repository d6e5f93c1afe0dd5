package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"study-tracker/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"
)

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	now := time.Now()
	store.now = func() time.Time { return now }

	sess := &Session{ID: "s1", LoggedIn: true, UserName: "A"}
	require.NoError(t, store.Save(ctx, sess))

	// stored copy is independent of the caller's value
	sess.UserName = "changed"
	got, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "A", got.UserName)

	store.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = store.Load(ctx, "s1")
	assert.ErrorIs(t, err, errors.ErrSessionNotFound)
}

func TestBoltStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sessions", "sessions.db")

	store, err := NewBoltStore(path, time.Hour)
	require.NoError(t, err)

	sess := &Session{ID: "s1", LoggedIn: true, UserName: "A"}
	sess.Goals[time.Saturday] = 4
	require.NoError(t, store.Save(ctx, sess))
	require.NoError(t, store.Close())

	// reopen: sessions survive a restart
	store, err = NewBoltStore(path, time.Hour)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "A", got.UserName)
	assert.Equal(t, 4.0, got.Goals[time.Saturday])

	_, err = store.Load(ctx, "missing")
	assert.ErrorIs(t, err, errors.ErrSessionNotFound)
}

func TestMemoryStoreSweepsOnSave(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)
	now := time.Now()
	store.now = func() time.Time { return now }

	for _, id := range []string{"s1", "s2", "s3"} {
		require.NoError(t, store.Save(ctx, &Session{ID: id}))
	}
	assert.Len(t, store.sessions, 3)

	store.now = func() time.Time { return now.Add(24 * time.Hour) }
	require.NoError(t, store.Save(ctx, &Session{ID: "s4"}))
	assert.Len(t, store.sessions, 1)

	_, err := store.Load(ctx, "s4")
	assert.NoError(t, err)
}

func TestBoltStoreSweepsOnSave(t *testing.T) {
	ctx := context.Background()
	store, err := NewBoltStore(filepath.Join(t.TempDir(), "sessions.db"), time.Minute)
	require.NoError(t, err)
	defer store.Close()

	now := time.Now()
	store.now = func() time.Time { return now }
	for _, id := range []string{"s1", "s2", "s3"} {
		require.NoError(t, store.Save(ctx, &Session{ID: id}))
	}

	store.now = func() time.Time { return now.Add(24 * time.Hour) }
	require.NoError(t, store.Save(ctx, &Session{ID: "s4"}))

	var keys int
	require.NoError(t, store.db.View(func(tx *bbolt.Tx) error {
		keys = tx.Bucket(sessionsBucket).Stats().KeyN
		return nil
	}))
	assert.Equal(t, 1, keys)
}
