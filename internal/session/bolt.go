package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"study-tracker/pkg/errors"

	"go.etcd.io/bbolt"
)

var sessionsBucket = []byte("Sessions")

type boltEntry struct {
	Session   Session   `json:"session"`
	ExpiresAt time.Time `json:"expires_at"`
}

// BoltStore persists sessions in a local bbolt file so a single-node
// deployment keeps logins across restarts.
type BoltStore struct {
	db  *bbolt.DB
	ttl time.Duration
	now func() time.Time
}

func NewBoltStore(path string, ttl time.Duration) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open session db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db, ttl: ttl, now: time.Now}, nil
}

func (b *BoltStore) Close() error {
	return b.db.Close()
}

func (b *BoltStore) Save(ctx context.Context, sess *Session) error {
	now := b.now()
	data, err := json.Marshal(boltEntry{Session: *sess, ExpiresAt: now.Add(b.ttl)})
	if err != nil {
		return err
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(sessionsBucket)
		if b.ttl > 0 {
			if err := sweep(bucket, now); err != nil {
				return err
			}
		}
		return bucket.Put([]byte(sess.ID), data)
	})
}

// sweep deletes expired entries. Keys are collected first since deleting
// under a cursor skips elements.
func sweep(bucket *bbolt.Bucket, now time.Time) error {
	var expired [][]byte
	err := bucket.ForEach(func(k, v []byte) error {
		var entry boltEntry
		if err := json.Unmarshal(v, &entry); err != nil || now.After(entry.ExpiresAt) {
			expired = append(expired, append([]byte(nil), k...))
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, k := range expired {
		if err := bucket.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

func (b *BoltStore) Load(ctx context.Context, id string) (*Session, error) {
	var entry boltEntry
	err := b.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(sessionsBucket).Get([]byte(id))
		if v == nil {
			return errors.ErrSessionNotFound
		}
		return json.Unmarshal(v, &entry)
	})
	if err != nil {
		return nil, err
	}

	if b.ttl > 0 && b.now().After(entry.ExpiresAt) {
		_ = b.db.Update(func(tx *bbolt.Tx) error {
			return tx.Bucket(sessionsBucket).Delete([]byte(id))
		})
		return nil, errors.ErrSessionNotFound
	}
	return &entry.Session, nil
}
