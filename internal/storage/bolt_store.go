package storage

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/vaultline-hq/vaultline-go/internal/domain"
)

const (
	submissionBucket = "submissions"
	expiryPrefixLen  = 8
)

// boltStore implements a Store backed by BoltDB. Each value is an 8-byte
// big-endian expiry timestamp followed by the JSON-encoded submission record.
type boltStore struct {
	db              *bolt.DB
	cleanupMu       sync.Mutex
	lastCleanup     atomic.Int64
	submissionTTL   time.Duration
	cleanupInterval time.Duration
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string, opts Options) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(submissionBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	store := &boltStore{
		db:              db,
		submissionTTL:   opts.SubmissionTTL,
		cleanupInterval: opts.CleanupInterval,
	}
	store.lastCleanup.Store(time.Now().Unix())
	return store, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// SeenSubmission checks if a transaction with the given id was already journaled.
func (b *boltStore) SeenSubmission(txID string) (bool, error) {
	if b == nil || b.db == nil {
		return false, nil
	}

	if err := b.maybeCleanupExpired(time.Now()); err != nil {
		return false, err
	}

	var exists bool
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(submissionBucket))
		if bucket == nil {
			return fmt.Errorf("submission bucket missing")
		}

		key := []byte(txID)
		value := bucket.Get(key)
		if value == nil {
			exists = false
			return nil
		}

		expiry, _, ok := decodeRecord(value)
		if !ok || !expiry.After(time.Now()) {
			exists = false
			return bucket.Delete(key)
		}

		exists = true
		return nil
	})
	return exists, err
}

// RecordSubmission journals a broadcast submission keyed by its transaction id.
func (b *boltStore) RecordSubmission(sub domain.Submission) error {
	if b == nil || b.db == nil {
		return nil
	}

	now := time.Now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return err
	}

	record, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encode submission: %w", err)
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(submissionBucket))
		if bucket == nil {
			return fmt.Errorf("submission bucket missing")
		}
		buf := make([]byte, expiryPrefixLen, expiryPrefixLen+len(record))
		binary.BigEndian.PutUint64(buf, uint64(now.Add(b.submissionTTL).Unix()))
		buf = append(buf, record...)
		return bucket.Put([]byte(sub.TxID), buf)
	})
}

// Submissions returns all unexpired journaled submissions.
func (b *boltStore) Submissions() ([]domain.Submission, error) {
	if b == nil || b.db == nil {
		return nil, nil
	}

	now := time.Now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return nil, err
	}

	var subs []domain.Submission
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(submissionBucket))
		if bucket == nil {
			return fmt.Errorf("submission bucket missing")
		}

		return bucket.ForEach(func(_, v []byte) error {
			expiry, record, ok := decodeRecord(v)
			if !ok || !expiry.After(now) {
				return nil
			}
			var sub domain.Submission
			if err := json.Unmarshal(record, &sub); err != nil {
				return nil
			}
			subs = append(subs, sub)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return subs, nil
}

// maybeCleanupExpired removes expired journal entries on a fixed cadence to avoid unbounded growth.
func (b *boltStore) maybeCleanupExpired(now time.Time) error {
	if b == nil || b.db == nil {
		return nil
	}

	last := time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	b.cleanupMu.Lock()
	defer b.cleanupMu.Unlock()

	last = time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(submissionBucket))
		if bucket == nil {
			return fmt.Errorf("submission bucket missing")
		}

		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			expiry, _, ok := decodeRecord(v)
			if !ok || !expiry.After(now) {
				if err := cursor.Delete(); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err == nil {
		b.lastCleanup.Store(now.Unix())
	}
	return err
}

// decodeRecord splits a stored value into its expiry time and JSON record.
func decodeRecord(value []byte) (time.Time, []byte, bool) {
	if len(value) < expiryPrefixLen {
		return time.Time{}, nil, false
	}
	unix := int64(binary.BigEndian.Uint64(value[:expiryPrefixLen]))
	if unix <= 0 {
		return time.Time{}, nil, false
	}
	return time.Unix(unix, 0), value[expiryPrefixLen:], true
}
