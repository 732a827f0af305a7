package storage

import (
	"testing"
	"time"

	"github.com/vaultline-hq/vaultline-go/internal/domain"
)

func TestBoltStoreRecordsAndExpiresSubmissions(t *testing.T) {
	dir := t.TempDir()
	opts := Options{
		SubmissionTTL:   1 * time.Second,
		CleanupInterval: 1 * time.Second,
	}

	storeRaw, err := openBolt(dir+"/journal.db", opts)
	if err != nil {
		t.Fatalf("openBolt: %v", err)
	}
	store := storeRaw.(*boltStore)
	defer store.Close()

	seen, err := store.SeenSubmission("tx-1")
	if err != nil || seen {
		t.Fatalf("expected unseen submission, seen=%v err=%v", seen, err)
	}

	sub := domain.Submission{
		TxID:        "tx-1",
		TxHash:      "0xabc",
		WalletID:    "w-1",
		Chain:       "ethereum",
		Status:      "broadcast",
		SubmittedAt: time.Now().UTC(),
	}
	if err := store.RecordSubmission(sub); err != nil {
		t.Fatalf("RecordSubmission: %v", err)
	}

	seen, err = store.SeenSubmission("tx-1")
	if err != nil || !seen {
		t.Fatalf("expected submission journaled, got seen=%v err=%v", seen, err)
	}

	subs, err := store.Submissions()
	if err != nil {
		t.Fatalf("Submissions: %v", err)
	}
	if len(subs) != 1 || subs[0].TxID != "tx-1" || subs[0].TxHash != "0xabc" {
		t.Fatalf("unexpected journal contents: %#v", subs)
	}

	// Fast-forward cleanup cadence and trigger expiry.
	store.lastCleanup.Store(time.Now().Add(-2 * time.Second).Unix())
	time.Sleep(1100 * time.Millisecond)

	seen, err = store.SeenSubmission("tx-1")
	if err != nil {
		t.Fatalf("SeenSubmission after expiry: %v", err)
	}
	if seen {
		t.Fatalf("expected entry to expire and be removed")
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "", Options{})
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.RecordSubmission(domain.Submission{TxID: "x"}); err != nil {
		t.Fatalf("noop store RecordSubmission: %v", err)
	}
	subs, err := store.Submissions()
	if err != nil || subs != nil {
		t.Fatalf("noop store Submissions: subs=%v err=%v", subs, err)
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore("redis", "", Options{}); err == nil {
		t.Fatalf("expected error for unsupported storage type")
	}
}
