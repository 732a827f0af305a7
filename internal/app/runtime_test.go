package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vaultline-hq/vaultline-go/internal/config"
)

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	return &config.Config{
		AppName:                "custodyctl",
		LogLevel:               "error",
		CustodyBaseURL:         baseURL,
		CustodyAPIKey:          "test-key",
		RequestTimeout:         2 * time.Second,
		StorageType:            "bbolt",
		BBoltPath:              filepath.Join(t.TempDir(), "journal.db"),
		JournalTTL:             time.Hour,
		JournalCleanupInterval: time.Hour,
	}
}

func TestRuntimeBroadcastGuardsDuplicates(t *testing.T) {
	var broadcasts atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/transactions/tx-1/broadcast" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		broadcasts.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"success":true,"status":200,"data":{"tx_id":"tx-1","tx_hash":"0xabc","status":"broadcast"}}`)
	}))
	defer srv.Close()

	rt, err := NewRuntime(context.Background(), testConfig(t, srv.URL), nil, nil)
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	defer rt.Close()

	result, err := rt.BroadcastTransaction(context.Background(), "tx-1", false)
	if err != nil {
		t.Fatalf("first broadcast: %v", err)
	}
	if result.TxHash != "0xabc" {
		t.Fatalf("TxHash = %s", result.TxHash)
	}

	_, err = rt.BroadcastTransaction(context.Background(), "tx-1", false)
	if !errors.Is(err, ErrAlreadyBroadcast) {
		t.Fatalf("expected ErrAlreadyBroadcast, got %v", err)
	}
	if got := broadcasts.Load(); got != 1 {
		t.Fatalf("expected 1 upstream call, got %d", got)
	}

	if _, err := rt.BroadcastTransaction(context.Background(), "tx-1", true); err != nil {
		t.Fatalf("forced broadcast: %v", err)
	}
	if got := broadcasts.Load(); got != 2 {
		t.Fatalf("expected forced re-broadcast to hit upstream, got %d calls", got)
	}

	subs, err := rt.Submissions()
	if err != nil {
		t.Fatalf("Submissions: %v", err)
	}
	if len(subs) != 1 || subs[0].TxID != "tx-1" {
		t.Fatalf("unexpected journal contents: %#v", subs)
	}
}

func TestRuntimeBroadcastFailureIsNotJournaled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"success":false,"status":400,"error":"nonce too low"}`)
	}))
	defer srv.Close()

	rt, err := NewRuntime(context.Background(), testConfig(t, srv.URL), nil, nil)
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	defer rt.Close()

	if _, err := rt.BroadcastTransaction(context.Background(), "tx-9", false); err == nil {
		t.Fatalf("expected broadcast error")
	}

	subs, err := rt.Submissions()
	if err != nil {
		t.Fatalf("Submissions: %v", err)
	}
	if len(subs) != 0 {
		t.Fatalf("failed broadcast must not be journaled: %#v", subs)
	}
}

func TestRuntimePassThroughOperations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/users/u-1":
			fmt.Fprint(w, `{"success":true,"status":200,"data":{"id":"u-1","email":"ops@example.com"}}`)
		case "/v1/chains/ethereum/gas-price":
			fmt.Fprint(w, `{"success":true,"status":200,"data":{"chain":"ethereum","gas_price":"42000000000"}}`)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	cfg := testConfig(t, srv.URL)
	cfg.StorageType = "none"
	rt, err := NewRuntime(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("NewRuntime: %v", err)
	}
	defer rt.Close()

	user, err := rt.GetUser(context.Background(), "u-1")
	if err != nil || user.ID != "u-1" {
		t.Fatalf("GetUser = %#v, %v", user, err)
	}

	quote, err := rt.GasPrice(context.Background(), "ethereum")
	if err != nil || quote.GasPrice != "42000000000" {
		t.Fatalf("GasPrice = %#v, %v", quote, err)
	}
}
