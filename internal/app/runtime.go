package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vaultline-hq/vaultline-go/internal/config"
	"github.com/vaultline-hq/vaultline-go/internal/domain"
	"github.com/vaultline-hq/vaultline-go/internal/logger"
	"github.com/vaultline-hq/vaultline-go/internal/storage"
	"github.com/vaultline-hq/vaultline-go/pkg/custody"
	"github.com/vaultline-hq/vaultline-go/pkg/environments"
	"github.com/vaultline-hq/vaultline-go/pkg/publishers"
	"go.uber.org/zap"
)

// ErrAlreadyBroadcast is returned when the journal already holds a submission
// for the transaction and the caller did not force a re-broadcast.
var ErrAlreadyBroadcast = errors.New("transaction already broadcast (use --force to re-broadcast)")

// Runtime wires the custody client, the broadcast journal and the event
// publishers into one operator-facing surface. It backs every custodyctl
// subcommand.
type Runtime struct {
	cfg    *config.Config
	client *custody.Client
	store  storage.Store
	fanout *publishers.Fanout
	log    logger.Logger
}

// NewRuntime builds a runtime from config files. The recorder is optional;
// when set it observes every custody API call.
func NewRuntime(ctx context.Context, cfg *config.Config, log logger.Logger, rec custody.Recorder) (*Runtime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	baseURL, apiKey, timeout, err := resolveEndpoint(cfg, log)
	if err != nil {
		return nil, err
	}

	client, err := custody.New(custody.Config{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Timeout: timeout,
		Logger:  sugaredFrom(log),
		Metrics: rec,
	})
	if err != nil {
		return nil, fmt.Errorf("build custody client: %w", err)
	}

	var fanout *publishers.Fanout
	if cfg.PublishersFile != "" {
		publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
		if err != nil {
			return nil, fmt.Errorf("load publishers registry: %w", err)
		}
		enabled := publisherReg.Enabled()
		pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
		if err != nil {
			return nil, fmt.Errorf("build publishers: %w", err)
		}
		fanout = publishers.NewFanout(pubClients)
		summaries := make([]map[string]string, 0, len(enabled))
		for _, pubCfg := range enabled {
			summaries = append(summaries, map[string]string{
				"id":   pubCfg.ID,
				"type": pubCfg.Type,
			})
		}
		log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
			"count":      len(summaries),
			"publishers": summaries,
		})
	} else {
		fanout = publishers.NewFanout(nil)
	}

	storeOpts := storage.Options{
		SubmissionTTL:   cfg.JournalTTL,
		CleanupInterval: cfg.JournalCleanupInterval,
	}
	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storeOpts)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("journal initialized", "journal_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"ttl_seconds":              int(cfg.JournalTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.JournalCleanupInterval.Seconds()),
	})

	return &Runtime{
		cfg:    cfg,
		client: client,
		store:  store,
		fanout: fanout,
		log:    log,
	}, nil
}

// resolveEndpoint picks the orchestrator endpoint, either from a named
// environment profile or from the flat config keys.
func resolveEndpoint(cfg *config.Config, log logger.Logger) (baseURL, apiKey string, timeout time.Duration, err error) {
	if cfg.EnvironmentsFile != "" && cfg.Environment != "" {
		reg, err := environments.LoadRegistry(cfg.EnvironmentsFile)
		if err != nil {
			return "", "", 0, fmt.Errorf("load environments registry: %w", err)
		}
		env, ok := reg.ByID(cfg.Environment)
		if !ok {
			return "", "", 0, fmt.Errorf("environment %q not found in %s", cfg.Environment, cfg.EnvironmentsFile)
		}
		key, err := env.APIKey()
		if err != nil {
			return "", "", 0, err
		}
		log.InfoObj("environment profile selected", "environment", map[string]any{
			"id":       env.ID,
			"name":     env.Name,
			"base_url": env.BaseURL,
		})
		return env.BaseURL, key, env.RequestTimeout(), nil
	}
	return cfg.CustodyBaseURL, cfg.CustodyAPIKey, cfg.RequestTimeout, nil
}

// sugaredFrom extracts the underlying zap logger when available.
func sugaredFrom(log logger.Logger) *zap.SugaredLogger {
	if z, ok := log.(interface{ Sugar() *zap.SugaredLogger }); ok {
		return z.Sugar()
	}
	return nil
}

// Client exposes the custody client for callers needing direct access.
func (r *Runtime) Client() *custody.Client { return r.client }

// CreateWallet provisions a new custody wallet.
func (r *Runtime) CreateWallet(ctx context.Context, req custody.CreateWalletRequest) (*custody.Wallet, error) {
	return r.client.CreateWallet(ctx, req)
}

// GetWallet fetches a wallet by id.
func (r *Runtime) GetWallet(ctx context.Context, walletID string) (*custody.Wallet, error) {
	return r.client.GetWallet(ctx, walletID)
}

// GetUser fetches a user by id.
func (r *Runtime) GetUser(ctx context.Context, userID string) (*custody.User, error) {
	return r.client.GetUser(ctx, userID)
}

// Nonce fetches the next usable nonce for a wallet.
func (r *Runtime) Nonce(ctx context.Context, walletID string) (*custody.NonceInfo, error) {
	return r.client.GetNonce(ctx, walletID)
}

// GasPrice fetches the current gas quote for a chain.
func (r *Runtime) GasPrice(ctx context.Context, chain string) (*custody.GasQuote, error) {
	return r.client.GetGasPrice(ctx, chain)
}

// CreateTransaction drafts a new transaction.
func (r *Runtime) CreateTransaction(ctx context.Context, req custody.CreateTransactionRequest) (*custody.Transaction, error) {
	return r.client.CreateTransaction(ctx, req)
}

// GetTransaction fetches a transaction by id.
func (r *Runtime) GetTransaction(ctx context.Context, txID string) (*custody.Transaction, error) {
	return r.client.GetTransaction(ctx, txID)
}

// SignTransaction asks the orchestrator to sign a drafted transaction.
func (r *Runtime) SignTransaction(ctx context.Context, txID string) (*custody.SignedTransaction, error) {
	return r.client.SignTransaction(ctx, txID)
}

// BroadcastTransaction submits a signed transaction, guarding against
// accidental double-broadcasts via the journal. On success the submission is
// journaled and fanned out to the configured publishers.
func (r *Runtime) BroadcastTransaction(ctx context.Context, txID string, force bool) (*custody.BroadcastResult, error) {
	if !force {
		seen, err := r.store.SeenSubmission(txID)
		if err != nil {
			return nil, fmt.Errorf("check journal: %w", err)
		}
		if seen {
			return nil, ErrAlreadyBroadcast
		}
	}

	result, err := r.client.BroadcastTransaction(ctx, txID)
	if err != nil {
		return nil, err
	}

	sub := domain.Submission{
		TxID:        result.TxID,
		TxHash:      result.TxHash,
		Status:      result.Status,
		SubmittedAt: result.SubmittedAt,
	}
	if sub.TxID == "" {
		sub.TxID = txID
	}
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now().UTC()
	}

	if err := r.store.RecordSubmission(sub); err != nil {
		r.log.ErrorObj("journal write failed", "journal_error", map[string]any{
			"tx_id": sub.TxID,
			"error": err.Error(),
		})
	}

	if count, err := r.fanout.Publish(ctx, publishers.NewEvent(publishers.KindTransactionBroadcast, sub)); err != nil {
		r.log.ErrorObj("event fanout failed", "fanout_error", map[string]any{
			"tx_id":     sub.TxID,
			"delivered": count,
			"error":     err.Error(),
		})
	}

	return result, nil
}

// Submissions lists the journaled broadcast history.
func (r *Runtime) Submissions() ([]domain.Submission, error) {
	return r.store.Submissions()
}

// Close releases the journal.
func (r *Runtime) Close() error {
	if r == nil || r.store == nil {
		return nil
	}
	return r.store.Close()
}
