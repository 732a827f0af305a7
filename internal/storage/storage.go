package storage

import (
	"fmt"
	"strings"
	"time"

	"github.com/vaultline-hq/vaultline-go/internal/domain"
)

// Package storage provides the local broadcast journal abstraction.

// Store records transaction submissions handled by this tool.
type Store interface {
	Close() error
	SeenSubmission(txID string) (bool, error)
	RecordSubmission(sub domain.Submission) error
	Submissions() ([]domain.Submission, error)
}

// Options controls retention characteristics for concrete store implementations.
type Options struct {
	SubmissionTTL   time.Duration
	CleanupInterval time.Duration
}

const (
	defaultSubmissionTTL   = 30 * 24 * time.Hour
	defaultCleanupInterval = 12 * time.Hour
)

// NewStore creates the configured storage backend.
func NewStore(typ, path string, opts Options) (Store, error) {
	typ = strings.TrimSpace(strings.ToLower(typ))
	opts = normalizeOptions(opts)

	switch typ {
	case "", "none", "disabled":
		return noopStore{}, nil
	case "bbolt":
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("bbolt storage requires a path")
		}
		return openBolt(path, opts)
	default:
		return nil, fmt.Errorf("unsupported storage type %q", typ)
	}
}

func normalizeOptions(opts Options) Options {
	if opts.SubmissionTTL <= 0 {
		opts.SubmissionTTL = defaultSubmissionTTL
	}
	if opts.CleanupInterval <= 0 {
		opts.CleanupInterval = defaultCleanupInterval
	}
	return opts
}

type noopStore struct{}

func (noopStore) Close() error                              { return nil }
func (noopStore) SeenSubmission(string) (bool, error)       { return false, nil }
func (noopStore) RecordSubmission(domain.Submission) error  { return nil }
func (noopStore) Submissions() ([]domain.Submission, error) { return nil, nil }
