package publishers

import (
	"time"

	"github.com/vaultline-hq/vaultline-go/internal/domain"
)

// Event kinds emitted over the transaction lifecycle.
const (
	KindTransactionBroadcast = "transaction.broadcast"
)

// Event represents the payload published downstream.
type Event struct {
	Kind       string            `json:"kind"`
	Submission domain.Submission `json:"submission"`
	EmittedAt  time.Time         `json:"emitted_at"`
}

// NewEvent constructs an Event for the given kind + submission.
func NewEvent(kind string, sub domain.Submission) Event {
	return Event{
		Kind:       kind,
		Submission: sub,
		EmittedAt:  time.Now().UTC(),
	}
}
