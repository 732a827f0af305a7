package domain

import "time"

// Domain contains core models shared by the journal, publishers and CLI.

// Submission records one transaction broadcast handled by the tool.
type Submission struct {
	TxID        string    `json:"tx_id"`
	TxHash      string    `json:"tx_hash,omitempty"`
	WalletID    string    `json:"wallet_id,omitempty"`
	Chain       string    `json:"chain,omitempty"`
	Status      string    `json:"status,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}
