package custody

import "time"

// Transaction lifecycle statuses reported by the orchestrator.
const (
	TxStatusCreated   = "created"
	TxStatusSigned    = "signed"
	TxStatusBroadcast = "broadcast"
)

// User is an account holder known to the orchestrator.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateWalletRequest carries the parameters for provisioning a wallet.
type CreateWalletRequest struct {
	UserID string `json:"user_id"`
	Chain  string `json:"chain"`
	Label  string `json:"label,omitempty"`
}

// Wallet is a custody-managed wallet.
type Wallet struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Chain     string    `json:"chain"`
	Address   string    `json:"address"`
	Label     string    `json:"label,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NonceInfo reports the next usable nonce for a wallet.
type NonceInfo struct {
	WalletID string `json:"wallet_id"`
	Chain    string `json:"chain"`
	Nonce    uint64 `json:"nonce"`
}

// GasQuote reports current gas pricing for a chain. Amounts are decimal
// strings in wei to avoid precision loss.
type GasQuote struct {
	Chain       string    `json:"chain"`
	GasPrice    string    `json:"gas_price"`
	MaxFee      string    `json:"max_fee,omitempty"`
	PriorityFee string    `json:"priority_fee,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateTransactionRequest carries the parameters for drafting a transaction.
// Value and GasPrice are decimal strings in wei. Nonce is optional; when nil
// the orchestrator assigns the next nonce itself.
type CreateTransactionRequest struct {
	WalletID string  `json:"wallet_id"`
	To       string  `json:"to"`
	Value    string  `json:"value"`
	Data     string  `json:"data,omitempty"`
	GasLimit uint64  `json:"gas_limit,omitempty"`
	GasPrice string  `json:"gas_price,omitempty"`
	Nonce    *uint64 `json:"nonce,omitempty"`
}

// Transaction is a draft or signed transaction tracked by the orchestrator.
type Transaction struct {
	ID        string    `json:"id"`
	WalletID  string    `json:"wallet_id"`
	Chain     string    `json:"chain"`
	To        string    `json:"to"`
	Value     string    `json:"value"`
	Data      string    `json:"data,omitempty"`
	Nonce     uint64    `json:"nonce"`
	GasLimit  uint64    `json:"gas_limit,omitempty"`
	GasPrice  string    `json:"gas_price,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// SignedTransaction carries the signed raw payload for a transaction.
type SignedTransaction struct {
	TxID     string    `json:"tx_id"`
	RawTx    string    `json:"raw_tx"`
	TxHash   string    `json:"tx_hash,omitempty"`
	Status   string    `json:"status"`
	SignedAt time.Time `json:"signed_at"`
}

// BroadcastResult reports the outcome of submitting a signed transaction.
type BroadcastResult struct {
	TxID        string    `json:"tx_id"`
	TxHash      string    `json:"tx_hash"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}
