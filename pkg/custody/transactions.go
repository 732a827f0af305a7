package custody

import (
	"context"
	"net/http"
	"net/url"
)

// CreateTransaction drafts a new transaction on the orchestrator.
func (c *Client) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (*Transaction, error) {
	var tx Transaction
	if err := c.execute(ctx, http.MethodPost, "/v1/transactions", req, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetTransaction fetches a transaction by id.
func (c *Client) GetTransaction(ctx context.Context, txID string) (*Transaction, error) {
	var tx Transaction
	path := "/v1/transactions/" + url.PathEscape(txID)
	if err := c.execute(ctx, http.MethodGet, path, nil, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// SignTransaction asks the orchestrator to sign a drafted transaction.
func (c *Client) SignTransaction(ctx context.Context, txID string) (*SignedTransaction, error) {
	var signed SignedTransaction
	path := "/v1/transactions/" + url.PathEscape(txID) + "/sign"
	if err := c.execute(ctx, http.MethodPost, path, nil, &signed); err != nil {
		return nil, err
	}
	return &signed, nil
}

// BroadcastTransaction submits a signed transaction to its chain.
func (c *Client) BroadcastTransaction(ctx context.Context, txID string) (*BroadcastResult, error) {
	var result BroadcastResult
	path := "/v1/transactions/" + url.PathEscape(txID) + "/broadcast"
	if err := c.execute(ctx, http.MethodPost, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
