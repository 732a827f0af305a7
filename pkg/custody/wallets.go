package custody

import (
	"context"
	"net/http"
	"net/url"
)

// CreateWallet provisions a new custody wallet.
func (c *Client) CreateWallet(ctx context.Context, req CreateWalletRequest) (*Wallet, error) {
	var wallet Wallet
	if err := c.execute(ctx, http.MethodPost, "/v1/wallets", req, &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// GetWallet fetches a wallet by id.
func (c *Client) GetWallet(ctx context.Context, walletID string) (*Wallet, error) {
	var wallet Wallet
	path := "/v1/wallets/" + url.PathEscape(walletID)
	if err := c.execute(ctx, http.MethodGet, path, nil, &wallet); err != nil {
		return nil, err
	}
	return &wallet, nil
}

// GetNonce fetches the next usable nonce for a wallet.
func (c *Client) GetNonce(ctx context.Context, walletID string) (*NonceInfo, error) {
	var nonce NonceInfo
	path := "/v1/wallets/" + url.PathEscape(walletID) + "/nonce"
	if err := c.execute(ctx, http.MethodGet, path, nil, &nonce); err != nil {
		return nil, err
	}
	return &nonce, nil
}
