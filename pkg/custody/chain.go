package custody

import (
	"context"
	"net/http"
	"net/url"
)

// GetGasPrice fetches the current gas quote for a chain.
func (c *Client) GetGasPrice(ctx context.Context, chain string) (*GasQuote, error) {
	var quote GasQuote
	path := "/v1/chains/" + url.PathEscape(chain) + "/gas-price"
	if err := c.execute(ctx, http.MethodGet, path, nil, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}
