package custody

import (
	"context"
	"net/http"
	"net/url"
)

// GetUser fetches a user by id.
func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	var user User
	path := "/v1/users/" + url.PathEscape(userID)
	if err := c.execute(ctx, http.MethodGet, path, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
