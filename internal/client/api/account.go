package api

import (
	"context"
	"net/http"
)

// Me fetches the account behind token.
func (c *Client) Me(ctx context.Context, token string) (Account, error) {
	var acc Account
	if _, err := c.do(ctx, http.MethodGet, "/api/account/me", token, nil, &acc); err != nil {
		return Account{}, err
	}
	return acc, nil
}
