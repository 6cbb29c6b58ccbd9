package api

import (
	"context"
	"net/http"
)

// Login posts credentials to /api/auth/login.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/login", LoginRequest{Email: email, Password: password})
}

// Register posts a new account to /api/auth/register.
func (c *Client) Register(ctx context.Context, name, email, password string) (AuthResponse, error) {
	return c.authenticate(ctx, "/api/auth/register", RegisterRequest{Name: name, Email: email, Password: password})
}

func (c *Client) authenticate(ctx context.Context, path string, in any) (AuthResponse, error) {
	var out AuthResponse
	raw, err := c.do(ctx, http.MethodPost, path, "", in, &out)
	if err != nil {
		return AuthResponse{}, err
	}
	out.Payload = raw
	return out, nil
}
