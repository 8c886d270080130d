package backend

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a bearer token and the user profile.
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResponse, error) {
	var res LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// VerifyToken asks the upstream API whether the current token is still valid
// and returns the refreshed user profile. An expired token surfaces as
// ErrSessionExpired.
func (c *Client) VerifyToken(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/auth/verify", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
