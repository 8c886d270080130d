package backend

import (
	"context"
	"fmt"
	"net/http"
)

// ListUsers fetches all operator accounts.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/usuarios", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser fetches one operator account by id.
func (c *Client) GetUser(ctx context.Context, id int64) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/usuarios/%d", id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser registers an operator account. Password travels only on create;
// hashing happens upstream.
func (c *Client) CreateUser(ctx context.Context, u User, password string) (*User, error) {
	body := struct {
		User
		Password string `json:"password"`
	}{User: u, Password: password}
	var created User
	if err := c.do(ctx, http.MethodPost, "/usuarios", body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateUser patches an operator account. An empty password leaves the
// stored one untouched.
func (c *Client) UpdateUser(ctx context.Context, id int64, u User, password string) error {
	body := struct {
		User
		Password string `json:"password,omitempty"`
	}{User: u, Password: password}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/usuarios/%d", id), body, nil)
}

// DeleteUser removes an operator account.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/usuarios/%d", id), nil, nil)
}
