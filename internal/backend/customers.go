package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ListCustomers fetches all registered customers.
func (c *Client) ListCustomers(ctx context.Context) ([]Customer, error) {
	var customers []Customer
	if err := c.do(ctx, http.MethodGet, "/clientes", nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// GetCustomer looks a customer up by CI. A 404 maps to ErrCustomerNotFound so
// callers can offer to create the missing record instead of failing.
func (c *Client) GetCustomer(ctx context.Context, ci int64) (*Customer, error) {
	var customer Customer
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/clientes/%d", ci), nil, &customer)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// CreateCustomer registers a new customer.
func (c *Client) CreateCustomer(ctx context.Context, customer Customer) (*Customer, error) {
	var created Customer
	if err := c.do(ctx, http.MethodPost, "/clientes", customer, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCustomer patches an existing customer identified by CI.
func (c *Client) UpdateCustomer(ctx context.Context, ci int64, customer Customer) error {
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/clientes/%d", ci), customer, nil)
}

// DeleteCustomer removes a customer.
func (c *Client) DeleteCustomer(ctx context.Context, ci int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/clientes/%d", ci), nil, nil)
}
