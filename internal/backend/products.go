package backend

import (
	"context"
	"fmt"
	"net/http"
)

// ListProducts fetches the full product catalog.
func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.do(ctx, http.MethodGet, "/productos", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var p Product
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/productos/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProduct registers a new product and returns it with the assigned id.
func (c *Client) CreateProduct(ctx context.Context, p Product) (*Product, error) {
	var created Product
	if err := c.do(ctx, http.MethodPost, "/productos", p, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct overwrites an existing product.
func (c *Client) UpdateProduct(ctx context.Context, id int64, p Product) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/productos/%d", id), p, nil)
}

// DeleteProduct removes a product.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/productos/%d", id), nil, nil)
}

// ListInventory fetches all inventory records.
func (c *Client) ListInventory(ctx context.Context) ([]InventoryRecord, error) {
	var records []InventoryRecord
	if err := c.do(ctx, http.MethodGet, "/inventario", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateInventory registers the stock row for a product.
func (c *Client) CreateInventory(ctx context.Context, rec InventoryRecord) (*InventoryRecord, error) {
	var created InventoryRecord
	if err := c.do(ctx, http.MethodPost, "/inventario", rec, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateStock sets the current stock count on an inventory record.
func (c *Client) UpdateStock(ctx context.Context, inventoryID int64, stock int) error {
	body := map[string]int{"stock_actual": stock}
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/inventario/%d", inventoryID), body, nil)
}

// UpdateInventory overwrites stock and threshold on an inventory record.
func (c *Client) UpdateInventory(ctx context.Context, rec InventoryRecord) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/inventario/%d", rec.ID), rec, nil)
}

// DeleteInventory removes an inventory record.
func (c *Client) DeleteInventory(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/inventario/%d", id), nil, nil)
}
