package backend

import (
	"context"
	"net/http"
)

// CreateSale submits a finalized sale and returns the committed record with
// the server-assigned id and authoritative total.
func (c *Client) CreateSale(ctx context.Context, req SaleRequest) (*Sale, error) {
	var sale Sale
	if err := c.do(ctx, http.MethodPost, "/ventas", req, &sale); err != nil {
		return nil, err
	}
	return &sale, nil
}

// ListSales fetches all committed sales.
func (c *Client) ListSales(ctx context.Context) ([]Sale, error) {
	var sales []Sale
	if err := c.do(ctx, http.MethodGet, "/ventas", nil, &sales); err != nil {
		return nil, err
	}
	return sales, nil
}

// ListSaleDetails fetches the sale-line report rows with their embedded
// product and customer display fields.
func (c *Client) ListSaleDetails(ctx context.Context) ([]SaleDetail, error) {
	var details []SaleDetail
	if err := c.do(ctx, http.MethodGet, "/detalle-venta", nil, &details); err != nil {
		return nil, err
	}
	return details, nil
}

// ExportSaleDetails sends a filtered set of report rows to the export
// endpoint and returns the rendered PDF bytes.
func (c *Client) ExportSaleDetails(ctx context.Context, rows []SaleDetail) ([]byte, error) {
	return c.raw(ctx, http.MethodPost, "/detalle-venta/export", rows)
}
