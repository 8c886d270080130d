package sales

import (
	"context"
	"strings"

	"github.com/llanterasoft/pos-panel/internal/backend"
)

// API is the slice of the upstream client the report screen needs.
type API interface {
	ListSales(ctx context.Context) ([]backend.Sale, error)
	ListSaleDetails(ctx context.Context) ([]backend.SaleDetail, error)
	ExportSaleDetails(ctx context.Context, rows []backend.SaleDetail) ([]byte, error)
}

// ReportFilter narrows the sale-detail report in memory. SaleID zero and
// empty strings match everything.
type ReportFilter struct {
	SaleID   int64  `json:"id_venta,omitempty"`
	Product  string `json:"producto,omitempty"`
	Customer string `json:"cliente,omitempty"`
}

// Service backs the sales-detail report screen: listing, filtering, and the
// PDF export of whatever the filter currently shows.
type Service interface {
	ListSales(ctx context.Context) ([]backend.Sale, error)
	Report(ctx context.Context, f ReportFilter) ([]backend.SaleDetail, error)
	ExportPDF(ctx context.Context, f ReportFilter) ([]byte, error)
}

type service struct{ api API }

// NewService creates a sales report service.
func NewService(api API) Service { return &service{api: api} }

func (s *service) ListSales(ctx context.Context) ([]backend.Sale, error) {
	return s.api.ListSales(ctx)
}

func (s *service) Report(ctx context.Context, f ReportFilter) ([]backend.SaleDetail, error) {
	rows, err := s.api.ListSaleDetails(ctx)
	if err != nil {
		return nil, err
	}
	return filterRows(rows, f), nil
}

// ExportPDF sends the filtered rows to the upstream export endpoint and
// hands back the rendered document.
func (s *service) ExportPDF(ctx context.Context, f ReportFilter) ([]byte, error) {
	rows, err := s.Report(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.api.ExportSaleDetails(ctx, rows)
}

func filterRows(rows []backend.SaleDetail, f ReportFilter) []backend.SaleDetail {
	product := strings.ToLower(strings.TrimSpace(f.Product))
	customer := strings.ToLower(strings.TrimSpace(f.Customer))

	out := make([]backend.SaleDetail, 0, len(rows))
	for _, row := range rows {
		if f.SaleID != 0 && row.SaleID != f.SaleID {
			continue
		}
		if product != "" {
			model := ""
			if row.Product != nil {
				model = strings.ToLower(row.Product.Model)
			}
			if !strings.Contains(model, product) {
				continue
			}
		}
		if customer != "" {
			name := ""
			if row.Sale != nil && row.Sale.Customer != nil {
				name = strings.ToLower(row.Sale.Customer.Name)
			}
			if !strings.Contains(name, customer) {
				continue
			}
		}
		out = append(out, row)
	}
	return out
}
