package sales

import (
	"context"
	"testing"

	"github.com/llanterasoft/pos-panel/internal/backend"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	details  []backend.SaleDetail
	exported []backend.SaleDetail
}

func (f *fakeAPI) ListSales(ctx context.Context) ([]backend.Sale, error) {
	return nil, nil
}

func (f *fakeAPI) ListSaleDetails(ctx context.Context) ([]backend.SaleDetail, error) {
	return f.details, nil
}

func (f *fakeAPI) ExportSaleDetails(ctx context.Context, rows []backend.SaleDetail) ([]byte, error) {
	f.exported = rows
	return []byte("%PDF-1.4 fake"), nil
}

func row(id, saleID int64, model, customer string) backend.SaleDetail {
	d := backend.SaleDetail{
		ID:        id,
		SaleID:    saleID,
		Quantity:  1,
		UnitPrice: decimal.NewFromInt(100),
		Subtotal:  decimal.NewFromInt(100),
		Product:   &backend.SaleDetailProduct{Model: model, Brand: "Firestone"},
	}
	if customer != "" {
		d.Sale = &backend.SaleDetailSale{Customer: &backend.SaleDetailCustomer{Name: customer}}
	}
	return d
}

func reportRows() []backend.SaleDetail {
	return []backend.SaleDetail{
		row(1, 10, "Destination LE3", "Carlos Mamani"),
		row(2, 10, "Wrangler AT", "Carlos Mamani"),
		row(3, 11, "Destination AT2", "Lucia Flores"),
		row(4, 12, "Scorpion ATR", ""), // walk-in sale, no customer
	}
}

func TestReportFilters(t *testing.T) {
	svc := NewService(&fakeAPI{details: reportRows()})

	tests := []struct {
		name   string
		filter ReportFilter
		want   []int64
	}{
		{"no filter", ReportFilter{}, []int64{1, 2, 3, 4}},
		{"by sale id", ReportFilter{SaleID: 10}, []int64{1, 2}},
		{"by product substring", ReportFilter{Product: "destination"}, []int64{1, 3}},
		{"product trims spaces", ReportFilter{Product: " WRANGLER "}, []int64{2}},
		{"by customer substring", ReportFilter{Customer: "lucia"}, []int64{3}},
		{"customer filter skips walk-ins", ReportFilter{Customer: "carlos"}, []int64{1, 2}},
		{"combined", ReportFilter{SaleID: 10, Product: "destination"}, []int64{1}},
		{"no match", ReportFilter{SaleID: 99}, []int64{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rows, err := svc.Report(context.Background(), tc.filter)
			require.NoError(t, err)
			got := make([]int64, 0, len(rows))
			for _, r := range rows {
				got = append(got, r.ID)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExportSendsFilteredRows(t *testing.T) {
	api := &fakeAPI{details: reportRows()}
	svc := NewService(api)

	pdf, err := svc.ExportPDF(context.Background(), ReportFilter{SaleID: 11})
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)

	require.Len(t, api.exported, 1)
	assert.Equal(t, int64(3), api.exported[0].ID)
}
