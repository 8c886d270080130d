package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/llanterasoft/pos-panel/internal/backend"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	sales     []backend.Sale
	products  []backend.Product
	inventory []backend.InventoryRecord
	customers []backend.Customer
	details   []backend.SaleDetail
}

func (f *fakeAPI) ListSales(ctx context.Context) ([]backend.Sale, error)        { return f.sales, nil }
func (f *fakeAPI) ListProducts(ctx context.Context) ([]backend.Product, error)  { return f.products, nil }
func (f *fakeAPI) ListCustomers(ctx context.Context) ([]backend.Customer, error) { return f.customers, nil }
func (f *fakeAPI) ListInventory(ctx context.Context) ([]backend.InventoryRecord, error) {
	return f.inventory, nil
}
func (f *fakeAPI) ListSaleDetails(ctx context.Context) ([]backend.SaleDetail, error) {
	return f.details, nil
}

func fixedService(api *fakeAPI, now time.Time) Service {
	return &service{api: api, now: func() time.Time { return now }}
}

func sale(id int64, total int64, soldAt string) backend.Sale {
	return backend.Sale{ID: id, Total: decimal.NewFromInt(total), SoldAt: soldAt}
}

func TestStats(t *testing.T) {
	api := &fakeAPI{
		sales: []backend.Sale{
			sale(1, 450, "2026-03-14T09:30:00"),
			sale(2, 620, "2026-03-14 16:05:22"),
			sale(3, 700, "2026-03-13T18:00:00"), // yesterday
			sale(4, 100, ""),                    // unparseable date never counts as today
		},
		products:  []backend.Product{{ID: 1}, {ID: 2}, {ID: 3}},
		customers: []backend.Customer{{CI: 1}, {CI: 2}},
		inventory: []backend.InventoryRecord{
			{ID: 11, Product: 1, Stock: 10, MinStock: 2},
			{ID: 12, Product: 2, Stock: 2, MinStock: 3},
			{ID: 13, Product: 3, Stock: 0, MinStock: 2},
		},
	}
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	stats, err := fixedService(api, now).Stats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "1070", stats.SalesToday.String())
	assert.Equal(t, 2, stats.SalesTodayCount)
	assert.Equal(t, 3, stats.TotalProducts)
	assert.Equal(t, 2, stats.TotalCustomers)
	// The dashboard card includes exhausted items in the low-stock count.
	assert.Equal(t, 2, stats.LowStock)
}

func detail(productID int64, model string, qty int) backend.SaleDetail {
	return backend.SaleDetail{
		ProductID: productID,
		Quantity:  qty,
		Product:   &backend.SaleDetailProduct{Model: model, Brand: "Firestone"},
	}
}

func TestTopProducts(t *testing.T) {
	api := &fakeAPI{details: []backend.SaleDetail{
		detail(1, "Destination LE3", 2),
		detail(2, "Wrangler AT", 5),
		detail(1, "Destination LE3", 4),
		detail(3, "Scorpion ATR", 6),
		detail(4, "LTX Force", 1),
	}}
	svc := fixedService(api, time.Now())

	top, err := svc.TopProducts(context.Background(), 3)
	require.NoError(t, err)

	require.Len(t, top, 3)
	assert.Equal(t, TopProduct{Model: "Destination LE3", Brand: "Firestone", Quantity: 6}, top[0])
	assert.Equal(t, "Scorpion ATR", top[1].Model)
	assert.Equal(t, "Wrangler AT", top[2].Model)
}

func TestTopProductsTiesKeepFirstSeenOrder(t *testing.T) {
	api := &fakeAPI{details: []backend.SaleDetail{
		detail(1, "Destination LE3", 3),
		detail(2, "Wrangler AT", 3),
	}}
	top, err := fixedService(api, time.Now()).TopProducts(context.Background(), 0)
	require.NoError(t, err)

	require.Len(t, top, 2)
	assert.Equal(t, "Destination LE3", top[0].Model)
	assert.Equal(t, "Wrangler AT", top[1].Model)
}

func TestRecentSales(t *testing.T) {
	api := &fakeAPI{sales: []backend.Sale{
		sale(1, 100, "2026-03-12T10:00:00"),
		sale(2, 100, "2026-03-14T10:00:00"),
		sale(3, 100, "2026-03-13T10:00:00"),
	}}
	recent, err := fixedService(api, time.Now()).RecentSales(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, recent, 2)
	assert.Equal(t, int64(2), recent[0].ID)
	assert.Equal(t, int64(3), recent[1].ID)
}

func TestLowStockItems(t *testing.T) {
	api := &fakeAPI{
		products: []backend.Product{
			{ID: 1, Model: "Destination LE3", Brand: "Firestone", Size: "205/55R16"},
			{ID: 2, Model: "Wrangler AT", Brand: "Goodyear", Size: "265/70R16"},
			{ID: 3, Model: "Scorpion ATR", Brand: "Pirelli", Size: "265/65R17"},
			{ID: 4, Model: "LTX Force", Brand: "Michelin", Size: "235/75R15"},
		},
		inventory: []backend.InventoryRecord{
			{ID: 11, Product: 1, Stock: 10, MinStock: 2}, // healthy, excluded
			{ID: 12, Product: 2, Stock: 2, MinStock: 3},
			{ID: 13, Product: 3, Stock: 0, MinStock: 2},
			{ID: 14, Product: 4, Stock: 1, MinStock: 1},
		},
	}
	items, err := fixedService(api, time.Now()).LowStockItems(context.Background(), 0)
	require.NoError(t, err)

	// At or below minimum, most urgent first.
	require.Len(t, items, 3)
	assert.Equal(t, "Scorpion ATR", items[0].Model)
	assert.Equal(t, 0, items[0].Stock)
	assert.Equal(t, "LTX Force", items[1].Model)
	assert.Equal(t, "Wrangler AT", items[2].Model)
	assert.Equal(t, 3, items[2].MinStock)

	limited, err := fixedService(api, time.Now()).LowStockItems(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "Scorpion ATR", limited[0].Model)
}

func TestParseSaleDate(t *testing.T) {
	assert.False(t, parseSaleDate("2026-03-14T09:30:00Z").IsZero())
	assert.False(t, parseSaleDate("2026-03-14T09:30:00").IsZero())
	assert.False(t, parseSaleDate("2026-03-14 09:30:00").IsZero())
	assert.False(t, parseSaleDate("2026-03-14").IsZero())
	assert.True(t, parseSaleDate("14/03/2026").IsZero())
	assert.True(t, parseSaleDate("").IsZero())
}
