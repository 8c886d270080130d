package dashboard

import (
	"context"
	"sort"
	"time"

	"github.com/llanterasoft/pos-panel/internal/backend"
	"github.com/shopspring/decimal"
)

// API is the slice of the upstream client the dashboard needs.
type API interface {
	ListSales(ctx context.Context) ([]backend.Sale, error)
	ListProducts(ctx context.Context) ([]backend.Product, error)
	ListInventory(ctx context.Context) ([]backend.InventoryRecord, error)
	ListCustomers(ctx context.Context) ([]backend.Customer, error)
	ListSaleDetails(ctx context.Context) ([]backend.SaleDetail, error)
}

// Stats is the card strip at the top of the dashboard.
type Stats struct {
	SalesToday      decimal.Decimal `json:"ventas_hoy"`
	SalesTodayCount int             `json:"cantidad_ventas_hoy"`
	TotalProducts   int             `json:"total_productos"`
	LowStock        int             `json:"stock_bajo"`
	TotalCustomers  int             `json:"total_clientes"`
}

// TopProduct is one row of the best-sellers table.
type TopProduct struct {
	Model    string `json:"producto"`
	Brand    string `json:"marca"`
	Quantity int    `json:"cantidad"`
}

// LowStockItem is one row of the replenishment table.
type LowStockItem struct {
	ProductID int64  `json:"id_producto"`
	Model     string `json:"modelo"`
	Brand     string `json:"marca"`
	Size      string `json:"medida"`
	Stock     int    `json:"stock_actual"`
	MinStock  int    `json:"stock_minimo"`
}

// Service computes the dashboard widgets from fresh upstream data.
type Service interface {
	Stats(ctx context.Context) (Stats, error)
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)
	RecentSales(ctx context.Context, limit int) ([]backend.Sale, error)
	LowStockItems(ctx context.Context, limit int) ([]LowStockItem, error)
}

type service struct {
	api API
	now func() time.Time
}

// NewService creates a dashboard service.
func NewService(api API) Service {
	return &service{api: api, now: time.Now}
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	sales, err := s.api.ListSales(ctx)
	if err != nil {
		return Stats{}, err
	}
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		return Stats{}, err
	}
	inventory, err := s.api.ListInventory(ctx)
	if err != nil {
		return Stats{}, err
	}
	customers, err := s.api.ListCustomers(ctx)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		SalesToday:     decimal.Zero,
		TotalProducts:  len(products),
		TotalCustomers: len(customers),
	}

	today := s.now()
	for _, sale := range sales {
		if !sameDay(parseSaleDate(sale.SoldAt), today) {
			continue
		}
		stats.SalesToday = stats.SalesToday.Add(sale.Total)
		stats.SalesTodayCount++
	}

	for _, rec := range inventory {
		if rec.Stock <= rec.MinStock {
			stats.LowStock++
		}
	}
	return stats, nil
}

func (s *service) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	details, err := s.api.ListSaleDetails(ctx)
	if err != nil {
		return nil, err
	}

	type bucket struct {
		TopProduct
		order int
	}
	byProduct := make(map[int64]*bucket)
	for i, d := range details {
		b, ok := byProduct[d.ProductID]
		if !ok {
			b = &bucket{order: i}
			if d.Product != nil {
				b.Model = d.Product.Model
				b.Brand = d.Product.Brand
			}
			byProduct[d.ProductID] = b
		}
		b.Quantity += d.Quantity
	}

	ranked := make([]*bucket, 0, len(byProduct))
	for _, b := range byProduct {
		ranked = append(ranked, b)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Quantity != ranked[j].Quantity {
			return ranked[i].Quantity > ranked[j].Quantity
		}
		return ranked[i].order < ranked[j].order
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]TopProduct, 0, len(ranked))
	for _, b := range ranked {
		out = append(out, b.TopProduct)
	}
	return out, nil
}

func (s *service) RecentSales(ctx context.Context, limit int) ([]backend.Sale, error) {
	sales, err := s.api.ListSales(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(sales, func(i, j int) bool {
		return parseSaleDate(sales[i].SoldAt).After(parseSaleDate(sales[j].SoldAt))
	})
	if limit > 0 && len(sales) > limit {
		sales = sales[:limit]
	}
	return sales, nil
}

// LowStockItems lists products at or below their minimum threshold, most
// urgent first (lowest current stock).
func (s *service) LowStockItems(ctx context.Context, limit int) ([]LowStockItem, error) {
	inventory, err := s.api.ListInventory(ctx)
	if err != nil {
		return nil, err
	}
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]backend.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	out := make([]LowStockItem, 0)
	for _, rec := range inventory {
		if rec.Stock > rec.MinStock {
			continue
		}
		p := byID[rec.Product]
		out = append(out, LowStockItem{
			ProductID: rec.Product,
			Model:     p.Model,
			Brand:     p.Brand,
			Size:      p.Size,
			Stock:     rec.Stock,
			MinStock:  rec.MinStock,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Stock < out[j].Stock })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var saleDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseSaleDate(raw string) time.Time {
	for _, layout := range saleDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

func sameDay(a, b time.Time) bool {
	if a.IsZero() {
		return false
	}
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
