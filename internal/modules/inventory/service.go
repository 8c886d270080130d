package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/llanterasoft/pos-panel/internal/backend"
	"github.com/llanterasoft/pos-panel/internal/bus"
	"github.com/llanterasoft/pos-panel/internal/modules/catalog"
	"github.com/shopspring/decimal"
)

// ErrConfirmationRequired guards product deletion.
var ErrConfirmationRequired = errors.New("confirmation required")

// API is the slice of the upstream client the inventory screen needs for
// writes; reads go through the shared catalog snapshot.
type API interface {
	CreateProduct(ctx context.Context, p backend.Product) (*backend.Product, error)
	UpdateProduct(ctx context.Context, id int64, p backend.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	CreateInventory(ctx context.Context, rec backend.InventoryRecord) (*backend.InventoryRecord, error)
	UpdateInventory(ctx context.Context, rec backend.InventoryRecord) error
	DeleteInventory(ctx context.Context, id int64) error
}

// Service backs the inventory screen: the merged product/stock list with its
// client-side filter set, the stats strip, and the save/delete flows.
type Service interface {
	List(ctx context.Context, f FilterSet) ([]catalog.Item, error)
	Stats(ctx context.Context) (Stats, error)
	Save(ctx context.Context, req SaveRequest) (*catalog.Item, error)
	Delete(ctx context.Context, productID int64, confirm bool) error
}

type service struct {
	api     API
	catalog catalog.Service
	events  *bus.Bus
}

// NewService creates an inventory service over the shared catalog snapshot.
func NewService(api API, cat catalog.Service, events *bus.Bus) Service {
	return &service{api: api, catalog: cat, events: events}
}

func (s *service) List(ctx context.Context, f FilterSet) ([]catalog.Item, error) {
	if err := s.catalog.Reload(ctx); err != nil {
		return nil, err
	}
	items := s.catalog.Items()
	return applyFilters(items, f), nil
}

func (s *service) Stats(ctx context.Context) (Stats, error) {
	if err := s.catalog.Reload(ctx); err != nil {
		return Stats{}, err
	}

	stats := Stats{TotalValue: decimal.Zero}
	for _, item := range s.catalog.Items() {
		stats.TotalProducts++
		if item.Stock == 0 {
			stats.OutOfStock++
		} else if item.Stock <= item.MinStock {
			stats.LowStock++
		}
		stats.TotalValue = stats.TotalValue.Add(
			item.Price.Mul(decimal.NewFromInt(int64(item.Stock))))
	}
	return stats, nil
}

func (s *service) Save(ctx context.Context, req SaveRequest) (*catalog.Item, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	product := backend.Product{
		SKU:      req.SKU,
		Brand:    req.Brand,
		Model:    req.Model,
		Size:     req.Size,
		Category: req.Category,
		Color:    req.Color,
		Price:    req.Price,
	}

	var productID int64
	if req.ProductID == nil {
		created, err := s.api.CreateProduct(ctx, product)
		if err != nil {
			return nil, err
		}
		productID = created.ID
		if _, err := s.api.CreateInventory(ctx, backend.InventoryRecord{
			Product:  productID,
			Stock:    req.Stock,
			MinStock: req.MinStock,
		}); err != nil {
			return nil, err
		}
		s.events.Publish(bus.TopicInventoryChanged, "create", fmt.Sprint(productID))
	} else {
		productID = *req.ProductID
		product.ID = productID
		if err := s.api.UpdateProduct(ctx, productID, product); err != nil {
			return nil, err
		}
		if req.InventoryID != nil {
			if err := s.api.UpdateInventory(ctx, backend.InventoryRecord{
				ID:       *req.InventoryID,
				Product:  productID,
				Stock:    req.Stock,
				MinStock: req.MinStock,
			}); err != nil {
				return nil, err
			}
		}
		s.events.Publish(bus.TopicInventoryChanged, "update", fmt.Sprint(productID))
	}

	if err := s.catalog.Reload(ctx); err != nil {
		return nil, err
	}
	item, ok := s.catalog.Find(productID)
	if !ok {
		return nil, fmt.Errorf("product %d missing after save", productID)
	}
	return &item, nil
}

func (s *service) Delete(ctx context.Context, productID int64, confirm bool) error {
	if !confirm {
		return ErrConfirmationRequired
	}

	item, ok := s.catalog.Find(productID)
	if ok && item.InventoryID != nil {
		if err := s.api.DeleteInventory(ctx, *item.InventoryID); err != nil {
			return err
		}
	}
	if err := s.api.DeleteProduct(ctx, productID); err != nil {
		return err
	}
	s.events.Publish(bus.TopicInventoryChanged, "delete", fmt.Sprint(productID))
	return s.catalog.Reload(ctx)
}

func validate(req SaveRequest) error {
	if req.Brand == "" {
		return fmt.Errorf("marca is required")
	}
	if req.Model == "" {
		return fmt.Errorf("modelo is required")
	}
	if req.Size == "" {
		return fmt.Errorf("medida is required")
	}
	if req.Price.Sign() <= 0 {
		return fmt.Errorf("precio_actual must be greater than zero")
	}
	if req.Stock < 0 {
		return fmt.Errorf("stock_actual cannot be negative")
	}
	if req.MinStock < 0 {
		return fmt.Errorf("stock_minimo cannot be negative")
	}
	return nil
}

func applyFilters(items []catalog.Item, f FilterSet) []catalog.Item {
	statuses := make(map[StockStatus]bool, len(f.Statuses))
	for _, st := range f.Statuses {
		statuses[st] = true
	}

	out := make([]catalog.Item, 0, len(items))
	for _, item := range items {
		if len(statuses) > 0 && !statuses[StatusOf(item.Stock, item.MinStock)] {
			continue
		}
		if f.PriceMin != nil && item.Price.LessThan(*f.PriceMin) {
			continue
		}
		if f.PriceMax != nil && item.Price.GreaterThan(*f.PriceMax) {
			continue
		}
		if len(f.Brands) > 0 && !contains(f.Brands, item.Brand) {
			continue
		}
		if len(f.Sizes) > 0 && !contains(f.Sizes, item.Size) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
