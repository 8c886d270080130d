package cart

import (
	"context"
	"log"
	"sync"

	"github.com/llanterasoft/pos-panel/internal/backend"
	"github.com/llanterasoft/pos-panel/internal/bus"
	"github.com/llanterasoft/pos-panel/internal/modules/catalog"
)

// API is the slice of the upstream client checkout needs.
type API interface {
	CreateSale(ctx context.Context, req backend.SaleRequest) (*backend.Sale, error)
	UpdateStock(ctx context.Context, inventoryID int64, stock int) error
	GetCustomer(ctx context.Context, ci int64) (*backend.Customer, error)
}

// Service is the order-assembly engine for one sales session. Lines are
// unique by product and keep their insertion order; every mutation
// republishes the cart summary on the bus.
type Service interface {
	Add(productID int64) (Summary, error)
	ChangeQuantity(productID int64, delta int) (Summary, error)
	Remove(productID int64) (Summary, error)
	Clear(confirm bool) (Summary, error)
	Summary() Summary
	Checkout(ctx context.Context, customerCI *int64) (*Receipt, error)
}

type service struct {
	api     API
	catalog catalog.Service
	events  *bus.Bus

	mu    sync.Mutex
	lines []Line
}

// NewService creates an empty cart over the given catalog snapshot.
func NewService(api API, cat catalog.Service, events *bus.Bus) Service {
	return &service{api: api, catalog: cat, events: events}
}

func (s *service) Add(productID int64) (Summary, error) {
	item, ok := s.catalog.Find(productID)
	if !ok {
		return s.Summary(), ErrProductNotFound
	}
	if item.Stock <= 0 {
		return s.Summary(), ErrOutOfStock
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID != productID {
			continue
		}
		if s.lines[i].Quantity >= s.lines[i].StockCeiling {
			return summarize(s.lines), ErrInsufficientStock
		}
		s.lines[i].Quantity++
		return s.republish(), nil
	}

	s.lines = append(s.lines, Line{
		ProductID:    item.ID,
		Model:        item.Model,
		Brand:        item.Brand,
		UnitPrice:    item.Price,
		Quantity:     1,
		StockCeiling: item.Stock,
	})
	return s.republish(), nil
}

func (s *service) ChangeQuantity(productID int64, delta int) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return summarize(s.lines), ErrLineNotFound
	}

	next := s.lines[idx].Quantity + delta
	if next < 1 {
		s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
		return s.republish(), nil
	}
	if next > s.lines[idx].StockCeiling {
		return summarize(s.lines), ErrInsufficientStock
	}
	s.lines[idx].Quantity = next
	return s.republish(), nil
}

func (s *service) Remove(productID int64) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return s.republish(), nil
		}
	}
	return summarize(s.lines), ErrLineNotFound
}

func (s *service) Clear(confirm bool) (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) == 0 {
		return summarize(s.lines), nil
	}
	if !confirm {
		return summarize(s.lines), ErrConfirmationRequired
	}
	s.lines = nil
	return s.republish(), nil
}

func (s *service) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return summarize(s.lines)
}

// Checkout submits the cart as a sale. Only after the upstream accepts the
// sale does it decrement inventory, one request per line, computing the new
// stock from the page-load snapshot. A decrement that fails is logged and
// tolerated: the sale is already committed upstream and is not rolled back.
// On upstream rejection the cart is left intact for retry.
func (s *service) Checkout(ctx context.Context, customerCI *int64) (*Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) == 0 {
		return nil, ErrEmptyCart
	}

	req := backend.SaleRequest{CustomerCI: customerCI}
	for _, l := range s.lines {
		req.Lines = append(req.Lines, backend.SaleLine{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}

	sale, err := s.api.CreateSale(ctx, req)
	if err != nil {
		return nil, err
	}

	for _, l := range s.lines {
		item, ok := s.catalog.Find(l.ProductID)
		if !ok || item.InventoryID == nil {
			continue
		}
		newStock := item.Stock - l.Quantity
		if err := s.api.UpdateStock(ctx, *item.InventoryID, newStock); err != nil {
			log.Printf("checkout: stock update failed for product %d (sale %d): %v",
				l.ProductID, sale.ID, err)
		}
	}

	s.lines = nil
	s.republish()
	s.events.Publish(bus.TopicSalesCreated, "create", "")
	s.events.Publish(bus.TopicInventoryChanged, "update", "")

	if err := s.catalog.Reload(ctx); err != nil {
		log.Printf("checkout: catalog reload failed: %v", err)
	}

	receipt := &Receipt{SaleID: sale.ID, Total: sale.Total, SoldAt: sale.SoldAt}
	if customerCI != nil {
		// Name on the receipt is display-only; a failed lookup leaves it blank.
		customer, err := s.api.GetCustomer(ctx, *customerCI)
		if err != nil {
			log.Printf("checkout: customer lookup failed for receipt (sale %d): %v", sale.ID, err)
		} else {
			receipt.CustomerName = customer.Name
		}
	}
	return receipt, nil
}

// republish must be called with the lock held.
func (s *service) republish() Summary {
	summary := summarize(s.lines)
	s.events.Publish(bus.TopicCartChanged, "update", "")
	return summary
}
