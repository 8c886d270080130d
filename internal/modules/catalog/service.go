package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/llanterasoft/pos-panel/internal/backend"
)

// API is the slice of the upstream client the catalog needs.
type API interface {
	ListProducts(ctx context.Context) ([]backend.Product, error)
	ListInventory(ctx context.Context) ([]backend.InventoryRecord, error)
}

// Service holds the page-load snapshot of the catalog and answers in-memory
// queries against it. The snapshot is replaced wholesale on Reload; stock
// values are as of the last reload, which is what the checkout engine
// deliberately works from.
type Service interface {
	Reload(ctx context.Context) error
	Items() []Item
	Find(productID int64) (Item, bool)
	Search(f Filter) []Item
	Brands() []string
	Sizes() []string
}

type service struct {
	api API

	mu    sync.RWMutex
	items []Item
}

// NewService creates a catalog service with an empty snapshot; call Reload
// before serving queries.
func NewService(api API) Service {
	return &service{api: api}
}

func (s *service) Reload(ctx context.Context) error {
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		return err
	}
	inventory, err := s.api.ListInventory(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.items = merge(products, inventory)
	s.mu.Unlock()
	return nil
}

func (s *service) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *service) Find(productID int64) (Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, item := range s.items {
		if item.ID == productID {
			return item, true
		}
	}
	return Item{}, false
}

func (s *service) Search(f Filter) []Item {
	model := strings.ToLower(strings.TrimSpace(f.Model))

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Item
	for _, item := range s.items {
		if model != "" && !strings.Contains(strings.ToLower(item.Model), model) {
			continue
		}
		if f.Brand != "" && item.Brand != f.Brand {
			continue
		}
		if f.Size != "" && item.Size != f.Size {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (s *service) Brands() []string {
	return s.distinct(func(i Item) string { return i.Brand })
}

func (s *service) Sizes() []string {
	return s.distinct(func(i Item) string { return i.Size })
}

func (s *service) distinct(field func(Item) string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	var out []string
	for _, item := range s.items {
		v := field(item)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
