package catalog

import (
	"github.com/llanterasoft/pos-panel/internal/backend"
	"github.com/shopspring/decimal"
)

// Item is a product joined with its stock, the shape the sales screen works
// with. A product with no inventory row carries stock 0 and a nil inventory
// id, exactly as the original screen rendered it.
type Item struct {
	ID          int64           `json:"id_producto"`
	Model       string          `json:"modelo"`
	Brand       string          `json:"marca"`
	Size        string          `json:"medida"`
	Color       string          `json:"color,omitempty"`
	Price       decimal.Decimal `json:"precio_actual"`
	Stock       int             `json:"stock_actual"`
	MinStock    int             `json:"stock_minimo"`
	InventoryID *int64          `json:"id_inventario"`
}

// LowStock reports whether the item is at or below its minimum threshold.
func (i Item) LowStock() bool { return i.Stock <= i.MinStock }

// InStock reports whether anything can still be sold.
func (i Item) InStock() bool { return i.Stock > 0 }

// Filter narrows a snapshot in memory: model is a case-insensitive substring
// match, brand and size are exact, and empty criteria match everything.
type Filter struct {
	Model string `json:"modelo"`
	Brand string `json:"marca"`
	Size  string `json:"medida"`
}

func merge(products []backend.Product, inventory []backend.InventoryRecord) []Item {
	byProduct := make(map[int64]backend.InventoryRecord, len(inventory))
	for _, rec := range inventory {
		byProduct[rec.Product] = rec
	}

	items := make([]Item, 0, len(products))
	for _, p := range products {
		item := Item{
			ID:    p.ID,
			Model: p.Model,
			Brand: p.Brand,
			Size:  p.Size,
			Color: p.Color,
			Price: p.Price,
		}
		if rec, ok := byProduct[p.ID]; ok {
			item.Stock = rec.Stock
			item.MinStock = rec.MinStock
			invID := rec.ID
			item.InventoryID = &invID
		}
		items = append(items, item)
	}
	return items
}
