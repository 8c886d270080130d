package inventory

import (
	"github.com/shopspring/decimal"
)

// StockStatus buckets a stock level against its minimum threshold.
type StockStatus string

const (
	StatusOut    StockStatus = "out"    // nothing left
	StatusLow    StockStatus = "low"    // at or below the minimum
	StatusMedium StockStatus = "medium" // within twice the minimum
	StatusHigh   StockStatus = "high"
)

// StatusOf classifies a stock level.
func StatusOf(stock, minStock int) StockStatus {
	switch {
	case stock == 0:
		return StatusOut
	case stock <= minStock:
		return StatusLow
	case stock <= minStock*2:
		return StatusMedium
	default:
		return StatusHigh
	}
}

// FilterSet narrows the inventory list in memory. Zero values mean "no
// restriction" for their criterion; an empty Statuses slice admits every
// status.
type FilterSet struct {
	Statuses []StockStatus    `json:"stock_status,omitempty"`
	PriceMin *decimal.Decimal `json:"precio_min,omitempty"`
	PriceMax *decimal.Decimal `json:"precio_max,omitempty"`
	Brands   []string         `json:"marcas,omitempty"`
	Sizes    []string         `json:"medidas,omitempty"`
}

// Stats is the strip of cards above the inventory table. TotalValue is only
// shown to admins; the gate's view-model handles that.
type Stats struct {
	TotalProducts int             `json:"total_productos"`
	LowStock      int             `json:"stock_bajo"`
	OutOfStock    int             `json:"agotados"`
	TotalValue    decimal.Decimal `json:"valor_total"`
}

// SaveRequest carries the product form. A nil ProductID creates a product
// plus its inventory row; otherwise both are updated.
type SaveRequest struct {
	ProductID   *int64          `json:"id_producto,omitempty"`
	InventoryID *int64          `json:"id_inventario,omitempty"`
	SKU         string          `json:"codigo_sku,omitempty"`
	Brand       string          `json:"marca"`
	Model       string          `json:"modelo"`
	Size        string          `json:"medida"`
	Category    string          `json:"categoria,omitempty"`
	Color       string          `json:"color,omitempty"`
	Price       decimal.Decimal `json:"precio_actual"`
	Stock       int             `json:"stock_actual"`
	MinStock    int             `json:"stock_minimo"`
}
