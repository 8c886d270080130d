package cart

import (
	"github.com/shopspring/decimal"
)

// Line is one product in the cart. UnitPrice and StockCeiling are snapshots
// taken when the line was created; the ceiling bounds the quantity for the
// life of the line. Quantity is always >= 1; a line that would drop below
// one is removed instead.
type Line struct {
	ProductID    int64           `json:"id_producto"`
	Model        string          `json:"modelo"`
	Brand        string          `json:"marca"`
	UnitPrice    decimal.Decimal `json:"precio_unitario"`
	Quantity     int             `json:"cantidad"`
	StockCeiling int             `json:"stock_disponible"`
}

// Subtotal is quantity times the snapshotted unit price.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// LineView is a Line with its derived subtotal, for display.
type LineView struct {
	Line
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Summary is the republished cart state: every line with its subtotal, the
// cart total, and the summed item count.
type Summary struct {
	Lines     []LineView      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"cantidad_productos"`
}

func summarize(lines []Line) Summary {
	s := Summary{Lines: make([]LineView, 0, len(lines)), Total: decimal.Zero}
	for _, l := range lines {
		sub := l.Subtotal()
		s.Lines = append(s.Lines, LineView{Line: l, Subtotal: sub})
		s.Total = s.Total.Add(sub)
		s.ItemCount += l.Quantity
	}
	return s
}

// Receipt is what a successful checkout hands back for the summary modal.
type Receipt struct {
	SaleID       int64           `json:"id_venta"`
	Total        decimal.Decimal `json:"total"`
	CustomerName string          `json:"cliente,omitempty"`
	SoldAt       string          `json:"fecha_venta,omitempty"`
}
