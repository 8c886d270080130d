package backend

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog entry as the upstream API serves it. Field names on the
// wire are the upstream contract and must not be renamed.
type Product struct {
	ID          int64           `json:"id_producto"`
	Model       string          `json:"modelo"`
	Brand       string          `json:"marca"`
	Size        string          `json:"medida"`
	Color       string          `json:"color,omitempty"`
	SKU         string          `json:"codigo_sku,omitempty"`
	Category    string          `json:"categoria,omitempty"`
	Price       decimal.Decimal `json:"precio_actual"`
	Image       string          `json:"imagen,omitempty"`
	Description string          `json:"descripcion,omitempty"`
}

// InventoryRecord tracks stock for exactly one product.
type InventoryRecord struct {
	ID       int64 `json:"id_inventario"`
	Product  int64 `json:"id_producto"`
	Stock    int   `json:"stock_actual"`
	MinStock int   `json:"stock_minimo"`
}

// Customer is keyed by CI, a national-ID style integer.
type Customer struct {
	CI      int64  `json:"ci"`
	Name    string `json:"nombre"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"telefono,omitempty"`
	Address string `json:"direccion,omitempty"`
}

// SaleLine is one (product, quantity, unit price) tuple inside a sale request.
type SaleLine struct {
	ProductID int64           `json:"id_producto"`
	Quantity  int             `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
}

// SaleRequest is the checkout payload. CustomerCI is nil for walk-in sales.
type SaleRequest struct {
	CustomerCI *int64     `json:"ci"`
	Lines      []SaleLine `json:"detalle"`
}

// Sale is a committed sale as returned by the upstream API. The ID and the
// authoritative total are assigned server-side.
type Sale struct {
	ID         int64           `json:"id_venta"`
	CustomerCI *int64          `json:"ci,omitempty"`
	Total      decimal.Decimal `json:"total"`
	SoldAt     string          `json:"fecha_venta,omitempty"`
}

// SaleDetailProduct carries the denormalized product display fields the
// report endpoint embeds in each row.
type SaleDetailProduct struct {
	Model string `json:"modelo"`
	Brand string `json:"marca"`
}

// SaleDetailCustomer carries the customer name embedded via the sale.
type SaleDetailCustomer struct {
	Name string `json:"nombre"`
}

// SaleDetailSale is the sale envelope embedded in a report row.
type SaleDetailSale struct {
	Customer *SaleDetailCustomer `json:"clientes,omitempty"`
}

// SaleDetail is one row of the sale-line report.
type SaleDetail struct {
	ID        int64              `json:"id_detalle"`
	SaleID    int64              `json:"id_venta"`
	ProductID int64              `json:"id_producto"`
	Quantity  int                `json:"cantidad"`
	UnitPrice decimal.Decimal    `json:"precio_unitario"`
	Subtotal  decimal.Decimal    `json:"subtotal"`
	Product   *SaleDetailProduct `json:"productos,omitempty"`
	Sale      *SaleDetailSale    `json:"ventas,omitempty"`
}

// Roles the upstream API assigns to operator accounts.
const (
	RoleAdmin  = "admin"
	RoleVendor = "vendedor"
)

// User is a panel operator account. Role is one of "admin" or "vendedor";
// Status is "activo" or "inactivo".
type User struct {
	ID       int64  `json:"id_usuario"`
	Username string `json:"nombre_usuario"`
	FullName string `json:"nombre_completo,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"telefono,omitempty"`
	Role     string `json:"rol"`
	Status   string `json:"estado,omitempty"`
}

// Credentials is the login payload.
type Credentials struct {
	Username string `json:"nombre_usuario"`
	Password string `json:"password"`
}

// LoginResponse is what a successful login returns.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"usuario"`
}
