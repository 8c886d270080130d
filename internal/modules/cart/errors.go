package cart

import "errors"

var (
	// ErrProductNotFound means the product is not in the loaded catalog
	// snapshot. This is a local error; nothing was sent upstream.
	ErrProductNotFound = errors.New("product not found in catalog")

	// ErrOutOfStock means the product has no stock at all.
	ErrOutOfStock = errors.New("product out of stock")

	// ErrInsufficientStock means the requested quantity would exceed the
	// stock ceiling recorded when the line was created.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrLineNotFound means no cart line exists for the product.
	ErrLineNotFound = errors.New("product not in cart")

	// ErrEmptyCart means checkout was attempted with no lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrConfirmationRequired guards destructive operations: the caller
	// must confirm before the cart is cleared.
	ErrConfirmationRequired = errors.New("confirmation required")
)
