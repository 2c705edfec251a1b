package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")

	// -- Resource State --
	ErrCartNotFound = errors.New("cart not found")
	ErrItemNotFound = errors.New("product not found in cart")
)
