package order

import "errors"

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrNotCancellable  = errors.New("order cannot be cancelled")
	ErrEmptyOrder      = errors.New("order must contain at least one item")
	ErrMissingShipping = errors.New("shipping address is required")
)
