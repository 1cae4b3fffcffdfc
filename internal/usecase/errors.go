package usecase

import "errors"

var (
	ErrAuthRequired      = errors.New("authentication required")
	ErrNothingToCheckout = errors.New("nothing to checkout: cart is empty")
	ErrInvalidPrice      = errors.New("validation failed: price must be a number")
	ErrInvalidOrigPrice  = errors.New("validation failed: original price must be a number")
	ErrInvalidStatus     = errors.New("validation failed: unknown order status")
	ErrInvalidID         = errors.New("invalid id format")
)
