package order

import "errors"

var (
	ErrEmptyOrder        = errors.New("No order items")
	ErrInvalidQuantity   = errors.New("Quantity must be at least 1")
	ErrProductNotFound   = errors.New("Product not found")
	ErrInsufficientStock = errors.New("Insufficient stock")
	ErrOrderNotFound     = errors.New("Order not found")
	ErrForbidden         = errors.New("Not authorized to access this order")
	ErrInvalidStatus     = errors.New("Invalid order status")
	ErrAlreadyPaid       = errors.New("Order is already paid")
)
