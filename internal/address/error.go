package address

import "errors"

var (
	ErrAddressRequired = errors.New("Shipping address is required")
	ErrUserNotFound    = errors.New("User not found")
)
