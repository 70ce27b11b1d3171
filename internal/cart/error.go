package cart

import "errors"

var (
	ErrUserNotFound = errors.New("User not found")

	ErrFailedGetCart    = errors.New("failed to get cart")
	ErrFailedUpdateCart = errors.New("failed to update cart")
)
