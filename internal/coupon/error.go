package coupon

import "errors"

var (
	ErrCouponNotFound     = errors.New("Coupon not found")
	ErrInvalidCode        = errors.New("Invalid coupon code")
	ErrCouponInactive     = errors.New("This coupon is no longer active")
	ErrCouponExpired      = errors.New("This coupon has expired")
	ErrCodeExists         = errors.New("Coupon code already exists")
	ErrInvalidDiscount    = errors.New("Discount must be between 0 and 100")
	ErrCodeRequired       = errors.New("Coupon code is required")
	ErrExpirationRequired = errors.New("Expiration date is required")
)
