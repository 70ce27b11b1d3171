package coupon

import (
	"strings"
	"time"
)

type Coupon struct {
	ID             string    `json:"_id"`
	Code           string    `json:"code"`
	Discount       float64   `json:"discount"`
	ExpirationDate time.Time `json:"expirationDate"`
	IsActive       bool      `json:"isActive"`
	CreatedBy      string    `json:"createdBy"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type CreateInput struct {
	Code           string
	Discount       float64
	ExpirationDate time.Time
	IsActive       *bool
	CreatedBy      string
}

type UpdateInput struct {
	Code           *string
	Discount       *float64
	ExpirationDate *time.Time
	IsActive       *bool
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CheckValidity reports why c cannot be applied at now. The active flag is
// checked before the expiry date.
func CheckValidity(c Coupon, now time.Time) error {
	if !c.IsActive {
		return ErrCouponInactive
	}
	if now.After(c.ExpirationDate) {
		return ErrCouponExpired
	}
	return nil
}

func ApplyUpdate(c Coupon, in UpdateInput) Coupon {
	if in.Code != nil && NormalizeCode(*in.Code) != "" {
		c.Code = NormalizeCode(*in.Code)
	}
	if in.Discount != nil {
		c.Discount = *in.Discount
	}
	if in.ExpirationDate != nil && !in.ExpirationDate.IsZero() {
		c.ExpirationDate = *in.ExpirationDate
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	return c
}
