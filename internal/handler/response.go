package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"storefront-be/internal/address"
	"storefront-be/internal/cart"
	"storefront-be/internal/category"
	"storefront-be/internal/coupon"
	"storefront-be/internal/logger"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

var badRequestErrors = []error{
	user.ErrEmailExists,
	user.ErrInvalidCredentials,
	user.ErrCurrentPasswordRequired,
	user.ErrCurrentPasswordIncorrect,
	user.ErrInvalidRole,
	user.ErrMissingFields,
	user.ErrIncompleteAddress,
	address.ErrAddressRequired,
	category.ErrDuplicateCategory,
	category.ErrNameRequired,
	product.ErrAlreadyReviewed,
	product.ErrInvalidRating,
	product.ErrInvalidPrice,
	product.ErrInvalidStock,
	product.ErrNameRequired,
	product.ErrCategoryNotFound,
	coupon.ErrCouponInactive,
	coupon.ErrCouponExpired,
	coupon.ErrCodeExists,
	coupon.ErrInvalidDiscount,
	coupon.ErrCodeRequired,
	coupon.ErrExpirationRequired,
	order.ErrEmptyOrder,
	order.ErrInvalidQuantity,
	order.ErrInsufficientStock,
	order.ErrInvalidStatus,
	order.ErrAlreadyPaid,
}

var notFoundErrors = []error{
	user.ErrUserNotFound,
	address.ErrUserNotFound,
	cart.ErrUserNotFound,
	category.ErrCategoryNotFound,
	product.ErrProductNotFound,
	product.ErrReviewNotFound,
	coupon.ErrCouponNotFound,
	coupon.ErrInvalidCode,
	order.ErrOrderNotFound,
	order.ErrProductNotFound,
}

var forbiddenErrors = []error{
	order.ErrForbidden,
}

func matches(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// statusFor maps a service error to its HTTP status. Anything unknown is a 500.
func statusFor(err error) int {
	switch {
	case matches(err, badRequestErrors):
		return http.StatusBadRequest
	case matches(err, notFoundErrors):
		return http.StatusNotFound
	case matches(err, forbiddenErrors):
		return http.StatusForbidden
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "22P02" {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// respondError writes {"message": ...}. Client errors carry the error text;
// server errors are logged and answered with fallback.
func respondError(c *gin.Context, err error, fallback string) {
	status := statusFor(err)
	if status != http.StatusInternalServerError {
		message := err.Error()
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			message = "Invalid id"
		}
		c.JSON(status, gin.H{"message": message})
		return
	}

	logger.FromCtx(c.Request.Context()).Error("request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(status, gin.H{"message": fallback})
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// bindError turns a gin binding failure into a 400 with a readable message.
func bindError(c *gin.Context, err error) {
	message := "Invalid request body"

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", field)
		case "email":
			message = fmt.Sprintf("%s must be a valid email", field)
		default:
			message = fmt.Sprintf("%s is invalid", field)
		}
	}

	c.JSON(http.StatusBadRequest, gin.H{"message": message})
}
