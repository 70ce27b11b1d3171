package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storefront-be/internal/cart"
	"storefront-be/internal/coupon"
	"storefront-be/internal/order"
	"storefront-be/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{user.ErrEmailExists, http.StatusBadRequest},
		{fmt.Errorf("checkout: %w", order.ErrInsufficientStock), http.StatusBadRequest},
		{coupon.ErrCouponExpired, http.StatusBadRequest},
		{coupon.ErrInvalidCode, http.StatusNotFound},
		{cart.ErrUserNotFound, http.StatusNotFound},
		{order.ErrForbidden, http.StatusForbidden},
		{&pq.Error{Code: "22P02"}, http.StatusBadRequest},
		{&pq.Error{Code: "40001"}, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.status, statusFor(tt.err))
		})
	}
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{"ClientError", coupon.ErrCouponExpired, http.StatusBadRequest, `{"message":"This coupon has expired"}`},
		{"MalformedID", &pq.Error{Code: "22P02", Message: "invalid input syntax for type uuid"}, http.StatusBadRequest, `{"message":"Invalid id"}`},
		{"Internal", errors.New("connection reset"), http.StatusInternalServerError, `{"message":"Something failed"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondError(c, tt.err, "Something failed")

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.body, w.Body.String())
		})
	}
}

func TestBindError(t *testing.T) {
	type body struct {
		Email string `json:"email" binding:"required,email"`
		Age   int    `json:"age" binding:"min=18"`
	}

	tests := []struct {
		name    string
		payload string
		message string
	}{
		{"Missing", `{"age": 20}`, "email is required"},
		{"BadEmail", `{"email": "nope", "age": 20}`, "email must be a valid email"},
		{"OtherRule", `{"email": "a@b.co", "age": 3}`, "age is invalid"},
		{"Malformed", `{`, "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.payload))
			c.Request.Header.Set("Content-Type", "application/json")

			var b body
			err := c.ShouldBindJSON(&b)
			assert.Error(t, err)
			bindError(c, err)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, fmt.Sprintf(`{"message":%q}`, tt.message), w.Body.String())
		})
	}
}
