package handler

import (
	"net/http"

	"storefront-be/internal/coupon"
	"storefront-be/internal/middleware"

	"github.com/gin-gonic/gin"
)

type createCouponRequest struct {
	Code           string    `json:"code" binding:"required"`
	Discount       formFloat `json:"discount"`
	ExpirationDate formDate  `json:"expirationDate"`
	IsActive       *bool     `json:"isActive"`
}

type updateCouponRequest struct {
	Code           *string   `json:"code"`
	Discount       formFloat `json:"discount"`
	ExpirationDate formDate  `json:"expirationDate"`
	IsActive       *bool     `json:"isActive"`
}

type validateCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

func (h *Handler) ListCoupons(c *gin.Context) {
	coupons, err := h.coupons.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error fetching coupons")
		return
	}
	c.JSON(http.StatusOK, coupons)
}

func (h *Handler) CreateCoupon(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)

	var req createCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cp, err := h.coupons.Create(c.Request.Context(), coupon.CreateInput{
		Code:           req.Code,
		Discount:       req.Discount.value,
		ExpirationDate: req.ExpirationDate.value,
		IsActive:       req.IsActive,
		CreatedBy:      u.ID,
	})
	if err != nil {
		respondError(c, err, "Error creating coupon")
		return
	}
	c.JSON(http.StatusCreated, cp)
}

func (h *Handler) UpdateCoupon(c *gin.Context) {
	var req updateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cp, err := h.coupons.Update(c.Request.Context(), c.Param("id"), coupon.UpdateInput{
		Code:           req.Code,
		Discount:       req.Discount.ptr(),
		ExpirationDate: req.ExpirationDate.ptr(),
		IsActive:       req.IsActive,
	})
	if err != nil {
		respondError(c, err, "Error updating coupon")
		return
	}
	c.JSON(http.StatusOK, cp)
}

func (h *Handler) DeleteCoupon(c *gin.Context) {
	if err := h.coupons.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Error deleting coupon")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Coupon deleted successfully"})
}

func (h *Handler) ValidateCoupon(c *gin.Context) {
	var req validateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cp, err := h.coupons.Validate(c.Request.Context(), req.Code)
	if err != nil {
		respondError(c, err, "Error validating coupon")
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": cp.Code, "discount": cp.Discount})
}
