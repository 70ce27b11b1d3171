package handler

import (
	"storefront-be/internal/analytics"
	"storefront-be/internal/auth"
	"storefront-be/internal/cart"
	"storefront-be/internal/category"
	"storefront-be/internal/coupon"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/user"
)

type Deps struct {
	Users      user.Service
	Products   product.Service
	Categories category.Service
	Carts      cart.Service
	Coupons    coupon.Service
	Orders     order.Service
	Analytics  analytics.Service
	Tokens     *auth.TokenManager
	// Production switches the session cookie to Secure + SameSite=None.
	Production bool
}

type Handler struct {
	users      user.Service
	products   product.Service
	categories category.Service
	carts      cart.Service
	coupons    coupon.Service
	orders     order.Service
	analytics  analytics.Service
	tokens     *auth.TokenManager
	production bool
}

func New(d Deps) *Handler {
	return &Handler{
		users:      d.Users,
		products:   d.Products,
		categories: d.Categories,
		carts:      d.Carts,
		coupons:    d.Coupons,
		orders:     d.Orders,
		analytics:  d.Analytics,
		tokens:     d.Tokens,
		production: d.Production,
	}
}
