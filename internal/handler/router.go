package handler

import (
	"net/http"

	"storefront-be/internal/logger"
	"storefront-be/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter mounts the REST API under /api plus /health and /metrics.
func NewRouter(h *Handler, clientURLs []string) *gin.Engine {
	r := gin.New()
	r.Use(
		gin.Recovery(),
		logger.RequestIDMiddleware(),
		logger.LoggingMiddleware(),
		middleware.Metrics(),
		middleware.CORS(clientURLs),
		middleware.RateLimit(h.tokens),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	protect := middleware.Protect(h.tokens, h.users)
	adminOnly := middleware.AdminOnly()

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.Register)
	authGroup.POST("/login", h.Login)
	authGroup.POST("/logout", h.Logout)
	authGroup.GET("/me", protect, h.Me)
	authGroup.PUT("/profile", protect, h.UpdateProfile)

	products := api.Group("/products")
	products.GET("", h.ListProducts)
	products.GET("/:id", h.GetProduct)
	products.POST("/:id/reviews", protect, h.AddReview)
	products.DELETE("/:id/reviews/:reviewId", protect, adminOnly, h.DeleteReview)

	api.GET("/categories", h.ListCategories)

	users := api.Group("/users", protect)
	users.GET("/cart", h.GetCart)
	users.PUT("/cart", h.ReplaceCart)
	users.POST("/cart/merge", h.MergeCart)

	orders := api.Group("/orders", protect)
	orders.POST("", h.CreateOrder)
	orders.GET("/myorders", h.MyOrders)
	orders.GET("/:id", h.GetOrder)
	orders.PUT("/:id/pay", h.PayOrder)

	coupons := api.Group("/coupons", protect)
	coupons.POST("/validate", h.ValidateCoupon)
	coupons.GET("", adminOnly, h.ListCoupons)
	coupons.POST("", adminOnly, h.CreateCoupon)
	coupons.PUT("/:id", adminOnly, h.UpdateCoupon)
	coupons.DELETE("/:id", adminOnly, h.DeleteCoupon)

	admin := api.Group("/admin", protect, adminOnly)
	admin.GET("/users", h.ListUsers)
	admin.GET("/users/:id", h.GetUser)
	admin.PUT("/users/:id", h.UpdateUser)
	admin.DELETE("/users/:id", h.DeleteUser)
	admin.POST("/products", h.CreateProduct)
	admin.PUT("/products/:id", h.UpdateProduct)
	admin.DELETE("/products/:id", h.DeleteProduct)
	admin.GET("/orders", h.ListOrders)
	admin.PUT("/orders/:id/status", h.UpdateOrderStatus)
	admin.GET("/categories", h.ListCategories)
	admin.POST("/categories", h.CreateCategory)
	admin.PUT("/categories/:id", h.UpdateCategory)
	admin.DELETE("/categories/:id", h.DeleteCategory)
	admin.GET("/analytics", h.Analytics)

	return r
}
