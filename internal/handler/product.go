package handler

import (
	"net/http"

	"storefront-be/internal/middleware"
	"storefront-be/internal/product"

	"github.com/gin-gonic/gin"
)

type reviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type createProductRequest struct {
	Name        string    `json:"name" binding:"required"`
	Price       formFloat `json:"price"`
	Image       string    `json:"image"`
	Description string    `json:"description"`
	Category    *string   `json:"category"`
	Stock       formInt   `json:"stock"`
}

type updateProductRequest struct {
	Name        *string   `json:"name"`
	Price       formFloat `json:"price"`
	Image       *string   `json:"image"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Stock       formInt   `json:"stock"`
}

func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.products.List(c.Request.Context(), product.ListFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	if err != nil {
		respondError(c, err, "Error fetching products")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) GetProduct(c *gin.Context) {
	p, err := h.products.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Error fetching product")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) AddReview(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	_, err := h.products.AddReview(c.Request.Context(), c.Param("id"), u.ID, u.Name, req.Rating, req.Comment)
	if err != nil {
		respondError(c, err, "Error adding review")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Review added successfully"})
}

func (h *Handler) DeleteReview(c *gin.Context) {
	if err := h.products.DeleteReview(c.Request.Context(), c.Param("id"), c.Param("reviewId")); err != nil {
		respondError(c, err, "Error deleting review")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	p, err := h.products.Create(c.Request.Context(), product.CreateInput{
		Name:        req.Name,
		Price:       req.Price.value,
		Image:       req.Image,
		Description: req.Description,
		Category:    optionalID(req.Category),
		Stock:       req.Stock.value,
	})
	if err != nil {
		respondError(c, err, "Error creating product")
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	p, err := h.products.Update(c.Request.Context(), c.Param("id"), product.UpdateInput{
		Name:        req.Name,
		Price:       req.Price.ptr(),
		Image:       req.Image,
		Description: req.Description,
		Category:    optionalID(req.Category),
		Stock:       req.Stock.ptr(),
	})
	if err != nil {
		respondError(c, err, "Error updating product")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Error deleting product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
