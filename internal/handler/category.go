package handler

import (
	"net/http"
	"strings"

	"storefront-be/internal/category"

	"github.com/gin-gonic/gin"
)

type createCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type updateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (h *Handler) ListCategories(c *gin.Context) {
	var filter *string
	if s := strings.TrimSpace(c.Query("search")); s != "" {
		filter = &s
	}

	categories, err := h.categories.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Error fetching categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cat, err := h.categories.Create(c.Request.Context(), category.CreateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err, "Error creating category")
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	cat, err := h.categories.Update(c.Request.Context(), c.Param("id"), category.UpdateInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err, "Error updating category")
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	if err := h.categories.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Error deleting category")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
