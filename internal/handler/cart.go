package handler

import (
	"net/http"

	"storefront-be/internal/cart"
	"storefront-be/internal/middleware"

	"github.com/gin-gonic/gin"
)

type cartRequest struct {
	Cart []cart.IncomingItem `json:"cart"`
}

func (h *Handler) GetCart(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)

	entries, err := h.carts.Get(c.Request.Context(), u.ID)
	if err != nil {
		respondError(c, err, "Failed to get cart")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": entries})
}

func (h *Handler) ReplaceCart(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)

	var req cartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	entries, err := h.carts.Replace(c.Request.Context(), u.ID, req.Cart)
	if err != nil {
		respondError(c, err, "Failed to update cart")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": entries})
}

func (h *Handler) MergeCart(c *gin.Context) {
	u, _ := middleware.CurrentUser(c)

	var req cartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	entries, err := h.carts.Merge(c.Request.Context(), u.ID, req.Cart)
	if err != nil {
		respondError(c, err, "Failed to merge cart")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cart": entries})
}
