package handler

import (
	"net/http"

	"storefront-be/internal/user"

	"github.com/gin-gonic/gin"
)

type adminUpdateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error fetching users")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) GetUser(c *gin.Context) {
	u, err := h.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Error fetching user")
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	var req adminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	patch := user.AdminPatch{Name: req.Name, Email: req.Email}
	if req.Role != nil {
		role := user.Role(*req.Role)
		patch.Role = &role
	}

	u, err := h.users.AdminUpdate(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err, "Error updating user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated", "user": u})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Error deleting user")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

func (h *Handler) Analytics(c *gin.Context) {
	summary, err := h.analytics.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error fetching analytics")
		return
	}
	c.JSON(http.StatusOK, summary)
}
