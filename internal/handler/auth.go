package handler

import (
	"net/http"

	"storefront-be/internal/address"
	"storefront-be/internal/auth"
	"storefront-be/internal/logger"
	"storefront-be/internal/middleware"
	"storefront-be/internal/user"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type profileRequest struct {
	Name            *string          `json:"name"`
	Address         *address.Address `json:"address"`
	CurrentPassword *string          `json:"currentPassword"`
	NewPassword     *string          `json:"newPassword"`
}

func (h *Handler) startSession(c *gin.Context, u *user.User) bool {
	token, err := h.tokens.Generate(u.ID)
	if err != nil {
		logger.FromCtx(c.Request.Context()).Error("token generation failed",
			zap.String("user_id", u.ID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not start session"})
		return false
	}
	auth.SetSessionCookie(c, token, h.tokens.TTL(), h.production)
	middleware.SetCurrentUser(c, u)
	return true
}

func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	u, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Registration failed")
		return
	}

	if !h.startSession(c, u) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Registered", "user": u})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	u, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}

	if !h.startSession(c, u) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged in", "user": u})
}

// Logout only drops the cookie; the stored cart is kept for the next login.
func (h *Handler) Logout(c *gin.Context) {
	auth.ClearSessionCookie(c, h.production)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *Handler) Me(c *gin.Context) {
	u, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	current, _ := middleware.CurrentUser(c)

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	u, err := h.users.UpdateProfile(c.Request.Context(), current.ID, user.ProfilePatch{
		Name:            req.Name,
		Address:         req.Address,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		respondError(c, err, "Error updating profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": u})
}
