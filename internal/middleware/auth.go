package middleware

import (
	"context"
	"errors"
	"net/http"

	"storefront-be/internal/auth"
	"storefront-be/internal/logger"
	"storefront-be/internal/user"
	"storefront-be/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const currentUserKey = "currentUser"

type UserResolver interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": message})
}

// Protect requires a valid session token and loads the user it names. The
// user is stored on the gin context and its id on the request context, where
// FromCtx loggers pick it up.
func Protect(tokens *auth.TokenManager, users UserResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := auth.ExtractAccessToken(c.Request)
		if raw == "" {
			unauthorized(c, "Not authorized, no token")
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			unauthorized(c, "Not authorized, token failed")
			return
		}

		ctx := c.Request.Context()
		u, err := users.GetByID(ctx, claims.UserID)
		if err != nil {
			if !errors.Is(err, user.ErrUserNotFound) {
				logger.FromCtx(ctx).Error("session user lookup failed",
					zap.String("user_id", claims.UserID),
					zap.Error(err),
				)
			}
			unauthorized(c, "Not authorized, user not found")
			return
		}

		ctx = utils.SetUserContext(ctx, u.ID)
		c.Request = c.Request.WithContext(ctx)
		c.Set(currentUserKey, u)

		c.Next()
	}
}

// AdminOnly must run after Protect.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if u, ok := CurrentUser(c); ok && u.IsAdmin() {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Not authorized as admin"})
	}
}

func CurrentUser(c *gin.Context) (*user.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*user.User)
	return u, ok && u != nil
}

// SetCurrentUser is used by handlers that create a session mid-request.
func SetCurrentUser(c *gin.Context, u *user.User) {
	c.Set(currentUserKey, u)
}
