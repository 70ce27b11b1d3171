package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SetSessionCookie writes the HTTP-only session cookie. Cross-origin production
// deployments need Secure + SameSite=None for the browser to send it back.
func SetSessionCookie(c *gin.Context, token string, ttl time.Duration, production bool) {
	sameSite := http.SameSiteLaxMode
	if production {
		sameSite = http.SameSiteNoneMode
	}

	c.SetSameSite(sameSite)
	c.SetCookie(CookieName, token, int(ttl.Seconds()), "/", "", production, true)
}

func ClearSessionCookie(c *gin.Context, production bool) {
	sameSite := http.SameSiteLaxMode
	if production {
		sameSite = http.SameSiteNoneMode
	}

	c.SetSameSite(sameSite)
	c.SetCookie(CookieName, "", -1, "/", "", production, true)
}
