package middleware

import (
	"net/http"
	"strings"

	"bukarum/models"
	"bukarum/services"
	"bukarum/utils"

	"github.com/gin-gonic/gin"
)

const (
	SessionCookie = "bukarum_session"
	userKey       = "current_user"
	claimsKey     = "session_claims"
)

// SessionToken reads the session from the cookie, falling back to a bearer
// header for API clients.
func SessionToken(c *gin.Context) string {
	if v, err := c.Cookie(SessionCookie); err == nil && v != "" {
		return v
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

// Authenticate resolves the session if there is one. It never aborts; guards
// below decide what an anonymous request may do.
func Authenticate(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := SessionToken(c)
		if raw == "" {
			c.Next()
			return
		}
		claims, err := auth.ParseToken(raw)
		if err != nil {
			c.Next()
			return
		}
		user, err := auth.CurrentUser(c.Request.Context(), claims)
		if err != nil {
			c.Next()
			return
		}
		c.Set(claimsKey, claims)
		c.Set(userKey, user)
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// RequireLogin sends anonymous requests to the login page.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			utils.AbortWithError(c, http.StatusUnauthorized, "error.not_authenticated",
				"login required", utils.LoginPath)
			return
		}
		c.Next()
	}
}

func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.AbortWithError(c, http.StatusUnauthorized, "error.not_authenticated",
				"login required", utils.LoginPath)
			return
		}
		if !user.IsStaff {
			utils.AbortWithError(c, http.StatusForbidden, "error.forbidden",
				"staff only", "")
			return
		}
		c.Next()
	}
}
