package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/junaidrashid-git/storefront-api/session"
)

const (
	userIDKey = "user_id"
	emailKey  = "email"
)

// Session resolves the caller from a Bearer token or the session cookie.
// Requests without a valid session pass through anonymously.
func Session(issuer *session.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			if cookie, err := c.Cookie(session.CookieName); err == nil {
				tokenString = cookie
			}
		}

		if tokenString != "" {
			if claims, err := issuer.Parse(tokenString); err == nil {
				c.Set(userIDKey, claims.UserID)
				c.Set(emailKey, claims.Email)
			}
		}
		c.Next()
	}
}

// RequireUser aborts with 401 unless Session resolved a user.
func RequireUser(c *gin.Context) {
	if _, ok := UserID(c); !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	c.Next()
}

func UserID(c *gin.Context) (string, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return "", false
	}
	id, _ := v.(string)
	return id, id != ""
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
