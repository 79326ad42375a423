package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/junaidrashid-git/storefront-api/auth"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, d Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/sign-up", auth.SignUp(d.DB, d.Issuer, d.Log))
		authGroup.POST("/sign-in", auth.SignIn(d.DB, d.Issuer, d.Log))
		authGroup.POST("/google", auth.Google(d.DB, d.Issuer, d.Verifier, d.Log))
		authGroup.POST("/sign-out", auth.SignOut)
	}
}
