package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/junaidrashid-git/storefront-api/controllers/order"
	serviceControllers "github.com/junaidrashid-git/storefront-api/controllers/service"
	userControllers "github.com/junaidrashid-git/storefront-api/controllers/user"
	"github.com/junaidrashid-git/storefront-api/middleware"
)

// SetupUserRoutes registers the endpoints that need a signed-in user.
func SetupUserRoutes(r *gin.Engine, d Deps) {
	userGroup := r.Group("")
	userGroup.Use(middleware.Session(d.Issuer), middleware.RequireUser)
	{
		// ──────────────── Profile ────────────────
		userGroup.GET("/user", userControllers.GetUser(d.DB, d.Log))
		userGroup.PUT("/user", userControllers.UpdateUser(d.DB, d.Log))

		// ──────────────── Checkout & Orders ────────────────
		userGroup.POST("/checkout", orderControllers.Checkout(d.DB, d.Gateway, d.Currency, d.Log))
		userGroup.GET("/orders", orderControllers.GetUserOrdersHandler(d.DB, d.Log))
		userGroup.GET("/orders/:orderID", orderControllers.GetUserOrderHandler(d.DB, d.Log))

		// ──────────────── Service Inquiries ────────────────
		userGroup.GET("/service", serviceControllers.GetUserServices(d.DB, d.Log))
		userGroup.POST("/service", serviceControllers.SubmitManufacturing(d.DB, d.Notifier, d.Log))
		userGroup.POST("/service/wiring-harness", serviceControllers.SubmitWiringHarness(d.DB, d.Notifier, d.Log))
		userGroup.POST("/service/battery-inquiry", serviceControllers.SubmitBatteryInquiry(d.DB, d.Notifier, d.Log))
		userGroup.POST("/service/upload", serviceControllers.UploadFile(d.Uploader, d.Log))
	}
}
