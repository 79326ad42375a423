package routes

import (
	"github.com/gin-gonic/gin"

	adminController "github.com/junaidrashid-git/storefront-api/controllers/admin"
	cartControllers "github.com/junaidrashid-git/storefront-api/controllers/cart"
	orderControllers "github.com/junaidrashid-git/storefront-api/controllers/order"
	productcontroller "github.com/junaidrashid-git/storefront-api/controllers/product"
	serviceControllers "github.com/junaidrashid-git/storefront-api/controllers/service"
	userControllers "github.com/junaidrashid-git/storefront-api/controllers/user"
	"github.com/junaidrashid-git/storefront-api/middleware"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires API-Key middleware.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(d.AdminAPIKey))
	{
		adminGroup.GET("/dashboard", adminController.GetDashboard(d.DB, d.Log))

		// ─────────── User Management ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(d.DB, d.Log))
		adminGroup.GET("/user-cart/:user_id", cartControllers.GetAdminUserCart(d.DB, d.Log))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(d.DB, d.Log))
			productAdmin.GET("", productcontroller.GetProducts(d.DB, d.Log))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(d.DB, d.Cache, d.Log))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(d.DB, d.Cache, d.Log))
			productAdmin.POST("/:id/images", productcontroller.UploadProductImage(d.DB, d.Uploader, d.Cache, d.Log))
			productAdmin.POST("/import-excel", productcontroller.ImportProductsFromExcel(d.DB, d.Cache, d.Log))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(d.DB, d.Log))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(d.DB, d.Log))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(d.DB, d.Cache, d.Log))
			categoryAdmin.GET("", productcontroller.GetAllCategories(d.DB, d.Log))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(d.DB, d.Cache, d.Log))
		}

		// ─────────── Orders ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(d.DB, d.Log))
			orderAdmin.GET("/ws", d.Hub.ServeWS)
			orderAdmin.GET("/:orderID", orderControllers.GetOrderByIDHandler(d.DB, d.Log))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(d.DB, d.Log))
			orderAdmin.DELETE("/:orderID", orderControllers.DeleteOrderHandler(d.DB, d.Log))
		}

		// ─────────── Service Inquiries ───────────
		serviceAdmin := adminGroup.Group("/services")
		{
			serviceAdmin.GET("", serviceControllers.GetAllServices(d.DB, d.Log))
			serviceAdmin.GET("/export-excel", serviceControllers.ExportServicesToExcel(d.DB, d.Log))
		}
	}
}
