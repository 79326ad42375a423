package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/junaidrashid-git/storefront-api/controllers/cart"
	fastenerControllers "github.com/junaidrashid-git/storefront-api/controllers/fastener"
	productcontroller "github.com/junaidrashid-git/storefront-api/controllers/product"
	"github.com/junaidrashid-git/storefront-api/middleware"
)

// SetupStoreRoutes registers the public catalog and the cart, which serves
// guests and signed-in users alike.
func SetupStoreRoutes(r *gin.Engine, d Deps) {
	r.GET("/products", productcontroller.GetProducts(d.DB, d.Log))
	r.GET("/products/:slug", productcontroller.GetProductBySlug(d.DB, d.Cache, d.CatalogCacheTTL, d.Log))
	r.GET("/categories", productcontroller.GetAllCategories(d.DB, d.Log))

	fasteners := r.Group("/fasteners")
	{
		fasteners.GET("", fastenerControllers.GetFasteners)
		fasteners.GET("/:type", fastenerControllers.GetFastener)
		fasteners.POST("/:type/quote", fastenerControllers.QuoteFastener(d.Log))
	}

	cart := r.Group("/cart")
	cart.Use(middleware.Session(d.Issuer))
	{
		cart.GET("", cartControllers.GetCart(d.DB, d.Log))
		cart.POST("", cartControllers.AddItem(d.DB, d.GuestTTL, d.Log))
		cart.PATCH("", cartControllers.UpdateItem(d.DB, d.Log))
		cart.DELETE("", cartControllers.DeleteItem(d.DB, d.Log))
	}
}
