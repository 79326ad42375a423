package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/cache"
	"github.com/junaidrashid-git/storefront-api/models"
)

// DELETE /admin/products/:id
//
// Products are soft-deleted so past orders and carts keep their reference.
func DeleteProduct(db *gorm.DB, store cache.Cache, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		if err := db.Delete(&product).Error; err != nil {
			log.Error("delete product", zap.String("product_id", product.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}

		InvalidateProducts(c.Request.Context(), store, log, product.Slug)
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
