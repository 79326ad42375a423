package productcontroller

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/cache"
	"github.com/junaidrashid-git/storefront-api/models"
)

// GET /products/:slug
//
// Responses are cached for ttl; admin writes drop the entry.
func GetProductBySlug(db *gorm.DB, store cache.Cache, ttl time.Duration, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		ctx := c.Request.Context()
		key := productCacheKey(store, slug)

		cached, err := store.Get(ctx, key)
		if err != nil {
			log.Warn("read product cache", zap.String("slug", slug), zap.Error(err))
		}
		if cached != "" {
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
			return
		}

		var product models.Product
		err = db.Preload("Images").Preload("Category").Where("slug = ?", slug).First(&product).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if err != nil {
			log.Error("get product", zap.String("slug", slug), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			return
		}

		body, err := json.Marshal(product)
		if err != nil {
			log.Error("encode product", zap.String("slug", slug), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			return
		}
		if err := store.Set(ctx, key, body, ttl); err != nil {
			log.Warn("write product cache", zap.String("slug", slug), zap.Error(err))
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
	}
}
