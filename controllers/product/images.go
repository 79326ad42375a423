package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/cache"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/junaidrashid-git/storefront-api/storage"
)

const maxImageSize = 10 << 20

var imageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// POST /admin/products/:id/images
//
// Multipart form: "image" file and an optional "color" the image shows.
func UploadProductImage(db *gorm.DB, uploader storage.Uploader, store cache.Cache, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		fh, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image is required"})
			return
		}
		contentType := fh.Header.Get("Content-Type")
		if !imageTypes[contentType] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image must be JPEG, PNG, WebP or GIF"})
			return
		}
		if fh.Size > maxImageSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image exceeds 10MB limit"})
			return
		}

		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read image"})
			return
		}
		defer f.Close()

		obj, err := uploader.Upload(c.Request.Context(), "products", fh.Filename, contentType, f)
		if err != nil {
			log.Error("upload product image", zap.String("product_id", product.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
			return
		}

		image := models.ProductImage{ProductID: product.ID, URL: obj.URL, PublicID: obj.PublicID}
		if color := strings.TrimSpace(c.PostForm("color")); color != "" {
			image.Color = &color
		}
		if err := db.Create(&image).Error; err != nil {
			log.Error("create product image", zap.String("product_id", product.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
			return
		}

		InvalidateProducts(c.Request.Context(), store, log, product.Slug)
		c.JSON(http.StatusCreated, image)
	}
}
