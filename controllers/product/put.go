package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/cache"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/junaidrashid-git/storefront-api/validation"
)

type productUpdateInput struct {
	Title       *string          `json:"title" binding:"omitempty,max=200"`
	Slug        *string          `json:"slug" binding:"omitempty,max=200"`
	Description *string          `json:"description"`
	BasePrice   *decimal.Decimal `json:"basePrice"`
	OfferPrice  *decimal.Decimal `json:"offerPrice"`
	Stock       *int             `json:"stock" binding:"omitempty,min=0"`
	CategoryID  *string          `json:"categoryId"`
}

// PUT /admin/products/:id
//
// Only the fields present in the body change.
func UpdateProduct(db *gorm.DB, store cache.Cache, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		oldSlug := product.Slug

		var input productUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + validation.Message(err)})
			return
		}

		if input.Title != nil {
			product.Title = strings.TrimSpace(*input.Title)
		}
		if input.Slug != nil {
			slug := Slugify(*input.Slug)
			if slug == "" {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Product slug cannot be empty"})
				return
			}
			product.Slug = slug
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.BasePrice != nil {
			product.BasePrice = *input.BasePrice
		}
		if input.OfferPrice != nil {
			product.OfferPrice = *input.OfferPrice
		}
		if input.Stock != nil {
			product.Stock = *input.Stock
		}
		if input.CategoryID != nil {
			if *input.CategoryID == "" {
				product.CategoryID = nil
			} else {
				ok, err := categoryExists(db, input.CategoryID)
				if err != nil {
					log.Error("look up category", zap.Error(err))
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
					return
				}
				if !ok {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
					return
				}
				product.CategoryID = input.CategoryID
			}
		}
		if msg := validatePrices(product.BasePrice, product.OfferPrice); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + msg})
			return
		}

		if err := db.Save(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "Product slug already exists"})
				return
			}
			log.Error("update product", zap.String("product_id", product.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		InvalidateProducts(c.Request.Context(), store, log, oldSlug, product.Slug)
		c.JSON(http.StatusOK, product)
	}
}
