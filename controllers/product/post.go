package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/junaidrashid-git/storefront-api/validation"
)

type productInput struct {
	Title       string          `json:"title" binding:"required,max=200"`
	Slug        string          `json:"slug" binding:"max=200"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	OfferPrice  decimal.Decimal `json:"offerPrice"`
	Stock       int             `json:"stock" binding:"min=0"`
	CategoryID  *string         `json:"categoryId"`
}

func validatePrices(base, offer decimal.Decimal) string {
	switch {
	case !base.IsPositive():
		return "basePrice must be greater than 0"
	case !offer.IsPositive():
		return "offerPrice must be greater than 0"
	case offer.GreaterThan(base):
		return "offerPrice cannot exceed basePrice"
	}
	return ""
}

func categoryExists(db *gorm.DB, id *string) (bool, error) {
	if id == nil || *id == "" {
		return true, nil
	}
	var count int64
	err := db.Model(&models.Category{}).Where("id = ?", *id).Count(&count).Error
	return count > 0, err
}

// POST /admin/products
func CreateProduct(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input productInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + validation.Message(err)})
			return
		}
		if msg := validatePrices(input.BasePrice, input.OfferPrice); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + msg})
			return
		}

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

		product := models.Product{
			Slug:        Slugify(input.Slug),
			Title:       strings.TrimSpace(input.Title),
			Description: input.Description,
			BasePrice:   input.BasePrice,
			OfferPrice:  input.OfferPrice,
			Stock:       input.Stock,
			CategoryID:  input.CategoryID,
		}
		if product.Slug == "" {
			product.Slug = Slugify(product.Title)
		}
		if product.Slug == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product slug cannot be empty"})
			return
		}

		if err := db.Create(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "Product slug already exists"})
				return
			}
			log.Error("create product", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
