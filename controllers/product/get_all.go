package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

var sortColumns = map[string]string{
	"created_at":  "products.created_at",
	"offer_price": "products.offer_price",
	"title":       "products.title",
}

// GET /products
func GetProducts(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := strings.TrimSpace(c.Query("search"))
		category := c.Query("category")
		sortBy := c.DefaultQuery("sort_by", "created_at")
		sortOrder := strings.ToLower(c.DefaultQuery("order", "desc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}

		column, ok := sortColumns[sortBy]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sort_by"})
			return
		}

		page, err := positiveInt(c.DefaultQuery("page", "1"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page"})
			return
		}
		limit, err := positiveInt(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		if limit > maxPageSize {
			limit = maxPageSize
		}

		query := db.Model(&models.Product{})

		if search != "" {
			like := "%" + strings.ToLower(search) + "%"
			query = query.Where("LOWER(products.title) LIKE ? OR LOWER(products.description) LIKE ?", like, like)
		}

		if v := c.Query("min_price"); v != "" {
			mp, err := decimal.NewFromString(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid min_price"})
				return
			}
			query = query.Where("products.offer_price >= ?", mp)
		}
		if v := c.Query("max_price"); v != "" {
			mp, err := decimal.NewFromString(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid max_price"})
				return
			}
			query = query.Where("products.offer_price <= ?", mp)
		}

		if category != "" {
			query = query.
				Joins("JOIN categories ON categories.id = products.category_id").
				Where("categories.slug = ?", category)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			log.Error("count products", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		var products []models.Product
		err = query.
			Preload("Images").
			Preload("Category").
			Order(column + " " + sortOrder).
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&products).Error
		if err != nil {
			log.Error("list products", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products": products,
			"total":    total,
			"page":     page,
			"limit":    limit,
		})
	}
}

func positiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
