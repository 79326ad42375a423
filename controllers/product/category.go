package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/cache"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/junaidrashid-git/storefront-api/validation"
)

type categoryInput struct {
	Name string `json:"name" binding:"required,max=100"`
	Slug string `json:"slug" binding:"max=100"`
}

// GET /categories
func GetAllCategories(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Order("name asc").Find(&categories).Error; err != nil {
			log.Error("list categories", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// POST /admin/categories
func CreateCategory(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input categoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + validation.Message(err)})
			return
		}

		category := models.Category{Name: strings.TrimSpace(input.Name), Slug: Slugify(input.Slug)}
		if category.Slug == "" {
			category.Slug = Slugify(category.Name)
		}
		if category.Slug == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category slug cannot be empty"})
			return
		}

		if err := db.Create(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "Category slug already exists"})
				return
			}
			log.Error("create category", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

// categoryProductSlugs lists the products whose cached pages embed the category.
func categoryProductSlugs(db *gorm.DB, categoryID string) ([]string, error) {
	var slugs []string
	err := db.Model(&models.Product{}).Where("category_id = ?", categoryID).Pluck("slug", &slugs).Error
	return slugs, errors.Wrapf(err, "list products of category %s", categoryID)
}

// PUT /admin/categories/:id
func UpdateCategory(db *gorm.DB, store cache.Cache, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}

		var input categoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + validation.Message(err)})
			return
		}
		category.Name = strings.TrimSpace(input.Name)
		if slug := Slugify(input.Slug); slug != "" {
			category.Slug = slug
		}

		if err := db.Save(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "Category slug already exists"})
				return
			}
			log.Error("update category", zap.String("category_id", category.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
			return
		}

		slugs, err := categoryProductSlugs(db, category.ID)
		if err != nil {
			log.Warn("category cache invalidation", zap.Error(err))
		}
		InvalidateProducts(c.Request.Context(), store, log, slugs...)
		c.JSON(http.StatusOK, category)
	}
}

// DELETE /admin/categories/:id
//
// Products in the category are kept and become uncategorised.
func DeleteCategory(db *gorm.DB, store cache.Cache, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}

		var slugs []string
		err := db.Transaction(func(tx *gorm.DB) error {
			var err error
			if slugs, err = categoryProductSlugs(tx, category.ID); err != nil {
				return err
			}
			if err := tx.Model(&models.Product{}).Where("category_id = ?", category.ID).
				Update("category_id", nil).Error; err != nil {
				return err
			}
			return tx.Delete(&category).Error
		})
		if err != nil {
			log.Error("delete category", zap.String("category_id", category.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
			return
		}
		InvalidateProducts(c.Request.Context(), store, log, slugs...)
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}
