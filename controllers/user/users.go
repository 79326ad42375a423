package userControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/junaidrashid-git/storefront-api/validation"
)

type UpdateUserInput struct {
	Name    *string `json:"name" binding:"omitempty,min=1,max=100"`
	Picture *string `json:"picture" binding:"omitempty,url"`
}

// GET /user
func GetUser(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		var user models.User
		err := db.First(&user, "id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		if err != nil {
			log.Error("get user", zap.String("user_id", userID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// GET /admin/users
func GetAllUsers(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Select("id", "email", "name", "picture", "provider", "created_at", "updated_at").
			Order("created_at desc")
		if q := strings.ToLower(strings.TrimSpace(c.Query("search"))); q != "" {
			like := "%" + q + "%"
			query = query.Where("LOWER(email) LIKE ? OR LOWER(name) LIKE ?", like, like)
		}

		var users []models.User
		if err := query.Find(&users).Error; err != nil {
			log.Error("list users", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// PUT /user
func UpdateUser(db *gorm.DB, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + validation.Message(err)})
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = strings.TrimSpace(*input.Name)
		}
		if input.Picture != nil {
			updates["picture"] = *input.Picture
		}

		if len(updates) > 0 {
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				log.Error("update user", zap.String("user_id", userID), zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
				return
			}
		}

		c.JSON(http.StatusOK, user)
	}
}
