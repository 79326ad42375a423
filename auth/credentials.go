package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/junaidrashid-git/storefront-api/session"
	"github.com/junaidrashid-git/storefront-api/validation"
)

const ProviderCredentials = "credentials"

type signUpInput struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type signInInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// POST /auth/sign-up
func SignUp(db *gorm.DB, issuer *session.Issuer, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input signUpInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + validation.Message(err)})
			return
		}
		email := normalizeEmail(input.Email)

		var existing int64
		if err := db.Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
			log.Error("check existing user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if existing > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("hash password", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		user := models.User{
			Name:         strings.TrimSpace(input.Name),
			Email:        email,
			PasswordHash: string(hash),
			Provider:     ProviderCredentials,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Error("create user", zap.String("email", email), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		completeLogin(c, db, issuer, log, &user, http.StatusCreated)
	}
}

// POST /auth/sign-in
func SignIn(db *gorm.DB, issuer *session.Issuer, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input signInInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + validation.Message(err)})
			return
		}

		var user models.User
		err := db.Where("email = ?", normalizeEmail(input.Email)).First(&user).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Error("find user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}
		if err != nil || user.PasswordHash == "" ||
			bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}

		completeLogin(c, db, issuer, log, &user, http.StatusOK)
	}
}
