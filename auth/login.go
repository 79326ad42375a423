package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	cartControllers "github.com/junaidrashid-git/storefront-api/controllers/cart"
	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/junaidrashid-git/storefront-api/session"
)

const (
	mergeNone   = "no-guest-cart"
	mergeDone   = "merged-success"
	mergeFailed = "merge-failed"
)

// completeLogin issues the session cookie and folds any guest cart into
// the user's cart. A failed merge does not fail the login.
func completeLogin(c *gin.Context, db *gorm.DB, issuer *session.Issuer, log *zap.Logger, user *models.User, status int) {
	token, err := issuer.Issue(user.ID, user.Email, user.Name)
	if err != nil {
		log.Error("issue session token", zap.String("user_id", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
		return
	}
	session.SetCookie(c, token, issuer.TTL())

	mergeStatus := mergeNone
	if guestID := session.GuestID(c); guestID != "" {
		if err := cartControllers.MergeGuestCart(db, guestID, user.ID); err != nil {
			log.Warn("merge guest cart on login", zap.String("guest_id", guestID), zap.String("user_id", user.ID), zap.Error(err))
			mergeStatus = mergeFailed
		} else {
			mergeStatus = mergeDone
			session.ClearGuestCookie(c)
		}
	}

	c.JSON(status, gin.H{
		"message":      "Login successful",
		"merge_status": mergeStatus,
		"user":         user,
		"token":        token,
	})
}

// POST /auth/sign-out
func SignOut(c *gin.Context) {
	session.ClearCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}
