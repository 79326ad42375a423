package auth

import (
	"context"
	"net/http"
	"strings"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/models"
	"github.com/junaidrashid-git/storefront-api/session"
	"github.com/junaidrashid-git/storefront-api/validation"
)

const ProviderGoogle = "google"

// GoogleIdentity is what a verified Google ID token tells us about the user.
type GoogleIdentity struct {
	UID     string
	Email   string
	Name    string
	Picture string
}

type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*GoogleIdentity, error)
}

// FirebaseVerifier checks ID tokens issued by Firebase Authentication.
type FirebaseVerifier struct {
	client    *firebaseauth.Client
	projectID string
}

// NewFirebaseVerifier uses credentialsJSON when given, otherwise the
// application default credentials.
func NewFirebaseVerifier(ctx context.Context, projectID, credentialsJSON string) (*FirebaseVerifier, error) {
	var opts []option.ClientOption
	if credentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "init firebase app")
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "init firebase auth")
	}
	return &FirebaseVerifier{client: client, projectID: projectID}, nil
}

func (v *FirebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*GoogleIdentity, error) {
	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return nil, errors.Wrap(err, "verify id token")
	}
	if token.Audience != v.projectID {
		return nil, errors.Errorf("token audience %q does not match project", token.Audience)
	}

	claim := func(key string) string {
		s, _ := token.Claims[key].(string)
		return strings.TrimSpace(s)
	}
	return &GoogleIdentity{
		UID:     token.UID,
		Email:   claim("email"),
		Name:    claim("name"),
		Picture: claim("picture"),
	}, nil
}

type googleInput struct {
	IDToken string `json:"idToken" binding:"required"`
}

// POST /auth/google
//
// verifier may be nil, in which case Google sign-in answers 503.
func Google(db *gorm.DB, issuer *session.Issuer, verifier IDTokenVerifier, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Google sign-in is not configured"})
			return
		}

		var input googleInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + validation.Message(err)})
			return
		}

		identity, err := verifier.VerifyIDToken(c.Request.Context(), input.IDToken)
		if err != nil {
			log.Info("google id token rejected", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or revoked ID token"})
			return
		}
		if identity.Email == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Google account has no email address"})
			return
		}

		user, err := upsertGoogleUser(db, identity)
		if err != nil {
			log.Error("upsert google user", zap.String("email", identity.Email), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
			return
		}

		completeLogin(c, db, issuer, log, user, http.StatusOK)
	}
}

// upsertGoogleUser links the Google identity to an existing account by
// email, refreshing its name and picture, or creates a new one.
func upsertGoogleUser(db *gorm.DB, identity *GoogleIdentity) (*models.User, error) {
	email := normalizeEmail(identity.Email)

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Name:     identity.Name,
			Email:    email,
			Provider: ProviderGoogle,
			Picture:  identity.Picture,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, errors.Wrap(err, "create user")
		}
		return &user, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "find user")
	}

	updates := map[string]interface{}{}
	if identity.Name != "" {
		updates["name"] = identity.Name
	}
	if identity.Picture != "" {
		updates["picture"] = identity.Picture
	}
	if len(updates) > 0 {
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return nil, errors.Wrap(err, "update user profile")
		}
	}
	return &user, nil
}
