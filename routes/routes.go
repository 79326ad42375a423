package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/junaidrashid-git/storefront-api/auth"
	"github.com/junaidrashid-git/storefront-api/cache"
	orderControllers "github.com/junaidrashid-git/storefront-api/controllers/order"
	"github.com/junaidrashid-git/storefront-api/notify"
	"github.com/junaidrashid-git/storefront-api/payment/razorpay"
	"github.com/junaidrashid-git/storefront-api/session"
	"github.com/junaidrashid-git/storefront-api/storage"
)

// Deps carries everything the handlers are built from.
type Deps struct {
	DB       *gorm.DB
	Log      *zap.Logger
	Issuer   *session.Issuer
	Verifier auth.IDTokenVerifier
	Gateway  razorpay.Gateway
	Uploader storage.Uploader
	Cache    cache.Cache
	Notifier notify.Notifier
	Hub      *orderControllers.Hub

	GuestTTL        time.Duration
	CatalogCacheTTL time.Duration
	Currency        string
	RazorpaySecret  string
	WebhookSecret   string
	AdminAPIKey     string
}

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, d Deps) {
	SetupAuthRoutes(r, d)
	SetupStoreRoutes(r, d)
	SetupUserRoutes(r, d)
	SetupPaymentRoutes(r, d)
	SetupAdminRoutes(r, d)
}
