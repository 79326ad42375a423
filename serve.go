package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/junaidrashid-git/storefront-api/auth"
	"github.com/junaidrashid-git/storefront-api/cache"
	orderControllers "github.com/junaidrashid-git/storefront-api/controllers/order"
	"github.com/junaidrashid-git/storefront-api/maintenance"
	"github.com/junaidrashid-git/storefront-api/middleware"
	"github.com/junaidrashid-git/storefront-api/notify"
	"github.com/junaidrashid-git/storefront-api/payment/razorpay"
	"github.com/junaidrashid-git/storefront-api/routes"
	"github.com/junaidrashid-git/storefront-api/session"
	"github.com/junaidrashid-git/storefront-api/storage"
)

const shutdownTimeout = 15 * time.Second

// serveCmd runs the HTTP API until SIGINT or SIGTERM
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	log.Info("✅ Starting application...", zap.String("env", cfg.Env))

	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := gin.New()
	r.MaxMultipartMemory = 32 << 20
	r.Use(ginzap.Ginzap(log, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(log, true))
	r.Use(middleware.NewMetrics(registry).Handler())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY", razorpay.SignatureHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	uploader, closeUploader, err := newUploader(ctx, r)
	if err != nil {
		return err
	}
	defer closeUploader()

	verifier, err := newVerifier(ctx)
	if err != nil {
		return err
	}

	hub := orderControllers.NewHub(cfg.CORSOrigins, log)
	defer hub.Close()

	routes.SetupRoutes(r, routes.Deps{
		DB:              db,
		Log:             log,
		Issuer:          session.NewIssuer(cfg.JWTSecret, cfg.SessionTTL),
		Verifier:        verifier,
		Gateway:         razorpay.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.Secret, cfg.Razorpay.BaseURL, log),
		Uploader:        uploader,
		Cache:           newCache(),
		Notifier:        newNotifier(),
		Hub:             hub,
		GuestTTL:        cfg.GuestTTL,
		CatalogCacheTTL: cfg.CatalogCacheTTL,
		Currency:        cfg.Razorpay.Currency,
		RazorpaySecret:  cfg.Razorpay.Secret,
		WebhookSecret:   cfg.Razorpay.WebhookSecret,
		AdminAPIKey:     cfg.AdminAPIKey,
	})

	go maintenance.RunGuestPurge(ctx, db, cfg.GuestPurgeInterval, log.Named("purge"))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("🚀 Server running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newUploader picks the storage backend. Local files are served by the
// API itself under the public base URL.
func newUploader(ctx context.Context, r *gin.Engine) (storage.Uploader, func(), error) {
	if cfg.Storage.Driver == "gcs" {
		store, err := storage.NewGCSStore(ctx, cfg.Storage.GCSBucket)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	}

	if err := os.MkdirAll(cfg.Storage.LocalDir, 0o755); err != nil {
		return nil, nil, errors.Wrap(err, "create upload directory")
	}
	if strings.HasPrefix(cfg.Storage.PublicBaseURL, "/") {
		r.Static(cfg.Storage.PublicBaseURL, cfg.Storage.LocalDir)
	}
	return storage.NewLocalStore(cfg.Storage.LocalDir, cfg.Storage.PublicBaseURL), func() {}, nil
}

// newVerifier returns nil when Firebase is not configured, which turns
// Google sign-in off.
func newVerifier(ctx context.Context) (auth.IDTokenVerifier, error) {
	if cfg.FirebaseProjectID == "" {
		log.Warn("FIREBASE_PROJECT_ID not set, Google sign-in disabled")
		return nil, nil
	}
	return auth.NewFirebaseVerifier(ctx, cfg.FirebaseProjectID, cfg.FirebaseCredentialsJSON)
}

func newCache() cache.Cache {
	if cfg.RedisAddr == "" {
		return cache.NewMemory("storefront", cache.DefaultMemorySize, cfg.CatalogCacheTTL)
	}
	return cache.NewRedisCache(cfg.RedisAddr, "storefront")
}

func newNotifier() notify.Notifier {
	if cfg.SendGrid.APIKey == "" || cfg.SendGrid.To == "" {
		return notify.Nop{}
	}
	return notify.NewSendGridNotifier(cfg.SendGrid.APIKey, cfg.SendGrid.From, cfg.SendGrid.To, log)
}
