package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

// Prefix is prepended to every environment variable, e.g. STOREFRONT_PORT.
const Prefix = "STOREFRONT"

type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	Env      string `envconfig:"ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	DatabaseDriver string `envconfig:"DATABASE_DRIVER" default:"postgres"`
	DatabaseURL    string `envconfig:"DATABASE_URL" required:"true"`

	JWTSecret          string        `envconfig:"JWT_SECRET" required:"true"`
	SessionTTL         time.Duration `envconfig:"SESSION_TTL" default:"720h"`
	GuestTTL           time.Duration `envconfig:"GUEST_TTL" default:"720h"`
	GuestPurgeInterval time.Duration `envconfig:"GUEST_PURGE_INTERVAL" default:"6h"`
	AdminAPIKey        string        `envconfig:"ADMIN_API_KEY"`
	CORSOrigins        []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`

	Razorpay RazorpayConfig `envconfig:"RAZORPAY"`
	Storage  StorageConfig  `envconfig:"STORAGE"`
	SendGrid SendGridConfig `envconfig:"SENDGRID"`

	RedisAddr         string        `envconfig:"REDIS_ADDR"`
	CatalogCacheTTL   time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"5m"`
	FirebaseProjectID string        `envconfig:"FIREBASE_PROJECT_ID"`
	// FirebaseCredentialsJSON holds a service account key; when empty the
	// application default credentials are used.
	FirebaseCredentialsJSON string `envconfig:"FIREBASE_CREDENTIALS_JSON"`
}

type RazorpayConfig struct {
	KeyID         string `envconfig:"KEY_ID"`
	Secret        string `envconfig:"SECRET"`
	WebhookSecret string `envconfig:"WEBHOOK_SECRET"`
	BaseURL       string `envconfig:"BASE_URL" default:"https://api.razorpay.com/v1"`
	Currency      string `envconfig:"CURRENCY" default:"INR"`
}

type StorageConfig struct {
	// Driver is "local" or "gcs".
	Driver        string `envconfig:"DRIVER" default:"local"`
	LocalDir      string `envconfig:"LOCAL_DIR" default:"./uploads"`
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" default:"/uploads"`
	GCSBucket     string `envconfig:"GCS_BUCKET"`
}

type SendGridConfig struct {
	APIKey string `envconfig:"API_KEY"`
	From   string `envconfig:"FROM"`
	To     string `envconfig:"TO"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	if cfg.DatabaseDriver != "postgres" && cfg.DatabaseDriver != "sqlite" {
		return nil, errors.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}
	if cfg.GuestPurgeInterval <= 0 {
		return nil, errors.Errorf("STOREFRONT_GUEST_PURGE_INTERVAL must be positive, got %s", cfg.GuestPurgeInterval)
	}
	if cfg.GuestTTL <= 0 || cfg.SessionTTL <= 0 {
		return nil, errors.New("STOREFRONT_GUEST_TTL and STOREFRONT_SESSION_TTL must be positive")
	}
	if cfg.Storage.Driver == "gcs" && cfg.Storage.GCSBucket == "" {
		return nil, errors.New("STOREFRONT_STORAGE_GCS_BUCKET is required for the gcs storage driver")
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
