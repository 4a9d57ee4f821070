package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	DatabaseURL string `env:"DATABASE_URL"`
	TablePrefix string `env:"TABLE_PREFIX"` // derived from Environment when empty
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"http://localhost:3000"`

	// Firebase Authentication
	FirebaseProjectID  string `env:"FIREBASE_PROJECT_ID"`
	FirebaseAPIKey     string `env:"FIREBASE_API_KEY"`
	FirebaseJWKSURL    string `env:"FIREBASE_JWKS_URL" envDefault:"https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"`
	FirebaseIssuer     string `env:"-"` // https://securetoken.google.com/<project>
	IdentityToolkitURL string `env:"IDENTITY_TOOLKIT_URL" envDefault:"https://identitytoolkit.googleapis.com"`

	// Dashboard
	SuperAdminEmail        string `env:"SUPER_ADMIN_EMAIL"`
	DefaultPresentationURL string `env:"DEFAULT_PRESENTATION_URL" envDefault:"https://contentcoach.fr/presentation"`

	// Operations
	RunMigrations        bool          `env:"RUN_MIGRATIONS" envDefault:"true"`
	LogDir               string        `env:"LOG_DIR"`
	LogMaxFiles          int           `env:"LOG_MAX_FILES" envDefault:"10"`
	TokenJanitorInterval time.Duration `env:"TOKEN_JANITOR_INTERVAL" envDefault:"5m"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	S3 S3Config `envPrefix:"S3_"`
}

// S3Config configures logo storage on any S3-compatible endpoint
type S3Config struct {
	Region        string `env:"REGION" envDefault:"us-east-1"`
	Endpoint      string `env:"ENDPOINT"` // empty = AWS
	AccessKey     string `env:"ACCESS_KEY"`
	SecretKey     string `env:"SECRET_KEY"`
	Bucket        string `env:"BUCKET"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL"` // base for public object URLs
}

// Enabled reports whether logo uploads are configured
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// Load reads configuration from the environment. Callers load .env first.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	// An exported but empty ENVIRONMENT bypasses envDefault
	if cfg.Environment == "" {
		cfg.Environment = "dev"
	}
	if cfg.TablePrefix == "" {
		cfg.TablePrefix = getTablePrefix(cfg.Environment)
	}
	if cfg.FirebaseProjectID != "" {
		cfg.FirebaseIssuer = "https://securetoken.google.com/" + cfg.FirebaseProjectID
	}
	cfg.IdentityToolkitURL = strings.TrimRight(cfg.IdentityToolkitURL, "/")

	return cfg, nil
}

// Validate checks the settings the API server cannot start without
func (c *Config) Validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.FirebaseProjectID == "" {
		missing = append(missing, "FIREBASE_PROJECT_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// IsProduction reports whether destructive tooling must be refused
func (c *Config) IsProduction() bool {
	return c.Environment == "prod"
}

// AllowedOrigins splits CORS_ORIGINS
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}
