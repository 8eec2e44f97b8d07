// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the Novara API.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, razorpay_key_id, etc.
//   - Environment variables: NOVARA_MONGO_URI, NOVARA_RAZORPAY_KEY_ID, etc.
//   - Command-line flags: --mongo_uri, --razorpay_key_id, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "novara", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Signing key for the guest cart cookie (must be strong in production)"},
	{Name: "session_name", Default: "novara-cart", Desc: "Guest cart cookie name"},
	{Name: "session_domain", Default: "", Desc: "Cart cookie domain (blank means current host)"},

	{Name: "token_ttl", Default: "720h", Desc: "Bearer token lifetime (e.g., 720h for 30 days)"},

	// Razorpay payment gateway
	{Name: "razorpay_key_id", Default: "", Desc: "Razorpay key id"},
	{Name: "razorpay_key_secret", Default: "", Desc: "Razorpay key secret"},

	// Google OAuth configuration
	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},

	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for OAuth callbacks"},

	// Admin bootstrap
	{Name: "admin_email", Default: "", Desc: "Email of the admin user (promotes/creates on startup)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, NOVARA_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "NOVARA", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),

		TokenTTL: appValues.Duration("token_ttl", 30*24*time.Hour),

		RazorpayKeyID:     appValues.String("razorpay_key_id"),
		RazorpayKeySecret: appValues.String("razorpay_key_secret"),

		GoogleClientID:     appValues.String("google_client_id"),
		GoogleClientSecret: appValues.String("google_client_secret"),

		BaseURL: appValues.String("base_url"),

		AdminEmail: appValues.String("admin_email"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// The Razorpay credentials are required in prod because gateway checkout
// cannot work without them; in dev they may be blank so the catalog and
// admin features can run standalone.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if coreCfg.Env == "prod" {
		if appCfg.RazorpayKeyID == "" || appCfg.RazorpayKeySecret == "" {
			return fmt.Errorf("razorpay_key_id and razorpay_key_secret are required in prod")
		}
		if appCfg.SessionKey == "" || len(appCfg.SessionKey) < 32 {
			return fmt.Errorf("session_key must be at least 32 characters in prod")
		}
	}

	if appCfg.TokenTTL <= 0 {
		return fmt.Errorf("token_ttl must be positive")
	}

	return nil
}
