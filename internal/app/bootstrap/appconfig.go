// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, logging); AppConfig is everything
// specific to the Novara storefront API: the Mongo connection, the Razorpay
// credentials, token/cookie secrets, and the Google sign-in client.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Guest cart cookie configuration
	SessionKey    string // Secret key for signing the cart cookie
	SessionName   string // Cookie name (default: novara-cart)
	SessionDomain string // Cookie domain (blank means current host)

	// Bearer token lifetime for signed-in API clients
	TokenTTL time.Duration

	// Razorpay payment gateway credentials
	RazorpayKeyID     string
	RazorpayKeySecret string

	// Google OAuth configuration
	GoogleClientID     string
	GoogleClientSecret string

	// Base URL for OAuth callbacks and links in responses
	BaseURL string

	// Admin bootstrap: email promoted to admin on startup if present
	AdminEmail string
}
