// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging level, timeouts). AppConfig is everything specific to Q-Score:
// the Mongo connection, session cookies, Google OAuth credentials, and
// the team's locale.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // How long a signed-in session lasts

	// Google OAuth configuration
	GoogleClientID     string // Google OAuth2 client ID
	GoogleClientSecret string // Google OAuth2 client secret

	// BaseURL is the externally visible origin, used to build the OAuth
	// callback URL (e.g., "https://score.quangoinc.com").
	BaseURL string

	// AllowedDomain gates sign-in to one Google Workspace domain.
	// Blank allows any verified Google account.
	AllowedDomain string

	// Timezone is the team's IANA zone name. Daily-bonus day boundaries
	// and week starts are computed in it.
	Timezone string
}
