package config

import "time"

// Service identifies which binary is loading configuration. It selects the
// environment variable prefix and the sections that must be present.
type Service string

const (
	// ServiceTrivia is the trivia question API.
	ServiceTrivia Service = "trivia"
	// ServiceCoffee is the coffee-shop drinks API.
	ServiceCoffee Service = "coffee"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url" validate:"required,url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns" validate:"gte=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

// AuthConfig configures bearer token verification for permission-gated routes.
// One of Domain or JWKSURL (RS256 via a JWKS document) or JWTSecret (HS256)
// must be set when the coffee API is loaded.
type AuthConfig struct {
	Domain       string        `mapstructure:"domain" validate:"omitempty,hostname"`
	Audience     string        `mapstructure:"audience"`
	JWTSecret    string        `mapstructure:"jwt_secret" validate:"omitempty,min=32"`
	JWKSURL      string        `mapstructure:"jwks_url" validate:"omitempty,url"`
	JWKSCacheTTL time.Duration `mapstructure:"jwks_cache_ttl"`
}

// Issuer returns the expected "iss" claim for tokens minted by Domain.
// It is empty when Domain is not configured.
func (c AuthConfig) Issuer() string {
	if c.Domain == "" {
		return ""
	}
	return "https://" + c.Domain + "/"
}

// KeySetURL returns the JWKS endpoint, defaulting to the well-known path
// under Domain.
func (c AuthConfig) KeySetURL() string {
	if c.JWKSURL != "" {
		return c.JWKSURL
	}
	if c.Domain == "" {
		return ""
	}
	return "https://" + c.Domain + "/.well-known/jwks.json"
}

// CORSConfig lists the browser origins allowed to call the API.
// An empty list permits same-origin requests only.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitConfig throttles mutating requests per client address.
// When RedisURL is empty an in-process limiter is used.
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests" validate:"gte=0"`
	Window   time.Duration `mapstructure:"window"`
	RedisURL string        `mapstructure:"redis_url" validate:"omitempty,url"`
}
