package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: Backend API and verification challenge configuration
//   - database.go: Session/challenge storage and Redis configuration
//   - notify.go: Out-of-band code delivery
//   - observability.go: Logging and metrics configuration
type AppConfig struct {
	// IsDev switches to text logs and, unless STORE_MODE is set, in-memory stores.
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Backend API configuration
	Backend BackendConfig `envPrefix:"BACKEND_"`

	// Verification challenge configuration
	Challenge ChallengeConfig

	// Code delivery configuration
	Notify NotifyConfig `envPrefix:"NOTIFY_"`

	// Storage configuration
	Store StoreConfig `envPrefix:"STORE_"`
	Redis RedisConfig `envPrefix:"REDIS_"`

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	// Check NODE_ENV for dev mode
	c.detectDevMode()
	if c.IsDev && c.Store.Mode == "" {
		c.Store.Mode = StoreModeMemory
	}

	c.Backend.Sanitize()
	c.Challenge.Sanitize()
	c.Notify.Sanitize()
	c.Store.Sanitize()
	c.Redis.Sanitize()
	c.Observability.Sanitize()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// This is called by Sanitize() to ensure IsDev is set correctly.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}

// UsesRedis reports whether any store needs a Redis connection.
func (c *AppConfig) UsesRedis() bool {
	return c.Store.Mode == StoreModeRedis
}
