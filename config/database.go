package config

import (
	"fmt"
	"strings"
	"time"
)

// StoreMode selects where sessions and challenges live.
type StoreMode string

const (
	// StoreModeRedis keeps the session and challenges in Redis.
	StoreModeRedis StoreMode = "redis"
	// StoreModeMemory keeps everything in process (lost on exit).
	StoreModeMemory StoreMode = "memory"
)

// UnmarshalText implements encoding.TextUnmarshaler for StoreMode.
func (m *StoreMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "redis", "memory":
		*m = StoreMode(v)
		return nil
	default:
		return fmt.Errorf("invalid StoreMode: %q (valid options: redis, memory)", v)
	}
}

// StoreConfig contains session and challenge storage configuration.
// An unset Mode defaults to redis, or to memory in development mode.
// Challenges go to a separate Redis database so a flush of one never touches the other.
type StoreConfig struct {
	Mode            StoreMode `env:"MODE"`
	DurableDB       int       `env:"DURABLE_DB"       envDefault:"0"`
	DurablePrefix   string    `env:"DURABLE_PREFIX"   envDefault:"ecoauth:session:"`
	EphemeralDB     int       `env:"EPHEMERAL_DB"     envDefault:"1"`
	EphemeralPrefix string    `env:"EPHEMERAL_PREFIX" envDefault:"ecoauth:challenge:"`
}

// Sanitize applies guardrails to storage configuration values.
func (c *StoreConfig) Sanitize() {
	if c.Mode == "" {
		c.Mode = StoreModeRedis
	}
	if c.DurableDB < 0 {
		c.DurableDB = 0
	}
	if c.EphemeralDB < 0 {
		c.EphemeralDB = 0
	}
	c.DurablePrefix = strings.TrimSpace(c.DurablePrefix)
	c.EphemeralPrefix = strings.TrimSpace(c.EphemeralPrefix)
}

// SharesKeyspace reports whether both stores write to the same Redis database
// without distinct prefixes, in which case clearing challenges could match session keys.
func (c *StoreConfig) SharesKeyspace() bool {
	return c.DurableDB == c.EphemeralDB && c.DurablePrefix == c.EphemeralPrefix
}

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`

	// ConnectRetries is how many extra ping attempts are made before giving up.
	ConnectRetries int `env:"CONNECT_RETRIES" envDefault:"3"`
	// ConnectTimeout bounds each ping attempt.
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"5s"`
}

// Sanitize applies guardrails to Redis configuration values.
func (c *RedisConfig) Sanitize() {
	c.URI = strings.TrimSpace(c.URI)
	if c.ConnectRetries < 0 {
		c.ConnectRetries = 0
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 5 * time.Second
	}
}
