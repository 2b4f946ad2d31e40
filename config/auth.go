package config

import (
	"fmt"
	"strings"
	"time"
)

// CodeSource selects the random source for verification codes.
type CodeSource string

const (
	// CodeSourceCrypto draws codes from crypto/rand.
	CodeSourceCrypto CodeSource = "crypto"
	// CodeSourceMath draws codes from math/rand/v2 (not suitable when codes guard anything valuable).
	CodeSourceMath CodeSource = "math"
)

// UnmarshalText implements encoding.TextUnmarshaler for CodeSource.
func (s *CodeSource) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "crypto", "math":
		*s = CodeSource(v)
		return nil
	default:
		return fmt.Errorf("invalid CodeSource: %q (valid options: crypto, math)", v)
	}
}

// BackendConfig describes how to reach the platform API.
type BackendConfig struct {
	// BaseURL is the absolute http(s) URL of the platform API.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8081"`

	// Timeout bounds every backend request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
}

// Sanitize applies guardrails to backend configuration values.
func (c *BackendConfig) Sanitize() {
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
}

// ChallengeConfig controls one-time verification codes.
type ChallengeConfig struct {
	// TTL is how long an issued code stays valid.
	TTL time.Duration `env:"CHALLENGE_TTL" envDefault:"10m"`

	// CodeSource picks the random source for codes.
	CodeSource CodeSource `env:"CHALLENGE_CODE_SOURCE" envDefault:"crypto"`

	// ResetPasswordDelay is the latency ResetPassword waits before reporting success.
	ResetPasswordDelay time.Duration `env:"RESET_PASSWORD_DELAY" envDefault:"1s"`
}

// Sanitize applies guardrails to challenge configuration values.
func (c *ChallengeConfig) Sanitize() {
	if c.TTL <= 0 {
		c.TTL = 10 * time.Minute
	}
	if c.CodeSource == "" {
		c.CodeSource = CodeSourceCrypto
	}
	if c.ResetPasswordDelay < 0 {
		c.ResetPasswordDelay = 0
	}
}
