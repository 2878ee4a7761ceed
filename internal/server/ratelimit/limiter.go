// Package ratelimit provides per-client request throttling for the HTTP API.
package ratelimit

import (
	"time"
)

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	// Allow reports whether a request from the given key is within budget.
	Allow(key string) bool

	// Reset clears any accumulated state for the given key.
	Reset(key string)
}

// Config holds rate limiting settings.
type Config struct {
	// Enabled controls whether rate limiting is active.
	Enabled bool `yaml:"enabled"`

	// Requests is the maximum number of requests allowed per window.
	Requests int `yaml:"requests"`

	// Window is the duration of the rate limiting window.
	Window time.Duration `yaml:"window"`
}

// DefaultConfig returns the default rate limiting configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:  true,
		Requests: 100,
		Window:   time.Minute,
	}
}

// AuthConfig returns a stricter budget for the register and login endpoints.
func AuthConfig() Config {
	return Config{
		Enabled:  true,
		Requests: 5,
		Window:   time.Minute,
	}
}
