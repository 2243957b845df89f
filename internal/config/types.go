package config

import "time"

type Config struct {
	Environment string
	Port        string
	FrontendURL string

	Generator GeneratorConfig
	License   LicenseConfig
	Session   SessionConfig

	// ulule/limiter formatted rate, e.g. "10-M"
	GenerateRateLimit string
}

// text generation provider settings
type GeneratorConfig struct {
	Provider    string // "gemini", "anthropic" or "openai"
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float32
}

// Lemon Squeezy settings
type LicenseConfig struct {
	APIKey      string
	ProductID   string
	StoreID     string
	CheckoutURL string
}

type SessionConfig struct {
	Secret   string
	Store    string // "memory" or "redis"
	RedisURL string
	TTL      time.Duration
}

// options for the preview command
type Flags struct {
	Path        string
	Unlocked    bool
	Width       int
	CheckoutURL string
	Style       string
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
