package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"

	StoreMemory = "memory"
	StoreRedis  = "redis"

	defaultPort              = "8080"
	defaultGeneratorMaxToken = 8192
	defaultTemperature       = 0.7
	maxTemperature           = 2
	defaultSessionTTL        = 24 * time.Hour
	defaultGenerateRateLimit = "10-M"
	DefaultCheckoutURL       = "https://theatlas.lemonsqueezy.com/buy/02e6f077-25c7-4d31-81d6-258588ff2ca4"
)

// default model per generation provider
var defaultModels = map[string]string{
	ProviderGemini:    "gemini-1.5-flash",
	ProviderAnthropic: "claude-sonnet-4-20250514",
	ProviderOpenAI:    "gpt-4o",
}

// env var holding the credential of each generation provider
var providerKeyVars = map[string]string{
	ProviderGemini:    "GEMINI_API_KEY",
	ProviderAnthropic: "ANTHROPIC_API_KEY",
	ProviderOpenAI:    "OPENAI_API_KEY",
}

// loads configuration from .env (when present) and the environment
func LoadEnvironmentVariables() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err // not an error - production environments may not have .env file
	}

	return Load(os.Getenv)
}

// builds the configuration from a lookup function.
// every missing required value is reported in a single error.
func Load(getenv func(string) string) (*Config, error) {
	var missing []string

	require := func(key string) string {
		val := strings.TrimSpace(getenv(key))
		if val == "" {
			missing = append(missing, key)
		}
		return val
	}

	provider := strings.ToLower(getenv("GENERATOR_PROVIDER"))
	if provider == "" {
		provider = ProviderGemini
	}

	keyVar, ok := providerKeyVars[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported GENERATOR_PROVIDER: %s", provider)
	}

	cfg := &Config{
		Environment:       valueOr(getenv("ENVIRONMENT"), "development"),
		Port:              valueOr(getenv("PORT"), defaultPort),
		FrontendURL:       getenv("FRONTEND_URL"),
		GenerateRateLimit: valueOr(getenv("GENERATE_RATE_LIMIT"), defaultGenerateRateLimit),
		Generator: GeneratorConfig{
			Provider:    provider,
			APIKey:      require(keyVar),
			Model:       valueOr(getenv("GENERATOR_MODEL"), defaultModels[provider]),
			MaxTokens:   defaultGeneratorMaxToken,
			Temperature: defaultTemperature,
		},
		License: LicenseConfig{
			APIKey:      require("LEMONSQUEEZY_API_KEY"),
			ProductID:   require("LEMONSQUEEZY_PRODUCT_ID"),
			StoreID:     require("LEMONSQUEEZY_STORE_ID"),
			CheckoutURL: valueOr(getenv("CHECKOUT_URL"), DefaultCheckoutURL),
		},
		Session: SessionConfig{
			Secret:   getenv("SESSION_SECRET"),
			Store:    strings.ToLower(valueOr(getenv("SESSION_STORE"), StoreMemory)),
			RedisURL: getenv("REDIS_URL"),
			TTL:      defaultSessionTTL,
		},
	}

	// optional parameters; a value that is set but unusable is an error
	var invalid []string

	if s := getenv("GENERATOR_MAX_TOKENS"); s != "" {
		if val, err := strconv.Atoi(s); err == nil && val > 0 {
			cfg.Generator.MaxTokens = val
		} else {
			invalid = append(invalid, fmt.Sprintf("GENERATOR_MAX_TOKENS=%q (positive integer)", s))
		}
	}

	if s := getenv("GENERATOR_TEMPERATURE"); s != "" {
		if val, err := strconv.ParseFloat(s, 32); err == nil && val >= 0 && val <= maxTemperature {
			cfg.Generator.Temperature = float32(val)
		} else {
			invalid = append(invalid, fmt.Sprintf("GENERATOR_TEMPERATURE=%q (number between 0 and 2)", s))
		}
	}

	if s := getenv("SESSION_TTL"); s != "" {
		if val, err := time.ParseDuration(s); err == nil && val > 0 {
			cfg.Session.TTL = val
		} else {
			invalid = append(invalid, fmt.Sprintf("SESSION_TTL=%q (positive duration, e.g. 24h)", s))
		}
	}

	var problems []string
	if len(missing) > 0 {
		problems = append(problems, "missing required environment variables: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		problems = append(problems, "invalid environment variables: "+strings.Join(invalid, ", "))
	}
	if len(problems) > 0 {
		return nil, errors.New(strings.Join(problems, "; "))
	}

	switch cfg.Session.Store {
	case StoreMemory:
	case StoreRedis:
		if cfg.Session.RedisURL == "" {
			return nil, fmt.Errorf("REDIS_URL environment variable is required when SESSION_STORE=redis")
		}
	default:
		return nil, fmt.Errorf("unsupported SESSION_STORE: %s", cfg.Session.Store)
	}

	return cfg, nil
}

func valueOr(val, fallback string) string {
	if val == "" {
		return fallback
	}
	return val
}
