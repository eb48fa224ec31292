package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Generation GenerationConfig `yaml:"generation"`
	Routing    RoutingConfig    `yaml:"routing"`
	Store      StoreConfig      `yaml:"store"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"` // gin mode: debug, release, test
}

type GenerationConfig struct {
	Provider     string `yaml:"provider"`
	GeminiAPIKey string `yaml:"gemini_api_key"`
	GeminiModel  string `yaml:"gemini_model"`
	OpenAIAPIKey string `yaml:"openai_api_key"`
	OpenAIModel  string `yaml:"openai_model"`
	// Attempts is how many times a reply that fails to parse is regenerated.
	Attempts int `yaml:"attempts"`
}

type RoutingConfig struct {
	APIKey            string        `yaml:"api_key"`
	BaseURL           string        `yaml:"base_url"`
	Timeout           time.Duration `yaml:"timeout"`
	MaxConcurrentDays int           `yaml:"max_concurrent_days"`
	CacheTTL          time.Duration `yaml:"cache_ttl"`
	OptimizeDefault   bool          `yaml:"optimize_default"`
}

type StoreConfig struct {
	ItineraryTTL time.Duration `yaml:"itinerary_ttl"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{Port: "8080", Mode: "release"},
		Generation: GenerationConfig{
			Provider:    "gemini",
			GeminiModel: "gemini-2.5-pro",
			OpenAIModel: "gpt-4o-mini",
			Attempts:    1,
		},
		Routing: RoutingConfig{
			BaseURL:           "https://routes.googleapis.com",
			Timeout:           10 * time.Second,
			MaxConcurrentDays: 4,
			CacheTTL:          6 * time.Hour,
			OptimizeDefault:   true,
		},
		Store: StoreConfig{ItineraryTTL: 24 * time.Hour},
	}
}

// Load reads .env (if present), applies environment variables over the
// defaults and then overlays the YAML file at path when path is non-empty.
func Load(path string) (Config, error) {
	_ = godotenv.Load() // missing .env is fine

	cfg := Default()
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	cfg.Server.Port = getEnvWithDefault("PORT", cfg.Server.Port)
	cfg.Server.Mode = getEnvWithDefault("GIN_MODE", cfg.Server.Mode)

	cfg.Generation.Provider = strings.ToLower(getEnvWithDefault("ITINERARY_PROVIDER", cfg.Generation.Provider))
	cfg.Generation.GeminiAPIKey = getEnvWithDefault("GEMINI_API_KEY", cfg.Generation.GeminiAPIKey)
	cfg.Generation.GeminiModel = getEnvWithDefault("GEMINI_MODEL", cfg.Generation.GeminiModel)
	cfg.Generation.OpenAIAPIKey = getEnvWithDefault("OPENAI_API_KEY", cfg.Generation.OpenAIAPIKey)
	cfg.Generation.OpenAIModel = getEnvWithDefault("OPENAI_MODEL", cfg.Generation.OpenAIModel)

	cfg.Routing.APIKey = getEnvWithDefault("GOOGLE_ROUTES_API_KEY", cfg.Routing.APIKey)
	cfg.Routing.BaseURL = getEnvWithDefault("ROUTES_BASE_URL", cfg.Routing.BaseURL)

	var errs []error
	if v, ok := os.LookupEnv("GENERATION_ATTEMPTS"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		errs = append(errs, envErr("GENERATION_ATTEMPTS", err))
		cfg.Generation.Attempts = n
	}
	if v, ok := os.LookupEnv("ROUTES_MAX_CONCURRENT_DAYS"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		errs = append(errs, envErr("ROUTES_MAX_CONCURRENT_DAYS", err))
		cfg.Routing.MaxConcurrentDays = n
	}
	if v, ok := os.LookupEnv("OPTIMIZE_DEFAULT"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		errs = append(errs, envErr("OPTIMIZE_DEFAULT", err))
		cfg.Routing.OptimizeDefault = b
	}
	errs = append(errs,
		envDuration("ROUTES_TIMEOUT", &cfg.Routing.Timeout),
		envDuration("ROUTE_CACHE_TTL", &cfg.Routing.CacheTTL),
		envDuration("ITINERARY_TTL", &cfg.Store.ItineraryTTL),
	)
	return errors.Join(errs...)
}

func envDuration(key string, dst *time.Duration) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return envErr(key, err)
	}
	*dst = d
	return nil
}

func envErr(key string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("env %s: %w", key, err)
}

// getEnvWithDefault returns environment variable or default value
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("server port is empty"))
	}
	switch c.Generation.Provider {
	case "gemini", "openai":
	default:
		errs = append(errs, fmt.Errorf("unsupported itinerary provider %q", c.Generation.Provider))
	}
	if c.Generation.Attempts < 1 {
		errs = append(errs, errors.New("generation attempts must be at least 1"))
	}
	if c.Routing.Timeout <= 0 {
		errs = append(errs, errors.New("routes timeout must be positive"))
	}
	if c.Routing.MaxConcurrentDays < 1 {
		errs = append(errs, errors.New("routes max concurrent days must be at least 1"))
	}
	if c.Routing.CacheTTL < 0 {
		errs = append(errs, errors.New("route cache ttl must not be negative"))
	}
	if c.Store.ItineraryTTL <= 0 {
		errs = append(errs, errors.New("itinerary ttl must be positive"))
	}

	return errors.Join(errs...)
}

// GenerationKey returns the API key and model for the selected provider.
func (c Config) GenerationKey() (apiKey, model string) {
	if c.Generation.Provider == "openai" {
		return c.Generation.OpenAIAPIKey, c.Generation.OpenAIModel
	}
	return c.Generation.GeminiAPIKey, c.Generation.GeminiModel
}
