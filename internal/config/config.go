// Package config loads the run configuration from the environment (with
// optional .env file) and validates it before anything else starts.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/Dl0057754/Wex-PB-Tool/enrichment"
	"github.com/Dl0057754/Wex-PB-Tool/templates"
	"github.com/Dl0057754/Wex-PB-Tool/websearch"
)

// Config is the full configuration surface of the service.
type Config struct {
	// Server
	Port      string
	UploadDir string

	// Storage
	DatabasePath string

	// Pipeline
	Strategy  enrichment.Strategy
	Template  templates.Kind
	Workers   int
	Threshold int // 0 means use the strategy default

	// Pricing written into output rows
	SupplierName string
	LaborRate    float64
	LaborCost    float64
	Markup       float64

	// AI-assisted strategy
	AIBaseURL string
	AIAPIKey  string
	AIModel   string
	AITimeout time.Duration

	// OEM-lookup strategy
	LookupBrand    string
	LookupDomain   string
	LookupPace     time.Duration
	LookupTimeout  time.Duration
	LookupCacheTTL time.Duration
}

// Load reads configuration from a .env file (when present) and the process
// environment, then validates it.
func Load() (*Config, error) {
	// Missing .env is fine; the environment alone is a complete source.
	_ = godotenv.Load()

	cfg := &Config{
		Port:      getEnv("SERVER_PORT", "8080"),
		UploadDir: getEnv("UPLOAD_DIR", "uploads"),

		DatabasePath: getEnv("DATABASE_PATH", "pricebooks.db"),

		Strategy:  enrichment.Strategy(getEnv("ENRICHMENT_STRATEGY", string(enrichment.StrategyRuleBased))),
		Template:  templates.Kind(getEnv("OUTPUT_TEMPLATE", string(templates.KindBundle))),
		Workers:   getEnvInt("PIPELINE_WORKERS", 4),
		Threshold: getEnvInt("CONFIDENCE_THRESHOLD", 0),

		SupplierName: getEnv("SUPPLIER_NAME", ""),
		LaborRate:    getEnvFloat("LABOR_RATE", templates.DefaultLaborRate),
		LaborCost:    getEnvFloat("LABOR_COST", templates.DefaultLaborCost),
		Markup:       getEnvFloat("PART_MARKUP", templates.DefaultMarkup),

		AIBaseURL: getEnv("AI_BASE_URL", "https://openrouter.ai/api/v1"),
		AIAPIKey:  os.Getenv("AI_API_KEY"),
		AIModel:   getEnv("AI_MODEL", "openai/gpt-4o-mini"),
		AITimeout: getEnvDuration("AI_TIMEOUT", 30*time.Second),

		LookupBrand:    getEnv("LOOKUP_BRAND", "Carrier"),
		LookupDomain:   getEnv("LOOKUP_DOMAIN", "supplyhouse.com"),
		LookupPace:     getEnvDuration("LOOKUP_PACE", 2*time.Second),
		LookupTimeout:  getEnvDuration("LOOKUP_TIMEOUT", 10*time.Second),
		LookupCacheTTL: getEnvDuration("LOOKUP_CACHE_TTL", 24*time.Hour),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks enumerations and numeric ranges.
func (c *Config) Validate() error {
	if _, err := enrichment.ParseStrategy(string(c.Strategy)); err != nil {
		return err
	}
	if _, err := templates.ParseKind(string(c.Template)); err != nil {
		return err
	}
	if c.Threshold < 0 || c.Threshold > 100 {
		return fmt.Errorf("confidence threshold must be in [0, 100], got %d", c.Threshold)
	}
	if c.LaborRate <= 0 {
		return fmt.Errorf("labor rate must be positive, got %v", c.LaborRate)
	}
	if c.LaborCost <= 0 {
		return fmt.Errorf("labor cost must be positive, got %v", c.LaborCost)
	}
	if c.Markup <= 0 {
		return fmt.Errorf("markup must be positive, got %v", c.Markup)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.Strategy == enrichment.StrategyAI && c.AIAPIKey == "" {
		return fmt.Errorf("AI_API_KEY is required for the %s strategy", c.Strategy)
	}
	if c.Strategy == enrichment.StrategyOEM {
		if !websearch.SupportedBrand(c.LookupBrand) {
			return fmt.Errorf("unsupported lookup brand %q", c.LookupBrand)
		}
		if !websearch.SupportedDomain(c.LookupDomain) {
			return fmt.Errorf("unsupported lookup domain %q", c.LookupDomain)
		}
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseFloat(value, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
