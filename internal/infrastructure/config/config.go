// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg, err := config.LoadOrEnv_WithPath("config.yaml")
//	dir := cfg.Catalog.ProductsDir
//	budget := cfg.Allocation.TotalBudget
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Default values applied to anything left unset.
const (
	DefaultProductsDir = "data/products"
	DefaultTotalBudget = 45000.0
	DefaultTouristPct  = 60.0
	DefaultIndustryPct = 40.0
	DefaultSoftCapPct  = 10.0
	DefaultPort        = 8080
)

// Config represents the entire application configuration
type Config struct {
	Catalog       CatalogConfig       `yaml:"catalog"`
	Allocation    AllocationConfig    `yaml:"allocation"`
	API           APIConfig           `yaml:"api"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// CatalogConfig holds where product data lives
type CatalogConfig struct {
	ProductsDir string `yaml:"products_dir"`
	AwardsPath  string `yaml:"awards_path"`
}

// AllocationConfig holds default budget settings for proposals
type AllocationConfig struct {
	TotalBudget  float64  `yaml:"total_budget"`
	TouristPct   *float64 `yaml:"tourist_pct"`
	IndustryPct  *float64 `yaml:"industry_pct"`
	SoftCapPct   *float64 `yaml:"soft_cap_pct"`
	IsAdvertiser bool     `yaml:"is_advertiser"`
}

// Tourist returns the tourist share in percent.
func (a AllocationConfig) Tourist() float64 { return valueOr(a.TouristPct, DefaultTouristPct) }

// Industry returns the industry share in percent.
func (a AllocationConfig) Industry() float64 { return valueOr(a.IndustryPct, DefaultIndustryPct) }

// SoftCap returns the soft cap allowance in percent.
func (a AllocationConfig) SoftCap() float64 { return valueOr(a.SoftCapPct, DefaultSoftCapPct) }

// Advertiser returns override when a request sets it, else IsAdvertiser.
func (a AllocationConfig) Advertiser(override *bool) bool {
	if override != nil {
		return *override
	}
	return a.IsAdvertiser
}

func valueOr(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

// APIConfig holds HTTP server settings
type APIConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${ATEEMA_PRODUCTS_DIR})
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// envSpec is the flat environment variable layout. envconfig prefixes
// nested struct keys, so the variables are listed here and copied into
// Config.
type envSpec struct {
	ProductsDir    string   `envconfig:"ATEEMA_PRODUCTS_DIR" default:"data/products"`
	AwardsPath     string   `envconfig:"ATEEMA_AWARDS_PATH"`
	TotalBudget    float64  `envconfig:"ATEEMA_TOTAL_BUDGET" default:"45000"`
	TouristPct     float64  `envconfig:"ATEEMA_TOURIST_PCT" default:"60"`
	IndustryPct    float64  `envconfig:"ATEEMA_INDUSTRY_PCT" default:"40"`
	SoftCapPct     float64  `envconfig:"ATEEMA_SOFT_CAP_PCT" default:"10"`
	IsAdvertiser   bool     `envconfig:"ATEEMA_IS_ADVERTISER" default:"false"`
	Port           int      `envconfig:"ATEEMA_PORT" default:"8080"`
	AllowedOrigins []string `envconfig:"ATEEMA_ALLOWED_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	LogLevel       string   `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat      string   `envconfig:"LOG_FORMAT" default:"maven"`
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() (*Config, error) {
	var env envSpec
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	tourist, industry, softCap := env.TouristPct, env.IndustryPct, env.SoftCapPct
	return &Config{
		Catalog: CatalogConfig{
			ProductsDir: env.ProductsDir,
			AwardsPath:  env.AwardsPath,
		},
		Allocation: AllocationConfig{
			TotalBudget:  env.TotalBudget,
			TouristPct:   &tourist,
			IndustryPct:  &industry,
			SoftCapPct:   &softCap,
			IsAdvertiser: env.IsAdvertiser,
		},
		API: APIConfig{
			Port:           env.Port,
			AllowedOrigins: env.AllowedOrigins,
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  env.LogLevel,
				Format: env.LogFormat,
			},
		},
	}, nil
}

// LoadOrEnv_WithPath tries to load from specified path, falls back to environment variables
func LoadOrEnv_WithPath(path string) (*Config, error) {
	if cfg, err := Load(path); err == nil {
		return cfg, nil
	}
	return LoadFromEnv()
}

// applyDefaults fills fields a YAML file left empty.
func (c *Config) applyDefaults() {
	if c.Catalog.ProductsDir == "" {
		c.Catalog.ProductsDir = DefaultProductsDir
	}
	if c.Allocation.TotalBudget == 0 {
		c.Allocation.TotalBudget = DefaultTotalBudget
	}
	if c.API.Port == 0 {
		c.API.Port = DefaultPort
	}
	if len(c.API.AllowedOrigins) == 0 {
		c.API.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	if c.Observability.Logging.Level == "" {
		c.Observability.Logging.Level = "info"
	}
	if c.Observability.Logging.Format == "" {
		c.Observability.Logging.Format = "maven"
	}
}
