// Package config loads the engine's process-level settings: server/catalog/
// batch wiring plus the domain flag overrides, layered defaults -> file ->
// env -> validate, in the teacher's config.Load idiom.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	domainconfig "github.com/DimaJoyti/food-alignment-engine/internal/domain/config"
)

// AppConfig holds everything cmd/aligner needs to wire the process.
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Batch    BatchConfig    `yaml:"batch"`
	Logging  LoggingConfig  `yaml:"logging"`
	Flags    domainconfig.Flags `yaml:"flags"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	ReadTimeout  int    `yaml:"read_timeout"`
	WriteTimeout int    `yaml:"write_timeout"`
}

// CatalogConfig selects and configures one of the catalog gateway
// implementations (SPEC_FULL.md §4.8).
type CatalogConfig struct {
	Mode       string `yaml:"mode"` // mock, postgres, cached
	PostgresDSN string `yaml:"postgres_dsn"`
	RedisAddr  string `yaml:"redis_addr"`
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
	SearchRateLimitPerSecond float64 `yaml:"search_rate_limit_per_second"`
	SearchRateLimitBurst     int     `yaml:"search_rate_limit_burst"`
}

// BatchConfig configures the batch driver (SPEC_FULL.md §4.9).
type BatchConfig struct {
	ConcurrencyCeiling int      `yaml:"concurrency_ceiling"`
	KafkaBrokers       []string `yaml:"kafka_brokers"`
	InputTopic         string   `yaml:"input_topic"`
	OutputTopic        string   `yaml:"output_topic"`
	ConsumerGroupID    string   `yaml:"consumer_group_id"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load builds an AppConfig by overlaying, in order: defaults, an optional
// YAML file at configPath, then environment variable overrides, then
// validation. Mirrors the teacher's layered config.Load.
func Load(configPath string) (*AppConfig, error) {
	cfg := defaultConfig()

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	loadFromEnv(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30,
			WriteTimeout: 30,
		},
		Catalog: CatalogConfig{
			Mode:                     "mock",
			CacheTTLSeconds:          300,
			SearchRateLimitPerSecond: 20,
			SearchRateLimitBurst:     10,
		},
		Batch: BatchConfig{
			ConcurrencyCeiling: 5,
			KafkaBrokers:       []string{"localhost:9092"},
			InputTopic:         "food.predictions",
			OutputTopic:        "food.alignments",
			ConsumerGroupID:    "food-alignment-engine",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Flags: domainconfig.DefaultFlags(),
	}
}

func loadFromFile(cfg *AppConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func loadFromEnv(cfg *AppConfig) {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Server.Port = p
		}
	}
	if host := os.Getenv("SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if mode := os.Getenv("CATALOG_MODE"); mode != "" {
		cfg.Catalog.Mode = mode
	}
	if dsn := os.Getenv("CATALOG_POSTGRES_DSN"); dsn != "" {
		cfg.Catalog.PostgresDSN = dsn
	}
	if addr := os.Getenv("CATALOG_REDIS_ADDR"); addr != "" {
		cfg.Catalog.RedisAddr = addr
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.Batch.KafkaBrokers = strings.Split(brokers, ",")
	}
	if groupID := os.Getenv("KAFKA_GROUP_ID"); groupID != "" {
		cfg.Batch.ConsumerGroupID = groupID
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
}

func validate(cfg *AppConfig) error {
	switch cfg.Catalog.Mode {
	case "mock", "postgres", "cached":
	default:
		return fmt.Errorf("catalog.mode must be one of mock, postgres, cached, got %q", cfg.Catalog.Mode)
	}
	if cfg.Catalog.Mode == "postgres" || cfg.Catalog.Mode == "cached" {
		if cfg.Catalog.PostgresDSN == "" {
			return fmt.Errorf("catalog.postgres_dsn is required for mode %q", cfg.Catalog.Mode)
		}
	}
	if cfg.Catalog.Mode == "cached" && cfg.Catalog.RedisAddr == "" {
		return fmt.Errorf("catalog.redis_addr is required for mode \"cached\"")
	}
	if cfg.Batch.ConcurrencyCeiling <= 0 {
		return fmt.Errorf("batch.concurrency_ceiling must be positive")
	}
	return nil
}
