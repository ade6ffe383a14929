package config

import (
	"fmt"
	"log"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPAddr       string `envconfig:"HTTP_ADDR" default:":8080"`
	MaxUploadBytes int64  `envconfig:"MAX_UPLOAD_BYTES" default:"5242880"`
	TgToken        string `envconfig:"TG_TOKEN"`
	HistogramBins  int    `envconfig:"HISTOGRAM_BINS" default:"15"`
	NormalPoints   int    `envconfig:"NORMAL_POINTS" default:"100"`
	LoggingConfig
}

type LoggingConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

var (
	config *Config
	once   sync.Once
)

// GetConfig returns the process wide configuration. A .env file in the
// working directory is loaded first when present.
func GetConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file loaded, using environment")
		}
		cfg, err := Load()
		if err != nil {
			log.Fatal(err)
		}
		config = cfg
	})
	return config
}

// Load reads the configuration from the environment only.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	if c.HistogramBins <= 0 {
		return fmt.Errorf("HISTOGRAM_BINS must be positive, got %d", c.HistogramBins)
	}
	if c.NormalPoints < 2 {
		return fmt.Errorf("NORMAL_POINTS must be at least 2, got %d", c.NormalPoints)
	}
	return nil
}
