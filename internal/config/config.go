// Package config provides configuration for the affinity backend.
package config

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"affinity-backend/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Port is the HTTP listen port
	Port string `json:"port"`

	// Data contains data-source configuration
	Data DataConfig `json:"data"`

	// CORS contains CORS configuration for the dashboard frontend
	CORS CORSConfig `json:"cors"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// DataConfig contains data-source settings
type DataConfig struct {
	// Dir is the directory holding products.csv and store_sales_line_items.csv
	Dir string `json:"dir"`

	// ProductsFile is the products table file name
	ProductsFile string `json:"products_file"`

	// LineItemsFile is the line-items table file name
	LineItemsFile string `json:"line_items_file"`

	// CacheEnabled reuses the loaded dataset across runs until the files change
	CacheEnabled bool `json:"cache_enabled"`
}

// CORSConfig contains allowed-origin settings
type CORSConfig struct {
	AllowedOrigins []string `json:"allowed_origins"`
}

// Default returns the default configuration
func Default() Config {
	return Config{
		Port: "8001",
		Data: DataConfig{
			Dir:           "./data/raw",
			ProductsFile:  "products.csv",
			LineItemsFile: "store_sales_line_items.csv",
			CacheEnabled:  true,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost:3001",
				"http://127.0.0.1:3000",
			},
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load builds the configuration from defaults, an optional JSON file and
// environment overrides, in that precedence order.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("AFFINITY_DATA_DIR"); v != "" {
		c.Data.Dir = v
	}
	if v := os.Getenv("AFFINITY_ALLOWED_ORIGINS"); v != "" {
		c.CORS.AllowedOrigins = splitAndTrim(v)
	}
	if v := os.Getenv("AFFINITY_CACHE"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Data.CacheEnabled = enabled
		}
	}
	if v := os.Getenv("AFFINITY_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
