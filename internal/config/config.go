package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "dlmdash/libs/config"
)

// Config defines dashboard configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"DASHBOARD_HTTP_PORT" default:"8080"`
	} `yaml:"http"`
	API struct {
		BaseURL string        `yaml:"baseUrl" env:"DASHBOARD_API_BASE_URL" default:"http://localhost:8000"`
		Timeout time.Duration `yaml:"timeout" env:"DASHBOARD_API_TIMEOUT" default:"10s"`
	} `yaml:"api"`
	Web struct {
		SessionSecret string        `yaml:"sessionSecret" env:"DASHBOARD_SESSION_SECRET" default:"dlmdash-dev-secret"`
		PageLimit     int           `yaml:"pageLimit" env:"DASHBOARD_PAGE_LIMIT" default:"100"`
		QRCacheTTL    time.Duration `yaml:"qrCacheTtl" env:"DASHBOARD_QR_CACHE_TTL" default:"5m"`
	} `yaml:"web"`
	Health struct {
		Interval time.Duration `yaml:"interval" env:"DASHBOARD_HEALTH_INTERVAL" default:"30s"`
	} `yaml:"health"`
}

// Load reads configuration via shared helper.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := libconfig.Load(cfg); err != nil {
		return nil, err
	}

	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")
	if cfg.API.BaseURL == "" {
		return nil, errors.New("config: api base url required")
	}
	if cfg.Web.PageLimit <= 0 {
		cfg.Web.PageLimit = 100
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
