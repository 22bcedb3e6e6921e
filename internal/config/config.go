// Package config loads the vigil host configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/aretw0/vigil/internal/logging"
	"github.com/aretw0/vigil/pkg/analysis"
	"github.com/aretw0/vigil/pkg/metrics"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when --config is not given.
const DefaultPath = "vigil.yaml"

// Config is the structure of vigil.yaml.
type Config struct {
	LogLevel       string              `yaml:"log_level"`
	CountingPolicy string              `yaml:"counting_policy"`
	Thresholds     analysis.Thresholds `yaml:"thresholds"`
	Server         Server              `yaml:"server"`
	Report         Report              `yaml:"report"`
	Redis          Redis               `yaml:"redis"`
}

// Server configures the HTTP host.
type Server struct {
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// Report configures the report poller and store.
// Dir keeps reports as JSON files when Redis is not configured.
type Report struct {
	Interval time.Duration `yaml:"interval"`
	TTL      time.Duration `yaml:"ttl"`
	Dir      string        `yaml:"dir"`
}

// Redis configures the optional shared report store. Empty Addr keeps reports in memory.
type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		LogLevel:       "info",
		CountingPolicy: string(metrics.CountLegacy),
		Thresholds:     analysis.DefaultThresholds(),
		Server: Server{
			Port: 8080,
		},
		Report: Report{
			Interval: time.Minute,
			TTL:      24 * time.Hour,
		},
		Redis: Redis{
			Prefix: "vigil:report:",
		},
	}
}

// Load reads path and merges it over Default. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.Thresholds = cfg.Thresholds.WithDefaults()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := metrics.ParsePolicy(c.CountingPolicy); err != nil {
		return err
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Report.Interval <= 0 {
		return fmt.Errorf("report interval must be positive, got %s", c.Report.Interval)
	}
	return nil
}

// Policy returns the parsed counting policy. Call after Validate.
func (c Config) Policy() metrics.Policy {
	p, _ := metrics.ParsePolicy(c.CountingPolicy)
	return p
}
