package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	DiseaseSh struct {
		BaseURL  string        `yaml:"base_url"`
		Timeout  time.Duration `yaml:"timeout"`
		LastDays string        `yaml:"lastdays"`
	} `yaml:"disease_sh"`
	Cache struct {
		Backend    string        `yaml:"backend"` // memory, redis, layered
		TTL        time.Duration `yaml:"ttl"`
		MaxEntries int           `yaml:"max_entries"`
		Redis      struct {
			Host     string `yaml:"host"`
			Port     int    `yaml:"port"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
	} `yaml:"cache"`
	Dashboard struct {
		DefaultWindow   int           `yaml:"default_window"`
		SeasonalPeriod  int           `yaml:"seasonal_period"`
		DecompMinPoints int           `yaml:"decomposition_min_points"`
		RefreshInterval time.Duration `yaml:"refresh_interval"`
	} `yaml:"dashboard"`
	RateLimit struct {
		Enabled      bool    `yaml:"enabled"`
		Capacity     float64 `yaml:"capacity"`
		RefillPerSec float64 `yaml:"refill_per_sec"`
	} `yaml:"rate_limit"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	c.applyDefaults()

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("DISEASE_SH_BASE_URL"); v != "" {
		c.DiseaseSh.BaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		c.Cache.Redis.Host = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.DiseaseSh.Timeout == 0 {
		c.DiseaseSh.Timeout = 30 * time.Second
	}
	if c.DiseaseSh.LastDays == "" {
		c.DiseaseSh.LastDays = "all"
	}
	if c.Cache.Backend == "" {
		c.Cache.Backend = "memory"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = time.Hour
	}
	if c.Cache.MaxEntries == 0 {
		c.Cache.MaxEntries = 1000
	}
	if c.Cache.Redis.Host == "" {
		c.Cache.Redis.Host = "localhost"
	}
	if c.Cache.Redis.Port == 0 {
		c.Cache.Redis.Port = 6379
	}
	if c.Cache.Redis.Prefix == "" {
		c.Cache.Redis.Prefix = "covidash"
	}
	if c.Dashboard.DefaultWindow == 0 {
		c.Dashboard.DefaultWindow = 7
	}
	if c.Dashboard.SeasonalPeriod == 0 {
		c.Dashboard.SeasonalPeriod = 7
	}
	if c.Dashboard.DecompMinPoints == 0 {
		c.Dashboard.DecompMinPoints = 30
	}
	if c.Dashboard.RefreshInterval == 0 {
		c.Dashboard.RefreshInterval = time.Hour
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.DiseaseSh.BaseURL == "" {
		return fmt.Errorf("disease_sh.base_url is required")
	}
	switch c.Cache.Backend {
	case "memory", "redis", "layered":
	default:
		return fmt.Errorf("cache.backend must be 'memory', 'redis' or 'layered', got '%s'", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl cannot be negative")
	}
	if c.Dashboard.DefaultWindow < 1 || c.Dashboard.DefaultWindow > 30 {
		return fmt.Errorf("dashboard.default_window must be in [1,30], got %d", c.Dashboard.DefaultWindow)
	}
	return nil
}
