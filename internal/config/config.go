package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/coderemark/coderemark/internal/settings"
	"gopkg.in/yaml.v3"
)

const (
	EnvConfigPath      = "CONFIG_PATH"
	EnvAPIKey          = "GEMINI_API_KEY"
	EnvModel           = "GEMINI_MODEL"
	EnvRateLimit       = "RATE_LIMIT"
	EnvRateLimitWindow = "RATE_LIMIT_WINDOW"
)

// AppConfig holds resolved application configuration values.
type AppConfig struct {
	ConfigPath string
}

// LoadFromEnv loads app config from environment variables.
func LoadFromEnv() (AppConfig, error) {
	return AppConfig{ConfigPath: ResolveConfigPath(os.Getenv(EnvConfigPath))}, nil
}

// ResolveConfigPath normalizes the config path and applies defaults.
func ResolveConfigPath(p string) string {
	trimmed := strings.TrimSpace(p)
	if trimmed == "" {
		trimmed = "./config.yaml"
	}
	if abs, err := filepath.Abs(trimmed); err == nil {
		return abs
	}
	return trimmed
}

// RedisConfig holds the optional Redis rate limit backend settings.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// RateLimitConfig holds per-client rate limit settings.
type RateLimitConfig struct {
	Limit  int
	Window time.Duration
	Redis  RedisConfig
}

// UpstreamConfig holds upstream generation settings.
type UpstreamConfig struct {
	APIKey          string
	Model           string
	MaxOutputTokens int
	Temperature     float64
	Timeout         time.Duration
}

// Config holds the full service configuration.
type Config struct {
	Port      int
	Upstream  UpstreamConfig
	RateLimit RateLimitConfig
}

// Load reads the YAML config file when present and applies defaults and
// environment overrides. A missing file is not an error; the credential is
// only ever read from the environment.
func Load(configPath string) (Config, error) {
	// fileConfig maps the YAML fields of the config file.
	type fileConfig struct {
		Port     int `yaml:"port"`
		Upstream struct {
			Model           string   `yaml:"model"`
			MaxOutputTokens int      `yaml:"max-output-tokens"`
			Temperature     *float64 `yaml:"temperature"`
			Timeout         Duration `yaml:"timeout"`
		} `yaml:"upstream"`
		RateLimit struct {
			Limit  *int     `yaml:"limit"`
			Window Duration `yaml:"window"`
			Redis  struct {
				Enabled  bool   `yaml:"enabled"`
				Addr     string `yaml:"addr"`
				Password string `yaml:"password"`
				DB       int    `yaml:"db"`
				Prefix   string `yaml:"prefix"`
			} `yaml:"redis"`
		} `yaml:"rate-limit"`
	}

	var file fileConfig
	data, errRead := os.ReadFile(configPath)
	if errRead == nil {
		if errUnmarshal := yaml.Unmarshal(data, &file); errUnmarshal != nil {
			return Config{}, fmt.Errorf("parse config file: %w", errUnmarshal)
		}
	} else if !os.IsNotExist(errRead) {
		return Config{}, fmt.Errorf("read config file: %w", errRead)
	}

	cfg := Config{
		Port: file.Port,
		Upstream: UpstreamConfig{
			APIKey:          strings.TrimSpace(os.Getenv(EnvAPIKey)),
			Model:           strings.TrimSpace(file.Upstream.Model),
			MaxOutputTokens: file.Upstream.MaxOutputTokens,
			Temperature:     settings.DefaultTemperature,
			Timeout:         file.Upstream.Timeout.Duration(),
		},
		RateLimit: RateLimitConfig{
			Limit:  settings.DefaultRateLimit,
			Window: file.RateLimit.Window.Duration(),
			Redis: RedisConfig{
				Enabled:  file.RateLimit.Redis.Enabled,
				Addr:     strings.TrimSpace(file.RateLimit.Redis.Addr),
				Password: file.RateLimit.Redis.Password,
				DB:       file.RateLimit.Redis.DB,
				Prefix:   strings.TrimSpace(file.RateLimit.Redis.Prefix),
			},
		},
	}
	if file.Upstream.Temperature != nil && *file.Upstream.Temperature >= 0 {
		cfg.Upstream.Temperature = *file.Upstream.Temperature
	}
	if file.RateLimit.Limit != nil && *file.RateLimit.Limit >= 0 {
		cfg.RateLimit.Limit = *file.RateLimit.Limit
	}

	if model := strings.TrimSpace(os.Getenv(EnvModel)); model != "" {
		cfg.Upstream.Model = model
	}
	if raw := strings.TrimSpace(os.Getenv(EnvRateLimit)); raw != "" {
		if limit, errParse := strconv.Atoi(raw); errParse == nil && limit >= 0 {
			cfg.RateLimit.Limit = limit
		}
	}
	if raw := strings.TrimSpace(os.Getenv(EnvRateLimitWindow)); raw != "" {
		if window, errParse := time.ParseDuration(raw); errParse == nil && window > 0 {
			cfg.RateLimit.Window = window
		}
	}

	if cfg.Upstream.Model == "" {
		cfg.Upstream.Model = settings.DefaultModel
	}
	if cfg.Upstream.MaxOutputTokens <= 0 {
		cfg.Upstream.MaxOutputTokens = settings.DefaultMaxOutputTokens
	}
	if cfg.Upstream.Timeout <= 0 {
		cfg.Upstream.Timeout = settings.DefaultUpstreamTimeout
	}
	if cfg.RateLimit.Window <= 0 {
		cfg.RateLimit.Window = settings.DefaultRateLimitWindow
	}
	if cfg.RateLimit.Redis.DB < 0 {
		cfg.RateLimit.Redis.DB = 0
	}
	if cfg.RateLimit.Redis.Prefix == "" {
		cfg.RateLimit.Redis.Prefix = settings.DefaultRateLimitRedisPrefix
	}
	return cfg, nil
}
