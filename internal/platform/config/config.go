// Package config loads application configuration from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LLM providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr           string   `yaml:"addr"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Tickers struct {
		Max int `yaml:"max"`
	} `yaml:"tickers"`
	Dates struct {
		StartDaysAgo int `yaml:"start_days_ago"`
		EndDaysAgo   int `yaml:"end_days_ago"`
	} `yaml:"dates"`
	Polygon struct {
		APIKey  string        `yaml:"api_key"`
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"polygon"`
	LLM struct {
		Provider string        `yaml:"provider"`
		Model    string        `yaml:"model"`
		APIKey   string        `yaml:"api_key"`
		BaseURL  string        `yaml:"base_url"`
		Timeout  time.Duration `yaml:"timeout"`
	} `yaml:"llm"`
	Redis struct {
		Host     string `yaml:"host"`
		Port     string `yaml:"port"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Session struct {
		Secret       string        `yaml:"secret"`
		TTL          time.Duration `yaml:"ttl"`
		SecureCookie bool          `yaml:"secure_cookie"`
	} `yaml:"session"`
	Cache struct {
		TTL time.Duration `yaml:"ttl"` // 0: until the next 08:00 America/New_York
	} `yaml:"cache"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// defaults returns a Config pre-filled with every default that does not
// depend on another setting.
func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Addr = ":8080"
	cfg.Tickers.Max = 3
	cfg.Dates.StartDaysAgo = 3
	cfg.Dates.EndDaysAgo = 1
	cfg.Polygon.BaseURL = "https://api.polygon.io"
	cfg.Polygon.Timeout = 10 * time.Second
	cfg.LLM.Provider = ProviderOpenAI
	cfg.LLM.Timeout = 60 * time.Second
	cfg.Redis.Port = "6379"
	cfg.Session.TTL = 24 * time.Hour
	cfg.Log.Level = "INFO"
	cfg.Log.Format = "json"
	return cfg
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error; path may be empty.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if len(data) > 0 {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	// Defaults that depend on the provider
	cfg.LLM.Provider = strings.ToLower(strings.TrimSpace(cfg.LLM.Provider))
	if cfg.LLM.Model == "" {
		switch cfg.LLM.Provider {
		case ProviderGemini:
			cfg.LLM.Model = "gemini-2.5-flash"
		default:
			cfg.LLM.Model = "gpt-3.5-turbo"
		}
	}
	if cfg.LLM.BaseURL == "" && cfg.LLM.Provider == ProviderOpenAI {
		cfg.LLM.BaseURL = "https://api.openai.com/v1"
	}

	return cfg, nil
}

// applyEnv applies environment variable overrides.
func (c *Config) applyEnv() error {
	var errs []error

	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}
	setBool := func(key string, dst *bool) {
		if v := os.Getenv(key); v != "" {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}

	setString("SERVER_ADDR", &c.Server.Addr)
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = splitList(v)
	}
	setInt("MAX_TICKERS", &c.Tickers.Max)
	setInt("START_DAYS_AGO", &c.Dates.StartDaysAgo)
	setInt("END_DAYS_AGO", &c.Dates.EndDaysAgo)

	setString("POLYGON_API_KEY", &c.Polygon.APIKey)
	setString("POLYGON_BASE_URL", &c.Polygon.BaseURL)
	setDuration("POLYGON_TIMEOUT", &c.Polygon.Timeout)

	setString("LLM_PROVIDER", &c.LLM.Provider)
	setString("LLM_MODEL", &c.LLM.Model)
	if strings.EqualFold(strings.TrimSpace(c.LLM.Provider), ProviderGemini) {
		setString("GEMINI_API_KEY", &c.LLM.APIKey)
		setString("GEMINI_BASE_URL", &c.LLM.BaseURL)
	} else {
		setString("OPENAI_API_KEY", &c.LLM.APIKey)
		setString("OPENAI_BASE_URL", &c.LLM.BaseURL)
	}
	setDuration("LLM_TIMEOUT", &c.LLM.Timeout)

	setString("REDIS_HOST", &c.Redis.Host)
	setString("REDIS_PORT", &c.Redis.Port)
	setString("REDIS_PASSWORD", &c.Redis.Password)
	setInt("REDIS_DB", &c.Redis.DB)

	setString("SESSION_SECRET", &c.Session.Secret)
	setDuration("SESSION_TTL", &c.Session.TTL)
	setBool("SESSION_SECURE_COOKIE", &c.Session.SecureCookie)

	setDuration("CACHE_TTL", &c.Cache.TTL)

	setString("LOG_LEVEL", &c.Log.Level)
	setString("LOG_FORMAT", &c.Log.Format)

	return errors.Join(errs...)
}

// Validate checks that all required fields are set and consistent.
func (c *Config) Validate() error {
	if c.Tickers.Max < 1 {
		return fmt.Errorf("tickers.max must be at least 1")
	}
	if c.Dates.EndDaysAgo < 0 {
		return fmt.Errorf("dates.end_days_ago must not be negative")
	}
	if c.Dates.StartDaysAgo <= c.Dates.EndDaysAgo {
		return fmt.Errorf("dates.start_days_ago must be greater than dates.end_days_ago")
	}
	if c.Polygon.APIKey == "" {
		return fmt.Errorf("polygon.api_key is required")
	}
	if c.Polygon.Timeout <= 0 || c.LLM.Timeout <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		return fmt.Errorf("llm.provider must be %q or %q, got %q", ProviderOpenAI, ProviderGemini, c.LLM.Provider)
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be positive")
	}
	return nil
}

// RedisEnabled reports whether a Redis host is configured.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

// RedisAddr returns host:port.
func (c *Config) RedisAddr() string {
	return c.Redis.Host + ":" + c.Redis.Port
}

func splitList(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
