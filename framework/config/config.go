package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/km-arc/go-validator/framework/validation"
)

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed.
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrInvalidValue is returned when a variable holds an unsupported value.
	ErrInvalidValue = errors.New("invalid config value")
)

// Config is the central typed configuration struct.
type Config struct {
	App        AppConfig
	Log        LogConfig
	HTTP       HTTPConfig
	Validation ValidationConfig
}

type AppConfig struct {
	Name  string `env:"APP_NAME" envDefault:"go-validator"`
	Env   string `env:"APP_ENV" envDefault:"local"` // local | production | testing
	Debug bool   `env:"APP_DEBUG" envDefault:"true"`
	Port  string `env:"APP_PORT" envDefault:"8000"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`  // debug | info | warn | error
	Format string `env:"LOG_FORMAT" envDefault:"text"` // text | json
}

type HTTPConfig struct {
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type ValidationConfig struct {
	LengthMode string `env:"VALIDATION_LENGTH_MODE" envDefault:"value"` // value | field_name
	RulesFile  string `env:"VALIDATION_RULES_FILE"`
}

// Load reads .env files (if present) and populates a Config from environment
// variables. Without arguments it looks for ".env".
func Load(envFiles ...string) (*Config, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Join(ErrParsingConfig, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad works like Load but panics on error.
func MustLoad(envFiles ...string) *Config {
	cfg, err := Load(envFiles...)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}

func (c *Config) validate() error {
	switch c.App.Env {
	case "local", "production", "testing":
	default:
		return fmt.Errorf("%w: APP_ENV=%q", ErrInvalidValue, c.App.Env)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: LOG_FORMAT=%q", ErrInvalidValue, c.Log.Format)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	if _, err := parseLengthMode(c.Validation.LengthMode); err != nil {
		return err
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string { return ":" + c.App.Port }

func (c *Config) IsLocal() bool      { return c.App.Env == "local" }
func (c *Config) IsProduction() bool { return c.App.Env == "production" }
func (c *Config) IsTesting() bool    { return c.App.Env == "testing" }

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() slog.Level {
	l, _ := parseLevel(c.Log.Level)
	return l
}

// LengthMode returns how min/max/between measure strings.
func (c *Config) LengthMode() validation.LengthMode {
	m, _ := parseLengthMode(c.Validation.LengthMode)
	return m
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: LOG_LEVEL=%q", ErrInvalidValue, s)
}

func parseLengthMode(s string) (validation.LengthMode, error) {
	switch s {
	case "value", "":
		return validation.LengthValue, nil
	case "field_name":
		return validation.LengthFieldName, nil
	}
	return validation.LengthValue, fmt.Errorf("%w: VALIDATION_LENGTH_MODE=%q", ErrInvalidValue, s)
}
