package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

const envPrefix = "DIGMAR"

type Config struct {
	Port              int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	LogLevel          string        `yaml:"log_level" envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	HTTPTimeout       time.Duration `yaml:"http_timeout" envconfig:"HTTP_TIMEOUT" default:"15s" validate:"gt=0"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" envconfig:"READ_HEADER_TIMEOUT" default:"10s" validate:"gt=0"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`
	MaxUploadBytes    int64         `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES" default:"33554432" validate:"gt=0"`
	Currency          string        `yaml:"currency" envconfig:"CURRENCY" default:"Rp"`
	FetchRetries      int           `yaml:"fetch_retries" envconfig:"FETCH_RETRIES" default:"3" validate:"min=0,max=10"`
	FetchBackoff      time.Duration `yaml:"fetch_backoff" envconfig:"FETCH_BACKOFF" default:"100ms" validate:"gte=0"`
}

// Load reads an optional YAML file, then the DIGMAR_* environment. A value
// set in the environment wins over the file; defaults apply last.
func Load(path string) (Config, error) {
	var file Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.UnmarshalStrict(b, &file); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	var env Config
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return Config{}, fmt.Errorf("load config from env: %w", err)
	}
	cfg := merge(file, env)

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// merge lets file values through only where the env var is unset, since
// envconfig has already filled defaults into env.
func merge(file, env Config) Config {
	set := func(name string) bool {
		_, ok := os.LookupEnv(envPrefix + "_" + name)
		return ok
	}
	if file.Port != 0 && !set("PORT") {
		env.Port = file.Port
	}
	if file.LogLevel != "" && !set("LOG_LEVEL") {
		env.LogLevel = file.LogLevel
	}
	if file.HTTPTimeout != 0 && !set("HTTP_TIMEOUT") {
		env.HTTPTimeout = file.HTTPTimeout
	}
	if file.ReadHeaderTimeout != 0 && !set("READ_HEADER_TIMEOUT") {
		env.ReadHeaderTimeout = file.ReadHeaderTimeout
	}
	if file.ShutdownTimeout != 0 && !set("SHUTDOWN_TIMEOUT") {
		env.ShutdownTimeout = file.ShutdownTimeout
	}
	if file.MaxUploadBytes != 0 && !set("MAX_UPLOAD_BYTES") {
		env.MaxUploadBytes = file.MaxUploadBytes
	}
	if file.Currency != "" && !set("CURRENCY") {
		env.Currency = file.Currency
	}
	if file.FetchRetries != 0 && !set("FETCH_RETRIES") {
		env.FetchRetries = file.FetchRetries
	}
	if file.FetchBackoff != 0 && !set("FETCH_BACKOFF") {
		env.FetchBackoff = file.FetchBackoff
	}
	return env
}

func (c Config) Validate() error {
	return validator.New().Struct(c)
}

func (c Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
