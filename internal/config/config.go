// Package config loads spacedsync's configuration, layered: environment
// variables (SPACEDSYNC_*), then a YAML config file, then built-in
// defaults. The only CLI flag, --config, selects the YAML file; no other
// setting is read from flags.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/lfurzewaddock/spaced-backend/internal/logger"
	"github.com/lfurzewaddock/spaced-backend/pkg/sync/store"
)

// Config is spacedsync's full static configuration.
type Config struct {
	Server   ServerConfig  `mapstructure:"server"`
	Database store.Config  `mapstructure:"database"`
	JWT      JWTConfig     `mapstructure:"jwt"`
	Logging  LoggingConfig `mapstructure:"logging"`
	Batch    BatchConfig   `mapstructure:"batch"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Port         int           `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// JWTConfig configures bearer-token verification. Token issuance is
// handled by an external identity system; this is verification only.
type JWTConfig struct {
	Secret string `mapstructure:"secret" validate:"required,min=32"`
	Issuer string `mapstructure:"issuer"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=DEBUG INFO WARN ERROR debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=text json"`
}

// BatchConfig exposes the validator's hard cap as configuration for tests
// and operators who need a lower ceiling than the built-in default.
type BatchConfig struct {
	MaxOps int `mapstructure:"max_ops" validate:"omitempty,min=1"`
}

const envPrefix = "SPACEDSYNC"

// Load builds a Config from (in ascending precedence) defaults, an
// optional YAML file at configPath, and SPACEDSYNC_-prefixed environment
// variables. Load binds no CLI flags itself; cmd/spacedsync/commands passes
// a fresh viper.Viper with none bound.
func Load(v *viper.Viper, configPath string) (*Config, error) {
	applyDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := logger.Init(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format}); err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)

	v.SetDefault("database.type", string(store.DatabaseTypeSQLite))
	v.SetDefault("database.sqlite.path", "spacedsync.db")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.sslmode", "disable")
	v.SetDefault("database.postgres.max_open_conns", 25)
	v.SetDefault("database.postgres.max_idle_conns", 5)

	v.SetDefault("jwt.issuer", "spacedsync")

	v.SetDefault("logging.level", "INFO")
	v.SetDefault("logging.format", "text")

	v.SetDefault("batch.max_ops", 10000)
}
