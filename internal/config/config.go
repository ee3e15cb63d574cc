// Package config loads the automata configuration from an optional YAML file
// and AUTOMATA_* environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "automata"
	// ConfigFileName is the name of the config file looked up in the working
	// directory when no explicit path is given.
	ConfigFileName = "automata.yaml"
	// EnvPrefix prefixes every environment override, e.g. AUTOMATA_STORE_DRIVER.
	EnvPrefix = "AUTOMATA"
)

// Store drivers.
const (
	DriverFile   = "file"
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// ErrInvalidConfig is returned when a loaded value is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full configuration tree.
type Config struct {
	LogLevel  string          `mapstructure:"log_level"`
	LogFormat string          `mapstructure:"log_format"`
	Store     StoreConfig     `mapstructure:"store"`
	HTTP      HTTPConfig      `mapstructure:"http"`
	Enumerate EnumerateConfig `mapstructure:"enumerate"`
	Input     InputConfig     `mapstructure:"input"`
}

type StoreConfig struct {
	Driver string      `mapstructure:"driver"`
	Dir    string      `mapstructure:"dir"`
	Format string      `mapstructure:"format"`
	Redis  RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type HTTPConfig struct {
	Port int `mapstructure:"port"`
}

type EnumerateConfig struct {
	Limit        int    `mapstructure:"limit"`
	IncludeEmpty bool   `mapstructure:"include_empty"`
	Strategy     string `mapstructure:"strategy"`
	MaxLength    int    `mapstructure:"max_length"`
}

type InputConfig struct {
	MaxSize int `mapstructure:"max_size"`
}

// LoadOptions controls where Load looks for a file.
type LoadOptions struct {
	// ConfigFilePath, when set, must exist and is used exclusively.
	ConfigFilePath string
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "text",
		Store: StoreConfig{
			Driver: DriverFile,
			Dir:    ".automata/store",
			Format: "json",
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "automata:",
			},
		},
		HTTP:      HTTPConfig{Port: 8080},
		Enumerate: EnumerateConfig{Limit: 10, Strategy: "pruned"},
		Input:     InputConfig{MaxSize: 64 * 1024},
	}
}

// Load resolves the configuration. It returns the config and the path of the
// file that was read, or "" when only defaults and environment applied.
func Load(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)
	v.SetDefault("store.driver", defaults.Store.Driver)
	v.SetDefault("store.dir", defaults.Store.Dir)
	v.SetDefault("store.format", defaults.Store.Format)
	v.SetDefault("store.redis.addr", defaults.Store.Redis.Addr)
	v.SetDefault("store.redis.password", defaults.Store.Redis.Password)
	v.SetDefault("store.redis.db", defaults.Store.Redis.DB)
	v.SetDefault("store.redis.prefix", defaults.Store.Redis.Prefix)
	v.SetDefault("store.redis.ttl", defaults.Store.Redis.TTL)
	v.SetDefault("http.port", defaults.HTTP.Port)
	v.SetDefault("enumerate.limit", defaults.Enumerate.Limit)
	v.SetDefault("enumerate.include_empty", defaults.Enumerate.IncludeEmpty)
	v.SetDefault("enumerate.strategy", defaults.Enumerate.Strategy)
	v.SetDefault("enumerate.max_length", defaults.Enumerate.MaxLength)
	v.SetDefault("input.max_size", defaults.Input.MaxSize)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""
	switch {
	case opts.ConfigFilePath != "":
		if !fileExists(opts.ConfigFilePath) {
			return nil, "", fmt.Errorf("config file not found: %s", opts.ConfigFilePath)
		}
		resolvedPath = opts.ConfigFilePath
	case fileExists(ConfigFileName):
		resolvedPath = ConfigFileName
	}

	if resolvedPath != "" {
		v.SetConfigFile(resolvedPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, "", fmt.Errorf("failed to read config %s: %w", resolvedPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, resolvedPath, nil
}

// Validate checks values viper cannot constrain.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverFile, DriverMemory, DriverRedis:
	default:
		return fmt.Errorf("%w: store.driver %q (want file, memory or redis)", ErrInvalidConfig, c.Store.Driver)
	}
	if c.HTTP.Port < 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("%w: http.port %d", ErrInvalidConfig, c.HTTP.Port)
	}
	if c.Enumerate.Limit < 0 {
		return fmt.Errorf("%w: enumerate.limit %d", ErrInvalidConfig, c.Enumerate.Limit)
	}
	if c.Input.MaxSize < 0 {
		return fmt.Errorf("%w: input.max_size %d", ErrInvalidConfig, c.Input.MaxSize)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
