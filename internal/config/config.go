// SPDX-License-Identifier: MIT

// Package config resolves runtime configuration for the CLI and the HTTP
// server. Sources are layered with viper, lowest precedence first:
//
//	defaults -> YAML file -> SPATIALACC_* environment -> bound flags
//
// Nested keys map to environment variables with "." replaced by "_", e.g.
// server.rate_limit is SPATIALACC_SERVER_RATE_LIMIT.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/viper"

	"github.com/katalvlaran/spatialacc/accessibility"
	"github.com/katalvlaran/spatialacc/decay"
	"github.com/katalvlaran/spatialacc/internal/logging"
	"github.com/katalvlaran/spatialacc/stats"
)

// EnvPrefix is the environment variable prefix.
const EnvPrefix = "SPATIALACC"

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the resolved configuration.
type Config struct {
	Model       string  `mapstructure:"model" yaml:"model"`
	Beta        float64 `mapstructure:"beta" yaml:"beta"`
	Threshold   float64 `mapstructure:"threshold" yaml:"threshold"`
	Expon       float64 `mapstructure:"expon" yaml:"expon"`
	DDOF        int     `mapstructure:"ddof" yaml:"ddof"`
	Verbose     bool    `mapstructure:"verbose" yaml:"verbose"`
	StrictModel bool    `mapstructure:"strict_model" yaml:"strict_model"`
	Undefined   string  `mapstructure:"undefined" yaml:"undefined"`

	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	Server ServerConfig `mapstructure:"server" yaml:"server"`
}

// LogConfig configures internal/logging.
type LogConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Development bool   `mapstructure:"development" yaml:"development"`
}

// ServerConfig configures the HTTP surface.
type ServerConfig struct {
	Addr       string        `mapstructure:"addr" yaml:"addr"`
	RateLimit  float64       `mapstructure:"rate_limit" yaml:"rate_limit"` // requests per second, 0 disables
	Burst      int           `mapstructure:"burst" yaml:"burst"`
	CacheTTL   time.Duration `mapstructure:"cache_ttl" yaml:"cache_ttl"` // 0 disables the response cache
	MaxRecords int           `mapstructure:"max_records" yaml:"max_records"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("model", decay.NameGravity)
	v.SetDefault("beta", decay.DefaultBeta)
	v.SetDefault("threshold", decay.DefaultThreshold)
	v.SetDefault("expon", decay.DefaultExpon)
	v.SetDefault("ddof", accessibility.DefaultDDOF)
	v.SetDefault("verbose", false)
	v.SetDefault("strict_model", false)
	v.SetDefault("undefined", accessibility.UndefinedPropagate.String())
	v.SetDefault("log.level", logging.DefaultLevel)
	v.SetDefault("log.development", false)
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.rate_limit", 50.0)
	v.SetDefault("server.burst", 100)
	v.SetDefault("server.cache_ttl", 5*time.Minute)
	v.SetDefault("server.max_records", 1_000_000)
}

// Load resolves the configuration from v. path names an optional YAML file;
// an empty path skips the file layer. Flags must be bound (BindFlags)
// before calling Load.
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}

// Validate checks every field and reports the first problem wrapped in ErrInvalid.
func (c *Config) Validate() error {
	if c.StrictModel {
		if _, err := decay.ParseModelStrict(c.Model); err != nil {
			return fmt.Errorf("%w: model: %w", ErrInvalid, err)
		}
	}
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.DDOF < 0 {
		return fmt.Errorf("%w: ddof %d: %w", ErrInvalid, c.DDOF, stats.ErrBadDDOF)
	}
	if _, err := accessibility.ParseUndefinedPolicy(c.Undefined); err != nil {
		return fmt.Errorf("%w: undefined: %w", ErrInvalid, err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
	}
	s := c.Server
	switch {
	case s.RateLimit < 0:
		return fmt.Errorf("%w: server.rate_limit %v < 0", ErrInvalid, s.RateLimit)
	case s.RateLimit > 0 && s.Burst < 1:
		return fmt.Errorf("%w: server.burst %d < 1", ErrInvalid, s.Burst)
	case s.CacheTTL < 0:
		return fmt.Errorf("%w: server.cache_ttl %v < 0", ErrInvalid, s.CacheTTL)
	case s.MaxRecords < 0:
		return fmt.Errorf("%w: server.max_records %d < 0", ErrInvalid, s.MaxRecords)
	}

	return nil
}

// Params returns the decay parameters.
func (c *Config) Params() decay.Params {
	return decay.Params{Beta: c.Beta, Threshold: c.Threshold, Expon: c.Expon}
}

// AccessibilityOptions converts c into Compute options. Validate must have
// succeeded.
func (c *Config) AccessibilityOptions(logger logr.Logger) []accessibility.Option {
	policy, _ := accessibility.ParseUndefinedPolicy(c.Undefined)

	return []accessibility.Option{
		accessibility.WithModelName(c.Model),
		accessibility.WithParams(c.Params()),
		accessibility.WithDDOF(c.DDOF),
		accessibility.WithVerbose(c.Verbose),
		accessibility.WithLogger(logger),
		accessibility.WithUndefinedPolicy(policy),
	}
}
