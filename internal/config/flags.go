// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"model":           "model",
	"beta":            "beta",
	"threshold":       "threshold",
	"expon":           "expon",
	"ddof":            "ddof",
	"verbose":         "verbose",
	"strict-model":    "strict_model",
	"undefined":       "undefined",
	"log-level":       "log.level",
	"log-development": "log.development",
	"addr":            "server.addr",
	"rate-limit":      "server.rate_limit",
	"burst":           "server.burst",
	"cache-ttl":       "server.cache_ttl",
	"max-records":     "server.max_records",
}

// AddComputeFlags registers the scoring flags on fs. Flag defaults are
// informational only; unset flags never override lower layers.
func AddComputeFlags(fs *pflag.FlagSet) {
	fs.String("model", "Gravity", `decay model: "2SFCA", "Gravity", anything else is Exponential`)
	fs.Float64("beta", 1, "Gravity exponent")
	fs.Float64("threshold", 5000, "2SFCA catchment size (inclusive)")
	fs.Float64("expon", 0.8, "Exponential decay rate")
	fs.Int("ddof", 1, "delta degrees of freedom for the standard deviation")
	fs.BoolP("verbose", "v", false, "log diagnostics while computing")
	fs.Bool("strict-model", false, "reject unknown model names instead of falling back")
	fs.String("undefined", "propagate", "undefined weight policy: propagate|zero|fail")
}

// AddLogFlags registers logging flags on fs.
func AddLogFlags(fs *pflag.FlagSet) {
	fs.String("log-level", "info", "log level: debug|info|warn|error")
	fs.Bool("log-development", false, "human-readable development logging")
}

// AddServerFlags registers HTTP server flags on fs.
func AddServerFlags(fs *pflag.FlagSet) {
	fs.String("addr", ":8080", "listen address")
	fs.Float64("rate-limit", 50, "requests per second, 0 disables limiting")
	fs.Int("burst", 100, "rate limiter burst")
	fs.Duration("cache-ttl", 5*time.Minute, "response cache TTL, 0 disables caching")
	fs.Int("max-records", 1_000_000, "maximum records per request")
}

// BindFlags binds every known flag present in fs to its key on v.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var err error
	fs.VisitAll(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || err != nil {
			return
		}
		if bindErr := v.BindPFlag(key, f); bindErr != nil {
			err = fmt.Errorf("config: bind --%s: %w", f.Name, bindErr)
		}
	})

	return err
}
