// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/spatialacc/accessibility"
	"github.com/katalvlaran/spatialacc/decay"
	"github.com/katalvlaran/spatialacc/internal/config"
	"github.com/katalvlaran/spatialacc/stats"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := config.Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "Gravity", c.Model)
	assert.Equal(t, decay.DefaultParams(), c.Params())
	assert.Equal(t, 1, c.DDOF)
	assert.Equal(t, "propagate", c.Undefined)
	assert.Equal(t, ":8080", c.Server.Addr)
	assert.Equal(t, 5*time.Minute, c.Server.CacheTTL)
	assert.Equal(t, "info", c.Log.Level)
}

func TestLoad_Layers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spatialacc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
model: 2SFCA
threshold: 1200
ddof: 0
server:
  addr: ":9090"
  cache_ttl: 30s
  rate_limit: 5
`), 0o600))

	t.Setenv("SPATIALACC_THRESHOLD", "1500")
	t.Setenv("SPATIALACC_SERVER_BURST", "7")

	v := viper.New()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	config.AddComputeFlags(fs)
	config.AddServerFlags(fs)
	config.AddLogFlags(fs)
	require.NoError(t, fs.Parse([]string{"--addr", ":7070", "--undefined", "zero"}))
	require.NoError(t, config.BindFlags(v, fs))

	c, err := config.Load(v, path)
	require.NoError(t, err)

	assert.Equal(t, "2SFCA", c.Model, "file")
	assert.Equal(t, 1500.0, c.Threshold, "env beats file")
	assert.Equal(t, 0, c.DDOF, "file")
	assert.Equal(t, ":7070", c.Server.Addr, "flag beats file")
	assert.Equal(t, 30*time.Second, c.Server.CacheTTL)
	assert.Equal(t, 5.0, c.Server.RateLimit)
	assert.Equal(t, 7, c.Server.Burst)
	assert.Equal(t, "zero", c.Undefined)
	assert.Equal(t, 1.0, c.Beta, "untouched flag keeps the default")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	base := func() *config.Config {
		return &config.Config{
			Model: "Gravity", Beta: 1, Threshold: 10, Expon: 0.8, DDOF: 1,
			Undefined: "propagate", Log: config.LogConfig{Level: "info"},
			Server: config.ServerConfig{RateLimit: 1, Burst: 1},
		}
	}
	require.NoError(t, base().Validate())

	cases := map[string]func(*config.Config){
		"strict unknown model": func(c *config.Config) { c.StrictModel, c.Model = true, "Foo" },
		"negative threshold":   func(c *config.Config) { c.Threshold = -1 },
		"negative ddof":        func(c *config.Config) { c.DDOF = -1 },
		"bad policy":           func(c *config.Config) { c.Undefined = "skip" },
		"bad level":            func(c *config.Config) { c.Log.Level = "loud" },
		"negative rate":        func(c *config.Config) { c.Server.RateLimit = -1 },
		"zero burst":           func(c *config.Config) { c.Server.Burst = 0 },
		"negative ttl":         func(c *config.Config) { c.Server.CacheTTL = -time.Second },
		"negative max":         func(c *config.Config) { c.Server.MaxRecords = -1 },
	}
	for name, mutate := range cases {
		c := base()
		mutate(c)
		require.ErrorIs(t, c.Validate(), config.ErrInvalid, name)
	}

	neg := base()
	neg.DDOF = -1
	require.ErrorIs(t, neg.Validate(), stats.ErrBadDDOF)

	lenient := base()
	lenient.Model = "Foo"
	require.NoError(t, lenient.Validate(), "unknown models fall back unless strict")
}

func TestAccessibilityOptions(t *testing.T) {
	t.Parallel()

	c := &config.Config{Model: "2SFCA", Beta: 2, Threshold: 30, Expon: 0.1, DDOF: 0, Verbose: true, Undefined: "fail"}
	o := accessibility.NewOptions(c.AccessibilityOptions(logr.Discard())...)

	assert.Equal(t, decay.Threshold, o.Model())
	assert.Equal(t, decay.Params{Beta: 2, Threshold: 30, Expon: 0.1}, o.Params())
	assert.Equal(t, 0, o.DDOF())
	assert.True(t, o.Verbose())
	assert.Equal(t, accessibility.UndefinedFail, o.Undefined())
}
