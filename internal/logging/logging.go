// SPDX-License-Identifier: MIT

// Package logging builds the logr.Logger shared by the CLI, the HTTP
// server and the library packages. The sink is zap; zapr adapts it to the
// logr API so library code depends on logr only.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DEBUG is the verbosity for logger.V(DEBUG). zapr maps V(n) to zap level
// -n, so these messages appear once the zap level is "debug".
const DEBUG = 1

// DefaultLevel is used when no level is configured.
const DefaultLevel = "info"

// New builds a zap-backed logr.Logger. level is one of
// debug|info|warn|error (case-insensitive, empty means info); development
// switches to the console encoder with caller and stack annotations.
func New(level string, development bool) (logr.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return logr.Discard(), err
	}

	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Sampling = nil
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}

	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), fmt.Errorf("logging: build zap logger: %w", err)
	}

	return zapr.NewLogger(zl), nil
}

// NewWriter builds a console logger at the given level writing to w.
func NewWriter(w io.Writer, level string) (logr.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return logr.Discard(), err
	}
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	core := zapcore.NewCore(enc, zapcore.AddSync(w), lvl)

	return zapr.NewLogger(zap.New(core)), nil
}

// ParseLevel maps a level name to a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	if strings.TrimSpace(level) == "" {
		level = DefaultLevel
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("logging: unknown level %q: %w", level, err)
	}

	return lvl, nil
}

// NewTestLogger returns a debug-level console logger writing to w. Suites
// pass GinkgoWriter so output is only shown for failing specs.
func NewTestLogger(w io.Writer) logr.Logger {
	l, _ := NewWriter(w, "debug")
	return l
}
