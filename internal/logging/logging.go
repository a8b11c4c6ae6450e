// Package logging builds the zap logger used by the CLI and the HTTP adapter.
package logging

import (
	"fmt"

	"github.com/roboco-io/jww2dxf/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a logger writing to stderr. The json format uses the
// production encoder; console uses the development one without stack traces.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console", "":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.DisableStacktrace = true
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		return nil, fmt.Errorf("unknown log format: %s", cfg.Format)
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.OutputPaths = []string{"stderr"}

	return zapCfg.Build()
}

// ParseLevel converts a level name. An empty name means warn.
func ParseLevel(name string) (zapcore.Level, error) {
	switch name {
	case "debug":
		return zap.DebugLevel, nil
	case "info":
		return zap.InfoLevel, nil
	case "warn", "":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	}
	return zap.WarnLevel, fmt.Errorf("unknown log level: %s", name)
}
