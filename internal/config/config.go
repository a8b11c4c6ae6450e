// Package config manages application configuration.
package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Config represents the application configuration.
type Config struct {
	Parse   ParseConfig   `yaml:"parse"`
	Convert ConvertConfig `yaml:"convert"`
	Output  OutputConfig  `yaml:"output"`
	Log     LogConfig     `yaml:"log"`
	Server  ServerConfig  `yaml:"server"`
}

// ParseConfig contains JWW parser options.
type ParseConfig struct {
	Strict   bool   `yaml:"strict"`
	StopRule string `yaml:"stop_rule"` // auto, count or eof
}

// ConvertConfig contains DXF conversion options.
type ConvertConfig struct {
	UnitScale              float64 `yaml:"unit_scale"`
	FlipY                  bool    `yaml:"flip_y"`
	DefaultTextHeight      float64 `yaml:"default_text_height"`
	IncludeTemporaryPoints bool    `yaml:"include_temporary_points"`
}

// OutputConfig contains DXF writer options.
type OutputConfig struct {
	Precision   int    `yaml:"precision"`
	ACADVersion string `yaml:"acad_version"`
}

// LogConfig contains logging options.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn or error
	Format string `yaml:"format"` // console or json
}

// ServerConfig contains HTTP adapter options.
type ServerConfig struct {
	Addr           string `yaml:"addr"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

// Environment variables that override the file.
const (
	EnvStrict   = "JWW2DXF_STRICT"
	EnvLogLevel = "JWW2DXF_LOG_LEVEL"
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Parse: ParseConfig{
			Strict:   false,
			StopRule: "auto",
		},
		Convert: ConvertConfig{
			UnitScale:         1,
			DefaultTextHeight: 2.5,
		},
		Output: OutputConfig{
			Precision:   6,
			ACADVersion: "AC1015",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			MaxUploadBytes: 32 << 20,
		},
	}
}

// ApplyEnv overrides values from the environment.
func (c *Config) ApplyEnv() {
	if GetEnvOrDefault(EnvStrict, "") != "" {
		c.Parse.Strict = GetEnvBool(EnvStrict)
	}
	c.Log.Level = GetEnvOrDefault(EnvLogLevel, c.Log.Level)
}

var (
	stopRules    = []string{"auto", "count", "eof"}
	acadVersions = []string{"AC1009", "AC1015", "AC1018", "AC1021"}
	logLevels    = []string{"debug", "info", "warn", "error"}
	logFormats   = []string{"console", "json"}
)

// Validate checks that every value is usable.
func (c *Config) Validate() error {
	if c.Parse.StopRule != "" && !contains(stopRules, c.Parse.StopRule) {
		return fmt.Errorf("parse.stop_rule must be one of %s, got %q", strings.Join(stopRules, ", "), c.Parse.StopRule)
	}
	if c.Convert.UnitScale <= 0 {
		return fmt.Errorf("convert.unit_scale must be positive, got %g", c.Convert.UnitScale)
	}
	if c.Convert.DefaultTextHeight <= 0 {
		return fmt.Errorf("convert.default_text_height must be positive, got %g", c.Convert.DefaultTextHeight)
	}
	if c.Output.Precision < 0 || c.Output.Precision > 16 {
		return fmt.Errorf("output.precision must be between 0 and 16, got %d", c.Output.Precision)
	}
	if !contains(acadVersions, c.Output.ACADVersion) {
		return fmt.Errorf("output.acad_version must be one of %s, got %q", strings.Join(acadVersions, ", "), c.Output.ACADVersion)
	}
	if !contains(logLevels, c.Log.Level) {
		return fmt.Errorf("log.level must be one of %s, got %q", strings.Join(logLevels, ", "), c.Log.Level)
	}
	if !contains(logFormats, c.Log.Format) {
		return fmt.Errorf("log.format must be one of %s, got %q", strings.Join(logFormats, ", "), c.Log.Format)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be positive, got %d", c.Server.MaxUploadBytes)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// setters maps dotted keys to functions that parse and assign a value.
var setters = map[string]func(c *Config, v string) error{
	"parse.strict":    func(c *Config, v string) error { return setBool(&c.Parse.Strict, v) },
	"parse.stop_rule": func(c *Config, v string) error { c.Parse.StopRule = v; return nil },

	"convert.unit_scale":               func(c *Config, v string) error { return setFloat(&c.Convert.UnitScale, v) },
	"convert.flip_y":                   func(c *Config, v string) error { return setBool(&c.Convert.FlipY, v) },
	"convert.default_text_height":      func(c *Config, v string) error { return setFloat(&c.Convert.DefaultTextHeight, v) },
	"convert.include_temporary_points": func(c *Config, v string) error { return setBool(&c.Convert.IncludeTemporaryPoints, v) },

	"output.precision":    func(c *Config, v string) error { return setInt(&c.Output.Precision, v) },
	"output.acad_version": func(c *Config, v string) error { c.Output.ACADVersion = strings.ToUpper(v); return nil },

	"log.level":  func(c *Config, v string) error { c.Log.Level = strings.ToLower(v); return nil },
	"log.format": func(c *Config, v string) error { c.Log.Format = strings.ToLower(v); return nil },

	"server.addr": func(c *Config, v string) error { c.Server.Addr = v; return nil },
	"server.max_upload_bytes": func(c *Config, v string) error {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer: %s", v)
		}
		c.Server.MaxUploadBytes = n
		return nil
	},
}

// Keys returns every key accepted by Set (sorted).
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set assigns a value by dotted key, e.g. "convert.flip_y", and validates
// the result. On error the config is left unchanged.
func (c *Config) Set(key, value string) error {
	set, ok := setters[key]
	if !ok {
		return fmt.Errorf("unknown config key: %s", key)
	}
	next := *c
	if err := set(&next, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

func setBool(dst *bool, v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid boolean: %s", v)
	}
	*dst = b
	return nil
}

func setFloat(dst *float64, v string) error {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid number: %s", v)
	}
	*dst = f
	return nil
}

func setInt(dst *int, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid integer: %s", v)
	}
	*dst = n
	return nil
}
