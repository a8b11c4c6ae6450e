package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Parse.StopRule != "auto" {
		t.Errorf("expected stop rule 'auto', got %s", cfg.Parse.StopRule)
	}
	if cfg.Convert.UnitScale != 1 {
		t.Errorf("expected unit scale 1, got %v", cfg.Convert.UnitScale)
	}
	if cfg.Output.Precision != 6 {
		t.Errorf("expected precision 6, got %d", cfg.Output.Precision)
	}
	if cfg.Output.ACADVersion != "AC1015" {
		t.Errorf("expected AC1015, got %s", cfg.Output.ACADVersion)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config to be valid, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"stop rule", func(c *Config) { c.Parse.StopRule = "sometimes" }, "parse.stop_rule"},
		{"unit scale", func(c *Config) { c.Convert.UnitScale = 0 }, "convert.unit_scale"},
		{"text height", func(c *Config) { c.Convert.DefaultTextHeight = -1 }, "convert.default_text_height"},
		{"precision", func(c *Config) { c.Output.Precision = 20 }, "output.precision"},
		{"acad version", func(c *Config) { c.Output.ACADVersion = "AC1032" }, "output.acad_version"},
		{"log level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"upload limit", func(c *Config) { c.Server.MaxUploadBytes = 0 }, "server.max_upload_bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("expected error to name %s, got %v", tt.field, err)
			}
		})
	}
}

func TestConfig_Set(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Set("convert.flip_y", "true"); err != nil {
		t.Fatalf("failed to set flip_y: %v", err)
	}
	if !cfg.Convert.FlipY {
		t.Error("expected flip_y to be true")
	}

	if err := cfg.Set("output.acad_version", "ac1021"); err != nil {
		t.Fatalf("failed to set acad_version: %v", err)
	}
	if cfg.Output.ACADVersion != "AC1021" {
		t.Errorf("expected AC1021, got %s", cfg.Output.ACADVersion)
	}

	if err := cfg.Set("server.max_upload_bytes", "1024"); err != nil {
		t.Fatalf("failed to set max_upload_bytes: %v", err)
	}
	if cfg.Server.MaxUploadBytes != 1024 {
		t.Errorf("expected 1024, got %d", cfg.Server.MaxUploadBytes)
	}

	if err := cfg.Set("convert.unit_scale", "-2"); err == nil {
		t.Error("expected error for negative unit scale")
	}
	if cfg.Convert.UnitScale != 1 {
		t.Errorf("expected unit scale to stay 1 after a failed set, got %v", cfg.Convert.UnitScale)
	}

	if err := cfg.Set("output.precision", "many"); err == nil {
		t.Error("expected error for non-numeric precision")
	}
	if err := cfg.Set("providers.openai", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	if len(keys) != 12 {
		t.Errorf("expected 12 keys, got %d", len(keys))
	}
	if keys[0] != "convert.default_text_height" {
		t.Errorf("expected sorted keys, got %s first", keys[0])
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	t.Setenv(EnvStrict, "yes")
	t.Setenv(EnvLogLevel, "debug")

	cfg := DefaultConfig()
	cfg.ApplyEnv()

	if !cfg.Parse.Strict {
		t.Error("expected strict mode from environment")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Log.Level)
	}
}

func TestConfig_ApplyEnvUnset(t *testing.T) {
	os.Unsetenv(EnvStrict)
	os.Unsetenv(EnvLogLevel)

	cfg := DefaultConfig()
	cfg.Parse.Strict = true
	cfg.ApplyEnv()

	if !cfg.Parse.Strict {
		t.Error("expected unset variable to keep the file value")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected log level 'warn', got %s", cfg.Log.Level)
	}
}

func TestLoader_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	loader := NewLoaderWithPath(configPath)

	cfg := DefaultConfig()
	cfg.Convert.UnitScale = 0.001
	cfg.Output.ACADVersion = "AC1018"

	if err := loader.Save(cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	if !loader.Exists() {
		t.Error("expected config file to exist after save")
	}

	loaded, err := loader.LoadRaw()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Convert.UnitScale != 0.001 {
		t.Errorf("expected unit scale 0.001, got %v", loaded.Convert.UnitScale)
	}
	if loaded.Output.ACADVersion != "AC1018" {
		t.Errorf("expected AC1018, got %s", loaded.Output.ACADVersion)
	}
}

func TestLoader_LoadNonExistent(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nonexistent", "config.yaml")

	loader := NewLoaderWithPath(configPath)

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("expected no error for non-existent file, got: %v", err)
	}

	if cfg.Output.Precision != 6 {
		t.Errorf("expected default precision 6, got %d", cfg.Output.Precision)
	}
}

func TestLoader_LoadPartial(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := "convert:\n  flip_y: true\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := NewLoaderWithPath(configPath).Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if !cfg.Convert.FlipY {
		t.Error("expected flip_y from file")
	}
	if cfg.Convert.UnitScale != 1 || cfg.Server.Addr != ":8080" {
		t.Errorf("expected defaults for missing values, got %+v", cfg)
	}
}

func TestLoader_ExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_JWW_ADDR", "127.0.0.1:9000")

	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `server:
  addr: ${TEST_JWW_ADDR}
  max_upload_bytes: 1000
output:
  precision: 3
  acad_version: AC1009
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	loader := NewLoaderWithPath(configPath)
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("expected addr '127.0.0.1:9000', got %s", cfg.Server.Addr)
	}
	if cfg.Output.Precision != 3 {
		t.Errorf("expected precision 3, got %d", cfg.Output.Precision)
	}
}

func TestLoader_LoadInvalidValue(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("log:\n  level: loud\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := NewLoaderWithPath(configPath).Load(); err == nil {
		t.Error("expected error for invalid log level")
	}
}

func TestLoader_LoadAppliesEnv(t *testing.T) {
	t.Setenv(EnvStrict, "true")
	t.Setenv(EnvLogLevel, "error")

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := "parse:\n  strict: false\nlog:\n  level: info\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	loader := NewLoaderWithPath(configPath)

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if !cfg.Parse.Strict {
		t.Error("expected JWW2DXF_STRICT to override the file")
	}
	if cfg.Log.Level != "error" {
		t.Errorf("expected log level 'error', got %s", cfg.Log.Level)
	}

	raw, err := loader.LoadRaw()
	if err != nil {
		t.Fatalf("failed to load raw config: %v", err)
	}
	if raw.Parse.Strict || raw.Log.Level != "info" {
		t.Errorf("expected raw config to keep file values, got strict=%v level=%s", raw.Parse.Strict, raw.Log.Level)
	}
}

func TestLoader_LoadRejectsInvalidEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "loud")

	_, err := NewLoaderWithPath(filepath.Join(t.TempDir(), "config.yaml")).Load()
	if err == nil {
		t.Fatal("expected error for invalid JWW2DXF_LOG_LEVEL")
	}
	if !strings.Contains(err.Error(), "log.level") {
		t.Errorf("expected error to name log.level, got %v", err)
	}
}

func TestLoader_SaveLeavesNoTempFiles(t *testing.T) {
	tmpDir := t.TempDir()
	loader := NewLoaderWithPath(filepath.Join(tmpDir, "config.yaml"))

	for i := 0; i < 2; i++ {
		if err := loader.Save(DefaultConfig()); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "config.yaml" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only config.yaml, got %v", names)
	}
}

func TestGetEnvOrDefault(t *testing.T) {
	os.Setenv("TEST_VAR", "test-value")
	defer os.Unsetenv("TEST_VAR")

	if v := GetEnvOrDefault("TEST_VAR", "default"); v != "test-value" {
		t.Errorf("expected 'test-value', got %s", v)
	}

	if v := GetEnvOrDefault("NONEXISTENT_VAR", "default"); v != "default" {
		t.Errorf("expected 'default', got %s", v)
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"true", true},
		{"TRUE", true},
		{"1", true},
		{"yes", true},
		{"false", false},
		{"0", false},
		{"no", false},
		{"", false},
		{"invalid", false},
	}

	for _, tc := range tests {
		os.Setenv("TEST_BOOL", tc.value)
		got := GetEnvBool("TEST_BOOL")
		if got != tc.expected {
			t.Errorf("GetEnvBool(%q): expected %v, got %v", tc.value, tc.expected, got)
		}
	}
	os.Unsetenv("TEST_BOOL")
}

func TestNewLoader(t *testing.T) {
	loader, err := NewLoader()
	if err != nil {
		t.Fatalf("failed to create loader: %v", err)
	}

	path := loader.ConfigPath()
	if filepath.Base(path) != ConfigFileName {
		t.Errorf("expected config file name %s, got %s", ConfigFileName, filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != ConfigDirName {
		t.Errorf("expected config dir %s, got %s", ConfigDirName, filepath.Dir(path))
	}
}

func TestLoader_Init(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	loader := NewLoaderWithPath(configPath)

	if err := loader.Init(); err != nil {
		t.Fatalf("failed to init config: %v", err)
	}

	if !loader.Exists() {
		t.Error("expected config file to exist after init")
	}

	if err := loader.Init(); err == nil {
		t.Error("expected error when initializing existing config")
	}
}

func TestLoader_LoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	if err := os.WriteFile(configPath, []byte("{{{{invalid yaml"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	loader := NewLoaderWithPath(configPath)
	if _, err := loader.Load(); err == nil {
		t.Error("expected error for invalid YAML")
	}
}
