package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = ".jww2dxf"
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "config.yaml"
)

// envVarPattern matches ${VAR_NAME} patterns.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Loader handles configuration loading and saving.
type Loader struct {
	configDir  string
	configPath string
}

// NewLoader creates a new configuration loader.
func NewLoader() (*Loader, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ConfigDirName)
	configPath := filepath.Join(configDir, ConfigFileName)

	return &Loader{
		configDir:  configDir,
		configPath: configPath,
	}, nil
}

// NewLoaderWithPath creates a loader with a custom config path.
func NewLoaderWithPath(configPath string) *Loader {
	return &Loader{
		configDir:  filepath.Dir(configPath),
		configPath: configPath,
	}
}

// ConfigPath returns the configuration file path.
func (l *Loader) ConfigPath() string {
	return l.configPath
}

// Load returns the effective configuration: defaults, then the file with
// ${VAR} references expanded, then the JWW2DXF_* environment overrides. The
// result is validated. A missing file is not an error.
func (l *Loader) Load() (*Config, error) {
	cfg, err := l.decode(true)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		if l.Exists() {
			return nil, fmt.Errorf("invalid config %s: %w", l.configPath, err)
		}
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadRaw returns defaults overlaid with the file as written: no expansion,
// no environment overrides and no validation. config set edits this view so
// that ${VAR} references survive a save.
func (l *Loader) LoadRaw() (*Config, error) {
	return l.decode(false)
}

func (l *Loader) decode(expand bool) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(l.configPath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	text := string(data)
	if expand {
		text = expandEnvVars(text)
	}
	// Unmarshal over the defaults so a partial file keeps the other values
	if err := yaml.Unmarshal([]byte(text), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", l.configPath, err)
	}
	return cfg, nil
}

// Save writes cfg to the file, replacing it in one rename so a failed write
// never leaves a half-written config behind.
func (l *Loader) Save(cfg *Config) error {
	if err := os.MkdirAll(l.configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmp, err := os.CreateTemp(l.configDir, ConfigFileName+".*")
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	if err := os.Rename(tmp.Name(), l.configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Exists checks if the configuration file exists.
func (l *Loader) Exists() bool {
	_, err := os.Stat(l.configPath)
	return err == nil
}

// Init creates a default configuration file.
func (l *Loader) Init() error {
	if l.Exists() {
		return fmt.Errorf("config file already exists: %s", l.configPath)
	}
	return l.Save(DefaultConfig())
}

// expandEnvVars replaces ${VAR_NAME} with environment variable values.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// unset variables expand to ""
		return os.Getenv(envVarPattern.FindStringSubmatch(match)[1])
	})
}

// GetEnvOrDefault returns the environment variable value or a default.
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvBool returns true if the environment variable is set to "true" or "1".
func GetEnvBool(key string) bool {
	value := strings.ToLower(os.Getenv(key))
	return value == "true" || value == "1" || value == "yes"
}
