package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	kerrors "github.com/khel-store/khel/internal/errors"
)

// Deployment modes. In production the client talks to the origin that serves
// the store itself under a relative /api path; in development it targets an
// explicit host:port.
const (
	ModeProduction  = "production"
	ModeDevelopment = "development"
)

const (
	defaultDevServer  = "http://localhost:8080"
	defaultProdServer = "https://khel.store"
	defaultBasePath   = "/api"

	// DefaultTimeoutSeconds is applied to every outbound request. The remote
	// service defines no timeout of its own; 30s keeps a hung request from
	// pinning the terminal forever.
	DefaultTimeoutSeconds = 30
)

// Config holds the khel client configuration.
type Config struct {
	// Mode is the deployment mode: production or development
	Mode string `yaml:"mode"`

	// Server is the origin the API is reached through
	Server string `yaml:"server"`

	// BasePath is the API prefix on the server (default /api)
	BasePath string `yaml:"base_path"`

	// TimeoutSeconds is the per-request timeout
	TimeoutSeconds int `yaml:"timeout_seconds"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level"`

	// LogFormat is one of text, json
	LogFormat string `yaml:"log_format"`
}

// Default returns the development-mode defaults.
func Default() Config {
	return Config{
		Mode:           ModeDevelopment,
		Server:         defaultDevServer,
		BasePath:       defaultBasePath,
		TimeoutSeconds: DefaultTimeoutSeconds,
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Dir returns the khel configuration directory (~/.khel).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", kerrors.Wrap(kerrors.ErrCodeConfigNotFound, "find home directory", err)
	}
	return filepath.Join(home, ".khel"), nil
}

// Path returns the config file path (~/.khel/config.yaml).
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file at path, falling back to defaults when the file
// does not exist, then applies KHEL_* environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, kerrors.Wrap(kerrors.ErrCodeConfigUnmarshal,
				fmt.Sprintf("parse config file %s", path), err)
		}
	case os.IsNotExist(err):
		// No file is fine; defaults apply.
	default:
		return Config{}, kerrors.Wrap(kerrors.ErrCodeConfigNotFound,
			fmt.Sprintf("read config file %s", path), err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if cfg.Mode != ModeProduction && cfg.Mode != ModeDevelopment {
		return Config{}, kerrors.New(kerrors.ErrCodeConfigInvalid,
			fmt.Sprintf("unknown mode %q (expected %s or %s)", cfg.Mode, ModeProduction, ModeDevelopment))
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("KHEL_MODE"); v != "" {
		c.Mode = v
	}
	if v := os.Getenv("KHEL_SERVER"); v != "" {
		c.Server = v
	}
	if v := os.Getenv("KHEL_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("KHEL_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("KHEL_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.TimeoutSeconds = n
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeDevelopment
	}
	if c.Server == "" {
		if c.Mode == ModeProduction {
			c.Server = defaultProdServer
		} else {
			c.Server = defaultDevServer
		}
	}
	if c.BasePath == "" {
		c.BasePath = defaultBasePath
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
}

// APIBaseURL resolves the gateway base URL from the deployment mode: the
// configured origin joined with the /api base path.
func (c Config) APIBaseURL() string {
	return strings.TrimRight(c.Server, "/") + c.BasePath
}

// Save writes the config file, creating ~/.khel if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeConfigInvalid, "create config directory", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return kerrors.Wrap(kerrors.ErrCodeConfigInvalid, "marshal config", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeConfigInvalid, "write config file", err)
	}

	return nil
}
