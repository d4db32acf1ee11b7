// Package config resolves roster's settings from flags, the environment, an optional
// .env file and an optional YAML file, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"roster-cli/internal/store"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	DefaultAPIURL  = "http://localhost:3000/api"
	DefaultLevel   = "info"
	DefaultTheme   = "auto"
	FileName       = "config.yaml"
	DefaultEnvFile = ".env"
	LogFileName    = "roster.log"
)

const (
	EnvAPIURL     = "ROSTER_API_URL"
	EnvAPITimeout = "ROSTER_API_TIMEOUT"
	EnvLogFile    = "ROSTER_LOG_FILE"
	EnvLogLevel   = "ROSTER_LOG_LEVEL"
	EnvStateDir   = "ROSTER_STATE_DIR"
	EnvTheme      = "ROSTER_TUI_THEME"
)

type Config struct {
	API APIConfig `yaml:"api"`
	Log LogConfig `yaml:"log"`
	TUI TUIConfig `yaml:"tui"`

	// StateDir holds state.json, bookmarks.sqlite, the log file and config.yaml.
	StateDir string `yaml:"-"`
	// Source is the YAML file that was read, if any.
	Source string `yaml:"-"`
}

type APIConfig struct {
	URL        string        `yaml:"url"`
	Timeout    time.Duration `yaml:"-"`
	TimeoutRaw string        `yaml:"timeout"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

type TUIConfig struct {
	// Theme is one of: auto|dark|light
	Theme string `yaml:"theme"`
}

// Overrides are flag values. Empty fields do not override anything.
type Overrides struct {
	ConfigPath string
	EnvFile    string
	StateDir   string
	APIURL     string
	APITimeout string
	LogFile    string
	LogLevel   string
	Theme      string
}

// Load resolves the configuration. A missing default YAML or .env file is not an error;
// a missing file named explicitly through Overrides is.
func Load(o Overrides) (*Config, error) {
	lookup, err := envLookup(o.EnvFile)
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	cfg.StateDir = firstNonEmpty(o.StateDir, lookup(EnvStateDir))
	if cfg.StateDir == "" {
		dir, err := store.ConfigDir()
		if err != nil {
			return nil, fmt.Errorf("config: resolve state dir: %w", err)
		}
		cfg.StateDir = dir
	}

	path := strings.TrimSpace(o.ConfigPath)
	explicit := path != ""
	if !explicit {
		path = filepath.Join(cfg.StateDir, FileName)
	}
	if err := cfg.readYAML(path, explicit); err != nil {
		return nil, err
	}

	cfg.API.URL = firstNonEmpty(o.APIURL, lookup(EnvAPIURL), cfg.API.URL)
	cfg.API.TimeoutRaw = firstNonEmpty(o.APITimeout, lookup(EnvAPITimeout), cfg.API.TimeoutRaw)
	cfg.Log.File = firstNonEmpty(o.LogFile, lookup(EnvLogFile), cfg.Log.File)
	cfg.Log.Level = firstNonEmpty(o.LogLevel, lookup(EnvLogLevel), cfg.Log.Level)
	cfg.TUI.Theme = firstNonEmpty(o.Theme, lookup(EnvTheme), cfg.TUI.Theme)

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readYAML(path string, required bool) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("config: read file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("config: parse yaml %s: %w", path, err)
	}
	c.Source = path
	return nil
}

func (c *Config) validateAndNormalize() error {
	c.StateDir = filepath.Clean(c.StateDir)

	c.API.URL = strings.TrimRight(strings.TrimSpace(c.API.URL), "/")
	if c.API.URL == "" {
		c.API.URL = DefaultAPIURL
	}
	u, err := url.Parse(c.API.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("config: api.url must be an http(s) url, got %q", c.API.URL)
	}

	timeout, err := parseDurationAllowEmpty(c.API.TimeoutRaw)
	if err != nil {
		return fmt.Errorf("config: api.timeout: %w", err)
	}
	if timeout < 0 {
		return fmt.Errorf("config: api.timeout must not be negative")
	}
	c.API.Timeout = timeout

	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = DefaultLevel
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	c.Log.File = strings.TrimSpace(c.Log.File)
	if c.Log.File == "" {
		c.Log.File = filepath.Join(c.StateDir, LogFileName)
	}

	c.TUI.Theme = strings.ToLower(strings.TrimSpace(c.TUI.Theme))
	switch c.TUI.Theme {
	case "":
		c.TUI.Theme = DefaultTheme
	case "auto", "dark", "light":
	default:
		return fmt.Errorf("config: tui.theme must be auto, dark or light, got %q", c.TUI.Theme)
	}
	return nil
}

// LogLevel is the parsed log level; Load has already validated it.
func (c *Config) LogLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// envLookup reads the process environment first and falls back to the .env file.
func envLookup(envFile string) (func(string) string, error) {
	path := strings.TrimSpace(envFile)
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}
	dotenv, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			dotenv = map[string]string{}
		} else {
			return nil, fmt.Errorf("config: read env file %s: %w", path, err)
		}
	}
	return func(key string) string {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
		return strings.TrimSpace(dotenv[key])
	}, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func parseDurationAllowEmpty(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return time.ParseDuration(raw)
}
