package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Ntfy contains the notification server settings.
type Ntfy struct {
	ServerHost     string `toml:"server_host" json:"server_host"`
	Topic          string `toml:"topic" json:"topic"`
	RequestTimeout int    `toml:"request_timeout" json:"request_timeout"`
	UserAgent      string `toml:"user_agent" json:"user_agent"`
}

// Message contains the default notification content.
type Message struct {
	Body      string `toml:"body" json:"body"`
	Title     string `toml:"title" json:"title"`
	Priority  string `toml:"priority" json:"priority"`
	Tags      string `toml:"tags" json:"tags"`
	Markdown  bool   `toml:"markdown" json:"markdown"`
	ExpandEnv bool   `toml:"expand_env" json:"expand_env"`
}

// Logging contains configuration for structured log output.
type Logging struct {
	Format string `toml:"format" json:"format"`
	Level  string `toml:"level" json:"level"`
	Dir    string `toml:"dir" json:"dir"`
}

// Config encapsulates all configuration values for ntfystep.
//
// Configuration sections:
//   - Ntfy: server host, topic, and HTTP client settings
//   - Message: default body, title, priority, tags, and markdown flag
//   - Logging: structured log format, level, and optional log directory
type Config struct {
	Ntfy    Ntfy    `toml:"ntfy" json:"ntfy"`
	Message Message `toml:"message" json:"message"`
	Logging Logging `toml:"logging" json:"logging"`
}

// DefaultConfigPath returns the absolute path of the per-user config file.
func DefaultConfigPath() (string, error) {
	return ExpandPath(defaultConfigPath)
}

// Load reads the config file at path, or the first existing candidate when
// path is empty, then applies environment fallbacks and validates the result.
// It returns the path that was consulted and whether a file was found there.
// A missing file is not an error; defaults are used instead.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolved, found, err := locate(path)
	if err != nil {
		return nil, "", false, err
	}
	if found {
		if err := decodeFile(resolved, &cfg); err != nil {
			return nil, "", false, err
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, found, nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("parse config %s:%d:%d: %w", path, row, col, err)
		}
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// locate resolves an explicit path, or walks the user and project
// candidates in order. With no match it reports the user path as not found.
func locate(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		found, err := isFile(expanded)
		if err != nil {
			return "", false, err
		}
		return expanded, found, nil
	}

	candidates := []string{defaultConfigPath, projectConfigName}
	resolved := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		expanded, err := ExpandPath(candidate)
		if err != nil {
			return "", false, err
		}
		resolved = append(resolved, expanded)
		if found, _ := isFile(expanded); found {
			return expanded, true, nil
		}
	}
	return resolved[0], false, nil
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("stat config: %w", err)
	case info.IsDir():
		return false, fmt.Errorf("config path %s is a directory", path)
	}
	return true, nil
}

// EnsureDirectories creates the log directory when one is configured.
func (c *Config) EnsureDirectories() error {
	if c.Logging.Dir == "" {
		return nil
	}
	if err := os.MkdirAll(c.Logging.Dir, 0o755); err != nil {
		return fmt.Errorf("create log directory %q: %w", c.Logging.Dir, err)
	}
	return nil
}

// RequestTimeout returns the HTTP client timeout for notification requests.
func (c *Config) RequestTimeout() time.Duration {
	if c.Ntfy.RequestTimeout <= 0 {
		return defaultRequestTimeout * time.Second
	}
	return time.Duration(c.Ntfy.RequestTimeout) * time.Second
}

// ExpandPath resolves a leading ~ to the home directory and returns an
// absolute, cleaned path. An empty value stays empty.
func ExpandPath(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if value == "~" || strings.HasPrefix(value, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		value = filepath.Join(home, strings.TrimPrefix(value, "~"))
	}
	abs, err := filepath.Abs(value)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", value, err)
	}
	return abs, nil
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
