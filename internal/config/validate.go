package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. It does not require a topic;
// commands that send call ValidateDispatch once flags have been applied.
func (c *Config) Validate() error {
	if err := c.validateNtfy(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

// ValidateDispatch checks the fields a notification request cannot go without.
func (c *Config) ValidateDispatch() error {
	if strings.TrimSpace(c.Ntfy.ServerHost) == "" {
		return errors.New("ntfy.server_host must be set (or export NTFY_SERVER)")
	}
	if strings.TrimSpace(c.Ntfy.Topic) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = defaultConfigPath
		}
		return fmt.Errorf("ntfy.topic is required. Pass --topic, set NTFY_TOPIC, or edit %s (create with 'ntfystep config init')", defaultPath)
	}
	return nil
}

func (c *Config) validateNtfy() error {
	if c.Ntfy.RequestTimeout <= 0 {
		return errors.New("ntfy.request_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}
