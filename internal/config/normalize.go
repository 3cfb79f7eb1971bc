package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment variables consulted when the matching config field is empty.
// NTFY_* names come first; PLUGIN_* names are what container-based CI runners
// export for step settings.
var (
	envServerHost = []string{"NTFY_SERVER", "PLUGIN_SERVER_URL", "PLUGIN_SERVER"}
	envTopic      = []string{"NTFY_TOPIC", "PLUGIN_TOPIC"}
	envMessage    = []string{"NTFY_MESSAGE", "PLUGIN_MESSAGE"}
	envTitle      = []string{"NTFY_TITLE", "PLUGIN_TITLE"}
	envPriority   = []string{"NTFY_PRIORITY", "PLUGIN_PRIORITY"}
	envTags       = []string{"NTFY_TAGS", "PLUGIN_TAGS"}
	envMarkdown   = []string{"NTFY_MARKDOWN", "PLUGIN_MARKDOWN"}
	envExpandEnv  = []string{"NTFY_EXPAND_ENV", "PLUGIN_EXPAND_ENV"}
)

// EnvNames lists every environment variable Load consults, in lookup order.
func EnvNames() []string {
	var names []string
	for _, group := range [][]string{envServerHost, envTopic, envMessage, envTitle, envPriority, envTags, envMarkdown, envExpandEnv} {
		names = append(names, group...)
	}
	return names
}

func (c *Config) normalize() error {
	if err := c.normalizeNtfy(); err != nil {
		return err
	}
	if err := c.normalizeMessage(); err != nil {
		return err
	}
	return c.normalizeLogging()
}

func (c *Config) normalizeNtfy() error {
	c.Ntfy.ServerHost = NormalizeServerHost(fallbackEnv(c.Ntfy.ServerHost, envServerHost))
	if c.Ntfy.ServerHost == "" {
		c.Ntfy.ServerHost = defaultServerHost
	}
	c.Ntfy.Topic = strings.TrimSpace(fallbackEnv(c.Ntfy.Topic, envTopic))
	c.Ntfy.UserAgent = strings.TrimSpace(c.Ntfy.UserAgent)
	if c.Ntfy.UserAgent == "" {
		c.Ntfy.UserAgent = DefaultUserAgent
	}
	return nil
}

func (c *Config) normalizeMessage() error {
	// The body is sent byte-for-byte, so it is never trimmed.
	c.Message.Body = fallbackEnv(c.Message.Body, envMessage)
	c.Message.Title = strings.TrimSpace(fallbackEnv(c.Message.Title, envTitle))
	c.Message.Priority = strings.TrimSpace(fallbackEnv(c.Message.Priority, envPriority))
	c.Message.Tags = strings.TrimSpace(fallbackEnv(c.Message.Tags, envTags))

	var err error
	if c.Message.Markdown, err = overrideBoolEnv(c.Message.Markdown, envMarkdown); err != nil {
		return err
	}
	if c.Message.ExpandEnv, err = overrideBoolEnv(c.Message.ExpandEnv, envExpandEnv); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) == "" {
		c.Logging.Dir = ""
		return nil
	}
	var err error
	if c.Logging.Dir, err = ExpandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}

// NormalizeServerHost reduces a configured server to the bare host form used
// in https://{host}/{topic}. A leading scheme and trailing slashes are removed;
// anything else, including a port or path prefix, is kept as written.
func NormalizeServerHost(value string) string {
	host := strings.TrimSpace(value)
	lower := strings.ToLower(host)
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(lower, scheme) {
			host = host[len(scheme):]
			break
		}
	}
	return strings.TrimRight(host, "/")
}

func fallbackEnv(current string, names []string) string {
	if strings.TrimSpace(current) != "" {
		return current
	}
	for _, name := range names {
		if value, ok := os.LookupEnv(name); ok && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return current
}

func overrideBoolEnv(current bool, names []string) (bool, error) {
	for _, name := range names {
		value, ok := os.LookupEnv(name)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		parsed, err := ParseBool(value)
		if err != nil {
			return current, fmt.Errorf("%s: %w", name, err)
		}
		return parsed, nil
	}
	return current, nil
}

// ParseBool accepts the usual strconv forms plus yes/no and on/off.
func ParseBool(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	parsed, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q", value)
	}
	return parsed, nil
}
