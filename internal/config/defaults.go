package config

const (
	defaultConfigPath     = "~/.config/ntfystep/config.toml"
	projectConfigName     = "ntfystep.toml"
	defaultServerHost     = "ntfy.sh"
	defaultRequestTimeout = 10
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Version is the ntfystep release version.
const Version = "0.1.0"

// DefaultUserAgent identifies ntfystep to notification servers.
const DefaultUserAgent = "ntfystep/" + Version

// Default returns a Config populated with repository defaults. The server
// host is left empty so environment fallbacks can fill it; normalize applies
// ntfy.sh when nothing else does.
func Default() Config {
	return Config{
		Ntfy: Ntfy{
			RequestTimeout: defaultRequestTimeout,
			UserAgent:      DefaultUserAgent,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
