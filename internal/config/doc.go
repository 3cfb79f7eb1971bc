// Package config loads, normalizes, and validates ntfystep configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// NTFY_TOPIC or the PLUGIN_* variables a CI runner sets for container steps.
// The Config type centralizes every knob the CLI needs so the notification
// request and the logging setup are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// a bare server host, canonical log formats, and clear validation errors.
package config
