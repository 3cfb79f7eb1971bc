// Package main hosts the ntfystep CLI entrypoint and command graph.
//
// The Cobra-based command tree turns a CI step invocation into one ntfy
// notification: it resolves configuration from flags, the environment, and an
// optional TOML file, prints the build log lines to stdout, and keeps
// structured diagnostics on stderr. Helper commands validate configuration,
// check step fields, and probe the server before a pipeline relies on it.
//
// Keep this package lean: behaviour lives in the internal packages and is only
// surfaced here through commands and flags.
package main
