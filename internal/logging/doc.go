// Package logging assembles structured slog loggers and formatting helpers used
// across ntfystep.
//
// It owns the configurable console/JSON handlers and centralizes level and
// output plumbing. Structured logs are diagnostics for operators; the build log
// a CI step prints for humans is written separately by the caller. The package
// also provides a no-op logger for tests and wiring code that cannot fail.
package logging
