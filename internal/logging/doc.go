// Package logging assembles the structured slog loggers used by the converter
// and the CLI.
//
// It owns the console and JSON handlers, level and output plumbing, the
// standard field keys (component, file, texture, pack, run_id), and a no-op
// logger for tests and wiring code that cannot fail. Conversion runs stamp
// their run ID on every line through WithRunID.
package logging
