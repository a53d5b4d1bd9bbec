// Package logging provides structured logging utilities for hostfetch.
//
// # Overview
//
// This package wraps the standard library slog package with project defaults:
// JSON records on stderr, a module/version context, environment-based level
// selection and source locations for debug logs.
//
// stdout belongs to the report. Diagnostics never go there, and the report
// command runs with logging off unless --log-level or LOG_LEVEL asks for it.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: adapter decisions, cache hits and misses, with source location
//   - INFO: run summaries
//   - WARN/WARNING: best-effort operations that failed (cache writes)
//   - ERROR: failures outside the collection core
//   - OFF/NONE: discard everything
//
// # Usage
//
//	func main() {
//	    logging.SetDefaultStructuredLoggerWithLevel("hostfetch", "v1.0.0", "debug")
//	    slog.Debug("adapter finished", "kind", "cpu", "status", "ok")
//	}
//
// # Environment Configuration
//
//	LOG_LEVEL=debug hostfetch
//
// # Output Format
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "DEBUG",
//	    "msg": "cache hit",
//	    "module": "hostfetch",
//	    "version": "v1.0.0",
//	    "kind": "packages"
//	}
package logging
