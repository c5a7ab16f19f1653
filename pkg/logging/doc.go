// Package logging provides structured logging utilities for goatd components.
//
// # Overview
//
// This package wraps the standard library slog package with goatd-specific
// defaults and conventions for consistent logging across the orchestrator,
// the patchers, the executor, and the CLI. It supports environment-based
// log level configuration, module/version context injection, and automatic
// source location tracking for debug logs.
//
// # Features
//
//   - Structured JSON logging to stderr
//   - Environment-based log level configuration (GOATD_LOG_LEVEL)
//   - Automatic module and version context
//   - Source location tracking for debug logs
//   - Flexible log level parsing
//   - Integration with standard library log package
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("goatd", "v1.0.0")
//	    defer slog.Info("application started")
//
//	    // Use slog as normal
//	    slog.Info("phase entered", "phase", "Patching")
//	    slog.Debug("detailed state", "data", complexObject)
//	    slog.Error("patch failed", "error", err)
//	}
//
// Creating a custom logger:
//
//	logger := logging.NewStructuredLogger("executor", "v2.0.0", "debug")
//	logger.Info("spawning packager")
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("cli", "v1.0.0", "warn")
//
// Converting standard library logger:
//
//	stdLogger := logging.NewLogLogger(slog.LevelInfo, false)
//	stdLogger.Println("legacy log message")
//
// # Environment Configuration
//
// SetDefaultStructuredLogger takes its level from the GOATD_LOG_LEVEL
// environment variable; SetDefaultStructuredLoggerWithLevel reads the
// variable only when its level argument is empty. If GOATD_LOG_LEVEL is
// not set either, the level is INFO.
//
// The goatd CLI passes its --log-level flag (default info) to
// SetDefaultStructuredLoggerWithLevel, so on the command line the flag
// sets the level:
//
//	goatd --log-level debug build
//	goatd --log-level error validate
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2026-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "phase entered",
//	    "module": "orchestrator",
//	    "version": "v1.0.0",
//	    "phase": "Patching"
//	}
//
// Debug logs include source location:
//
//	{
//	    "time": "2026-01-15T10:30:00.123Z",
//	    "level": "DEBUG",
//	    "source": {
//	        "function": "executor.run",
//	        "file": "executor.go",
//	        "line": 45
//	    },
//	    "msg": "spawning packager",
//	    "module": "executor",
//	    "version": "v1.0.0"
//	}
//
// # Integration
//
// This package is used by:
//   - pkg/cli - CLI command logging
//   - pkg/orchestrator - phase transition logging
//   - pkg/executor - packager child process logging
//   - pkg/recipe, pkg/kconfig - patch pass logging
//
// All components share consistent logging format and configuration; the
// dispatch subsystem (see pkg/logging/dispatch) is a separate concern from
// this package — this package is the facade each goroutine logs through,
// dispatch is the per-build session sink that also persists build output
// to disk.
package logging
