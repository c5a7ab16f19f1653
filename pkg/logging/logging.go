// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
)

const envLogLevel = "GOATD_LOG_LEVEL"

// ParseLevel parses a case-insensitive log level string. Unrecognized
// values fall back to slog.LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewStructuredLogger returns a JSON slog.Logger writing to stderr with
// module/version context and, at debug level, source location tracking.
func NewStructuredLogger(module, version, level string) *slog.Logger {
	return newStructuredLoggerTo(os.Stderr, module, version, ParseLevel(level))
}

func newStructuredLoggerTo(w io.Writer, module, version string, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	})
	logger := slog.New(handler)
	if module != "" {
		logger = logger.With("module", module)
	}
	if version != "" {
		logger = logger.With("version", version)
	}
	return logger
}

// SetDefaultStructuredLogger installs a structured logger as slog's
// default, taking the level from GOATD_LOG_LEVEL (default INFO).
func SetDefaultStructuredLogger(module, version string) {
	SetDefaultStructuredLoggerWithLevel(module, version, os.Getenv(envLogLevel))
}

// SetDefaultStructuredLoggerWithLevel installs a structured logger as
// slog's default using an explicit level string, overriding any
// GOATD_LOG_LEVEL environment setting.
func SetDefaultStructuredLoggerWithLevel(module, version, level string) {
	if level == "" {
		level = os.Getenv(envLogLevel)
	}
	slog.SetDefault(NewStructuredLogger(module, version, level))
}

// NewLogLogger adapts slog's default logger to the standard library's
// *log.Logger, for dependencies that only accept the legacy interface.
func NewLogLogger(level slog.Level, addSource bool) *log.Logger {
	return slog.NewLogLogger(slog.Default().Handler(), level)
}
