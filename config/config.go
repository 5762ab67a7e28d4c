package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

const (
	// EnvMaxFileBytes is the environment variable name for the file size limit.
	EnvMaxFileBytes = "DOCX2EVERYTHING_MAX_FILE_BYTES"

	// EnvLogLevel selects the slog level for the binaries (debug|info|warn|error).
	EnvLogLevel = "DOCX2EVERYTHING_LOG_LEVEL"

	// EnvOCR enables the Tesseract pass over extracted images.
	EnvOCR = "DOCX2EVERYTHING_OCR"

	// EnvOCRLanguage is the Tesseract language code (empty uses the tesseract default).
	EnvOCRLanguage = "DOCX2EVERYTHING_OCR_LANG"

	// DefaultMaxFileBytes is the default maximum accepted file size (50 MiB).
	DefaultMaxFileBytes int64 = 50 << 20

	// DefaultLogLevel is the log level used when EnvLogLevel is unset.
	DefaultLogLevel = "info"
)

// Config holds runtime configuration sourced from environment variables.
type Config struct {
	MaxFileSizeBytes int64
	LogLevel         string
	EnableOCR        bool
	OCRLanguage      string
}

// MaxFileSizeMB returns the configured limit in whole megabytes.
func (c *Config) MaxFileSizeMB() int64 {
	return c.MaxFileSizeBytes >> 20
}

// SlogLevel maps the configured log level string to a slog.Level.
// Unrecognized values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load reads Config from environment variables, falling back to defaults for
// missing or invalid values.
func Load() *Config {
	cfg := &Config{
		MaxFileSizeBytes: DefaultMaxFileBytes,
		LogLevel:         DefaultLogLevel,
	}
	if v := os.Getenv(EnvMaxFileBytes); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxFileSizeBytes = n
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvOCR); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.EnableOCR = b
		}
	}
	cfg.OCRLanguage = os.Getenv(EnvOCRLanguage)
	return cfg
}
