package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/st4conv/internal/convert"
	"github.com/leapstack-labs/st4conv/internal/export"
)

// ParseLogLevel maps debug|info|warn|error onto a slog level.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("unknown log level %q (valid: debug, info, warn, error)", s)
	}
	return level, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if _, err := export.ParseFormat(c.Format); err != nil {
		return err
	}
	if _, err := convert.LookupEncoding(c.Encoding); err != nil {
		return err
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (valid: text, json)", c.LogFormat)
	}
	switch c.OutputFormat {
	case "", "auto", "text", "markdown", "json":
	default:
		return fmt.Errorf("unknown output mode %q (valid: auto, text, markdown, json)", c.OutputFormat)
	}
	if c.Indent < 0 {
		return fmt.Errorf("indent must not be negative, got %d", c.Indent)
	}
	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be at least 1, got %d", c.Batch.Workers)
	}
	for _, f := range c.Batch.Formats {
		if _, err := export.ParseFormat(f); err != nil {
			return fmt.Errorf("batch.formats: %w", err)
		}
	}
	if c.Serve.MaxBodyBytes <= 0 {
		return fmt.Errorf("serve.max_body_bytes must be positive, got %d", c.Serve.MaxBodyBytes)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %s", c.Watch.Debounce)
	}
	return nil
}
