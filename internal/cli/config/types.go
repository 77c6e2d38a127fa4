// Package config provides configuration management for the st4conv CLI.
package config

import "time"

// Default values for configuration.
const (
	DefaultEncoding     = "utf-8"
	DefaultFormat       = "json"
	DefaultIndent       = 2
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultStorePath    = ".st4conv/models.db"
	DefaultServeAddr    = ":8080"
	DefaultMaxBodyBytes = 32 << 20
	DefaultDebounce     = 250 * time.Millisecond
	DefaultWorkers      = 4
)

// ServeConfig holds configuration for the HTTP service.
type ServeConfig struct {
	Addr         string `koanf:"addr"`
	MaxBodyBytes int64  `koanf:"max_body_bytes"`
}

// WatchConfig holds configuration for watch mode.
type WatchConfig struct {
	Debounce time.Duration `koanf:"debounce"`
}

// BatchConfig holds configuration for batch conversion.
type BatchConfig struct {
	Workers int      `koanf:"workers"`
	Formats []string `koanf:"formats"`
}

// Config holds all CLI configuration options.
type Config struct {
	Encoding     string      `koanf:"encoding"`
	Format       string      `koanf:"format"`
	OutputDir    string      `koanf:"output_dir"`
	Indent       int         `koanf:"indent"`
	AllowEmpty   bool        `koanf:"allow_empty"`
	LogLevel     string      `koanf:"log_level"`
	LogFormat    string      `koanf:"log_format"`
	Verbose      bool        `koanf:"verbose"`
	OutputFormat string      `koanf:"output"`
	StorePath    string      `koanf:"store_path"`
	Serve        ServeConfig `koanf:"serve"`
	Watch        WatchConfig `koanf:"watch"`
	Batch        BatchConfig `koanf:"batch"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Encoding:  DefaultEncoding,
		Format:    DefaultFormat,
		Indent:    DefaultIndent,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		StorePath: DefaultStorePath,
		Serve: ServeConfig{
			Addr:         DefaultServeAddr,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
		Watch: WatchConfig{Debounce: DefaultDebounce},
		Batch: BatchConfig{
			Workers: DefaultWorkers,
			Formats: []string{DefaultFormat},
		},
	}
}
