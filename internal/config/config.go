// Package config provides configuration types and defaults for requisite.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/requisite/internal/flags"
	"github.com/zjrosen/requisite/internal/log"
	"github.com/zjrosen/requisite/internal/paths"
)

// Config holds all configuration options for requisite.
type Config struct {
	Manifests ManifestsConfig `mapstructure:"manifests"`
	State     StateConfig     `mapstructure:"state"`
	// Capabilities are enabled in the state store on startup.
	Capabilities []string        `mapstructure:"capabilities"`
	Server       ServerConfig    `mapstructure:"server"`
	Watch        WatchConfig     `mapstructure:"watch"`
	Output       OutputConfig    `mapstructure:"output"`
	Tracing      TracingConfig   `mapstructure:"tracing"`
	Flags        map[string]bool `mapstructure:"flags"`
}

// ManifestsConfig controls where checklist manifests are loaded from.
type ManifestsConfig struct {
	// Builtin loads the manifests embedded in the binary.
	Builtin bool `mapstructure:"builtin"`
	// UserDir is scanned for *.yaml manifests. A missing directory is ignored.
	UserDir string `mapstructure:"user_dir"`
	// Paths are extra manifest files or directories. Errors in these are fatal.
	Paths []string `mapstructure:"paths"`
}

// StateConfig selects and configures the state store.
type StateConfig struct {
	Driver      string        `mapstructure:"driver"` // "sqlite" (default), "redis", or "memory"
	Path        string        `mapstructure:"path"`   // sqlite database file
	RedisURL    string        `mapstructure:"redis_url"`
	RedisPrefix string        `mapstructure:"redis_prefix"`
	CacheTTL    time.Duration `mapstructure:"cache_ttl"` // used when the state-cache flag is on
}

// ServerConfig holds HTTP server options for `requisite serve`.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// WatchConfig controls manifest reloading while serving.
type WatchConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// OutputConfig holds terminal rendering options.
type OutputConfig struct {
	Format        string `mapstructure:"format"`         // "text" (default), "table", "json", or "markdown"
	Width         int    `mapstructure:"width"`          // wrap width; 0 detects from $COLUMNS
	MarkdownStyle string `mapstructure:"markdown_style"` // "dark" (default), "light", or "notty"
}

// TracingConfig holds distributed tracing configuration.
type TracingConfig struct {
	// Enabled controls whether distributed tracing is active.
	// Default: false
	Enabled bool `mapstructure:"enabled"`

	// Exporter selects the trace export backend.
	// Options: "none", "file", "stdout", "otlp"
	// Default: "file"
	Exporter string `mapstructure:"exporter"`

	// FilePath is the output file for "file" exporter.
	// Default: ~/.config/requisite/traces/traces.jsonl
	FilePath string `mapstructure:"file_path"`

	// OTLPEndpoint is the collector endpoint for "otlp" exporter.
	// Default: "localhost:4317"
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	// SampleRate controls trace sampling (0.0 to 1.0).
	// Default: 1.0
	SampleRate float64 `mapstructure:"sample_rate"`
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Manifests: ManifestsConfig{
			Builtin: true,
			UserDir: paths.UserManifestDir(),
		},
		State: StateConfig{
			Driver:      "sqlite",
			Path:        paths.StatePath(),
			RedisPrefix: "requisite:",
			CacheTTL:    30 * time.Second,
		},
		Server: ServerConfig{
			Addr:            "127.0.0.1:8088",
			ShutdownTimeout: 5 * time.Second,
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: 200 * time.Millisecond,
		},
		Output: OutputConfig{
			Format:        "text",
			MarkdownStyle: "dark",
		},
		Tracing: TracingConfig{
			Enabled:      false,
			Exporter:     "file",
			FilePath:     "", // Derived from config dir at runtime
			OTLPEndpoint: "localhost:4317",
			SampleRate:   1.0,
		},
		Flags: flags.Defaults(),
	}
}

// Validate checks the whole configuration.
func Validate(c Config) error {
	if err := ValidateState(c.State); err != nil {
		return err
	}
	if err := ValidateServer(c.Server); err != nil {
		return err
	}
	if err := ValidateWatch(c.Watch); err != nil {
		return err
	}
	if err := ValidateOutput(c.Output); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// ValidateState checks state store configuration for errors.
func ValidateState(s StateConfig) error {
	switch s.Driver {
	case "", "sqlite":
		if s.Path == "" {
			return fmt.Errorf("state.path is required when driver is \"sqlite\"")
		}
	case "redis":
		if s.RedisURL == "" {
			return fmt.Errorf("state.redis_url is required when driver is \"redis\"")
		}
	case "memory":
	default:
		return fmt.Errorf("state.driver must be \"sqlite\", \"redis\", or \"memory\", got %q", s.Driver)
	}
	if s.CacheTTL < 0 {
		return fmt.Errorf("state.cache_ttl cannot be negative, got %s", s.CacheTTL)
	}
	return nil
}

// ValidateServer checks server configuration for errors.
func ValidateServer(s ServerConfig) error {
	if s.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if s.ShutdownTimeout < 0 {
		return fmt.Errorf("server.shutdown_timeout cannot be negative, got %s", s.ShutdownTimeout)
	}
	return nil
}

// ValidateWatch checks watcher configuration for errors.
func ValidateWatch(w WatchConfig) error {
	if w.Debounce < 0 {
		return fmt.Errorf("watch.debounce cannot be negative, got %s", w.Debounce)
	}
	return nil
}

// ValidateOutput checks output configuration for errors.
func ValidateOutput(o OutputConfig) error {
	switch o.Format {
	case "", "text", "table", "json", "markdown":
	default:
		return fmt.Errorf("output.format must be \"text\", \"table\", \"json\", or \"markdown\", got %q", o.Format)
	}
	switch o.MarkdownStyle {
	case "", "dark", "light", "notty":
	default:
		return fmt.Errorf("output.markdown_style must be \"dark\", \"light\", or \"notty\", got %q", o.MarkdownStyle)
	}
	if o.Width < 0 {
		return fmt.Errorf("output.width cannot be negative, got %d", o.Width)
	}
	return nil
}

// ValidateTracing checks tracing configuration for errors.
// Returns nil if the configuration is valid (empty values use defaults).
func ValidateTracing(tracing TracingConfig) error {
	// Validate SampleRate is in range [0.0, 1.0]
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	if tracing.Exporter != "" {
		switch tracing.Exporter {
		case "none", "file", "stdout", "otlp":
			// Valid
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
		}
	}

	// Only validate path requirements when tracing is enabled
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}

// DefaultConfigTemplate returns the commented YAML written on first run.
func DefaultConfigTemplate() string {
	return `# requisite configuration

# Where checklist manifests are loaded from
manifests:
  builtin: true                      # Load the checklists shipped with requisite
  user_dir: ~/.requisite/checklists  # Every *.yaml here is loaded; bad files are skipped
  # paths:                           # Extra manifest files or directories (errors are fatal)
  #   - ./checklists

# State store: where settings, capabilities and configuration history live
state:
  driver: sqlite                     # sqlite (default), redis, or memory
  path: ~/.requisite/state.db
  # redis_url: redis://localhost:6379/0
  # redis_prefix: "requisite:"
  cache_ttl: 30s                     # Read cache lifetime (state-cache flag)

# Capabilities enabled on startup (visible to manifests as "capabilities")
# capabilities:
#   - search
#   - cron

# HTTP API for 'requisite serve'
server:
  addr: 127.0.0.1:8088
  shutdown_timeout: 5s

# Reload manifests when files change while serving
watch:
  enabled: true
  debounce: 200ms

# Terminal output
output:
  format: text                       # text, table, json, or markdown
  # width: 100                       # Wrap width (default: $COLUMNS or 80)
  markdown_style: dark               # dark, light, or notty

# Distributed tracing
# tracing:
#   enabled: true
#   exporter: file                   # none, file, stdout, or otlp
#   file_path: ~/.config/requisite/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0

# Feature flags
flags:
  state-cache: true
  manifest-watch: true
  user-manifests: true
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
