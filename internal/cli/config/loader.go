package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
type loggerKey struct{}

// EnvPrefix prefixes every environment variable read by the loader.
const EnvPrefix = "SYNTHGEN_"

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
)

// globalFlagKeys maps persistent flag names to config keys.
var globalFlagKeys = map[string]string{
	"verbose":    "verbose",
	"log-format": "log_format",
	"output":     "output",
	"duckdb":     "duckdb",
	"delimiter":  "delimiter",
}

// commandFlagKeys maps generator flag names to keys below the command's section.
var commandFlagKeys = map[string]string{
	"n":          "rows",
	"n-rows":     "rows",
	"seed":       "seed",
	"out":        "out",
	"charts-dir": "charts_dir",
}

// findConfigFile finds the config file to use.
// Priority: explicit path > synthgen.yaml > synthgen.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{DefaultConfigFile, "synthgen.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
}

// LoadConfig loads configuration from defaults, file, environment variables
// and flags. Precedence (highest to lowest): flags > env vars > config file > defaults.
//
// section names the config block that command-local flags such as --seed
// belong to ("crm" or "toxicity"); with an empty section they are ignored.
func LoadConfig(cfgFile string, flags *pflag.FlagSet, section string) (*Config, error) {
	// Reset koanf for fresh load
	k = koanf.New(".")

	// 1. Load defaults
	d := Default()
	if err := k.Load(confmap.Provider(map[string]any{
		"verbose":             d.Verbose,
		"log_format":          d.LogFormat,
		"output":              d.OutputFormat,
		"duckdb":              d.DuckDB,
		"delimiter":           d.Delimiter,
		"crm.rows":            d.CRM.Rows,
		"crm.seed":            d.CRM.Seed,
		"crm.out":             d.CRM.Out,
		"toxicity.rows":       d.Toxicity.Rows,
		"toxicity.seed":       d.Toxicity.Seed,
		"toxicity.out":        d.Toxicity.Out,
		"toxicity.charts_dir": d.Toxicity.ChartsDir,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Environment variables
	// Transform: SYNTHGEN_CRM__ROWS -> crm.rows, SYNTHGEN_LOG_FORMAT -> log_format
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags (highest priority)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			key := flagKey(section, f.Name)
			if key == "" {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

func flagKey(section, name string) string {
	if key, ok := globalFlagKeys[name]; ok {
		return key
	}
	if section == "" {
		return ""
	}
	if key, ok := commandFlagKeys[name]; ok {
		return section + "." + key
	}
	return ""
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() any {
	return loggerKey{}
}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.New(slog.DiscardHandler)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// NewLogger builds the CLI logger: JSON or text on w, debug when verbose,
// warnings and errors otherwise.
func NewLogger(w io.Writer, cfg *Config) *slog.Logger {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// configKey is used to store the loaded config in context.
type configKey struct{}

// WithConfig returns a copy of ctx carrying cfg.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from the command context, falling back
// to the defaults when none was loaded.
func FromContext(ctx context.Context) *Config {
	if ctx != nil {
		if c, ok := ctx.Value(configKey{}).(*Config); ok {
			return c
		}
	}
	return Default()
}
