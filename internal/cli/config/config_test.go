package config

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/synthgen/internal/generator"
)

// newFlags mirrors the flags the root and toxicity commands register.
func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("config", "", "")
	fs.BoolP("verbose", "v", false, "")
	fs.String("log-format", DefaultLogFormat, "")
	fs.StringP("output", "o", DefaultOutput, "")
	fs.String("duckdb", "", "")
	fs.String("delimiter", DefaultDelimiter, "")
	fs.IntP("n-rows", "n", DefaultToxicityRows, "")
	fs.Int64("seed", DefaultToxicitySeed, "")
	fs.String("out", DefaultToxicityOut, "")
	fs.String("charts-dir", DefaultToxicityChartsDir, "")
	require.NoError(t, fs.Parse(args))
	return fs
}

// chdir moves into a fresh directory so no stray synthgen.yaml is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdir(t)
	ResetConfig()

	cfg, err := LoadConfig("", nil, "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Empty(t, GetConfigFileUsed())
	assert.Equal(t, ',', cfg.DelimiterRune())
}

func TestLoadConfig_Precedence(t *testing.T) {
	const fileBody = `
output: markdown
delimiter: ";"
toxicity:
  rows: 100
  seed: 7
  out: file.csv
crm:
  rows: 10
`
	tests := []struct {
		name    string
		env     map[string]string
		args    []string
		section string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "file overrides defaults",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, OutputMarkdown, cfg.OutputFormat)
				assert.Equal(t, ';', cfg.DelimiterRune())
				assert.Equal(t, 100, cfg.Toxicity.Rows)
				assert.Equal(t, int64(7), cfg.Toxicity.Seed)
				assert.Equal(t, DefaultToxicityChartsDir, cfg.Toxicity.ChartsDir)
				assert.Equal(t, 10, cfg.CRM.Rows)
			},
		},
		{
			name: "env overrides file",
			env: map[string]string{
				"SYNTHGEN_TOXICITY__ROWS": "250",
				"SYNTHGEN_LOG_FORMAT":     "json",
			},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 250, cfg.Toxicity.Rows)
				assert.Equal(t, int64(7), cfg.Toxicity.Seed)
				assert.Equal(t, LogFormatJSON, cfg.LogFormat)
			},
		},
		{
			name:    "flags override env",
			env:     map[string]string{"SYNTHGEN_TOXICITY__ROWS": "250"},
			args:    []string{"-n", "12", "--seed", "99", "--output", "text"},
			section: "toxicity",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 12, cfg.Toxicity.Rows)
				assert.Equal(t, int64(99), cfg.Toxicity.Seed)
				assert.Equal(t, "file.csv", cfg.Toxicity.Out, "unset flags keep lower layers")
				assert.Equal(t, OutputText, cfg.OutputFormat)
				assert.Equal(t, 10, cfg.CRM.Rows, "other sections untouched")
			},
		},
		{
			name:    "command flags land in their own section",
			args:    []string{"--seed", "5"},
			section: "crm",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, int64(5), cfg.CRM.Seed)
				assert.Equal(t, int64(7), cfg.Toxicity.Seed)
			},
		},
		{
			name: "command flags ignored without a section",
			args: []string{"--seed", "5"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, int64(DefaultCRMSeed), cfg.CRM.Seed)
				assert.Equal(t, int64(7), cfg.Toxicity.Seed)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := chdir(t)
			path := writeConfig(t, dir, fileBody)
			for key, val := range tt.env {
				t.Setenv(key, val)
			}
			ResetConfig()

			cfg, err := LoadConfig(path, newFlags(t, tt.args...), tt.section)
			require.NoError(t, err)
			assert.Equal(t, path, GetConfigFileUsed())
			tt.check(t, cfg)
		})
	}
}

func TestLoadConfig_DiscoversFileInWorkingDir(t *testing.T) {
	dir := chdir(t)
	writeConfig(t, dir, "crm:\n  out: custom.csv\n")
	ResetConfig()

	cfg, err := LoadConfig("", nil, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigFile, GetConfigFileUsed())
	assert.Equal(t, "custom.csv", cfg.CRM.Out)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name      string
		cfgFile   func(t *testing.T, dir string) string
		args      []string
		errSubstr string
		invalid   bool
	}{
		{
			name:      "missing explicit file",
			cfgFile:   func(t *testing.T, dir string) string { return filepath.Join(dir, "nope.yaml") },
			errSubstr: "error reading config file",
		},
		{
			name:      "malformed yaml",
			cfgFile:   func(t *testing.T, dir string) string { return writeConfig(t, dir, "crm: [unclosed\n") },
			errSubstr: "error reading config file",
		},
		{
			name:      "multi-character delimiter",
			args:      []string{"--delimiter", "||"},
			errSubstr: "single character",
			invalid:   true,
		},
		{
			name:      "quote delimiter",
			args:      []string{"--delimiter", `"`},
			errSubstr: "cannot be used as a delimiter",
			invalid:   true,
		},
		{
			name:      "unknown output mode",
			args:      []string{"--output", "json"},
			errSubstr: "unknown output mode",
			invalid:   true,
		},
		{
			name:      "unknown log format",
			args:      []string{"--log-format", "xml"},
			errSubstr: "unknown log format",
			invalid:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := chdir(t)
			ResetConfig()
			cfgFile := ""
			if tt.cfgFile != nil {
				cfgFile = tt.cfgFile(t, dir)
			}

			_, err := LoadConfig(cfgFile, newFlags(t, tt.args...), "toxicity")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
			assert.Equal(t, tt.invalid, errors.Is(err, generator.ErrInvalidArgument))
		})
	}
}

func TestGetLogger(t *testing.T) {
	assert.NotNil(t, GetLogger(context.Background()), "discard fallback")

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, GetLogger(ctx))
	assert.Same(t, logger, ctx.Value(LoggerKey()))
}

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantDebug bool
		wantJSON  bool
	}{
		{name: "quiet text", cfg: Config{LogFormat: LogFormatText}},
		{name: "verbose text", cfg: Config{LogFormat: LogFormatText, Verbose: true}, wantDebug: true},
		{name: "verbose json", cfg: Config{LogFormat: LogFormatJSON, Verbose: true}, wantDebug: true, wantJSON: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, &tt.cfg)
			logger.Debug("sampled", "rows", 3)
			logger.Warn("careful")

			out := buf.String()
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("sampled")))
			assert.Contains(t, out, "careful")
			assert.Equal(t, tt.wantJSON, bytes.HasPrefix(buf.Bytes(), []byte("{")))
		})
	}
}
