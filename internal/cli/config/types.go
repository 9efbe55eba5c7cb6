// Package config provides configuration management for the synthgen CLI.
//
// Values are layered from built-in defaults, an optional YAML file,
// SYNTHGEN_ environment variables and explicitly set command-line flags.
package config

import "unicode/utf8"

// Default configuration values.
const (
	DefaultConfigFile = "synthgen.yaml"
	DefaultOutput     = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultLogFormat  = "text"
	DefaultDelimiter  = ","

	DefaultCRMRows = 60
	DefaultCRMSeed = 42
	DefaultCRMOut  = "projects/CRM_Health_Scoring/data/crm_data_sample.csv"

	DefaultToxicityRows      = 500
	DefaultToxicitySeed      = 42
	DefaultToxicityOut       = "data/leadership_toxicity_kpis.csv"
	DefaultToxicityChartsDir = "reports"
)

// Output modes.
const (
	OutputAuto     = "auto"
	OutputText     = "text"
	OutputMarkdown = "markdown"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Config holds all CLI configuration options.
type Config struct {
	Verbose      bool           `koanf:"verbose" yaml:"verbose"`
	LogFormat    string         `koanf:"log_format" yaml:"log_format"`
	OutputFormat string         `koanf:"output" yaml:"output"`
	DuckDB       string         `koanf:"duckdb" yaml:"duckdb"`
	Delimiter    string         `koanf:"delimiter" yaml:"delimiter"`
	CRM          CRMConfig      `koanf:"crm" yaml:"crm"`
	Toxicity     ToxicityConfig `koanf:"toxicity" yaml:"toxicity"`
}

// CRMConfig configures the crm command.
type CRMConfig struct {
	Rows int    `koanf:"rows" yaml:"rows"`
	Seed int64  `koanf:"seed" yaml:"seed"`
	Out  string `koanf:"out" yaml:"out"`
}

// ToxicityConfig configures the toxicity command.
type ToxicityConfig struct {
	Rows      int    `koanf:"rows" yaml:"rows"`
	Seed      int64  `koanf:"seed" yaml:"seed"`
	Out       string `koanf:"out" yaml:"out"`
	ChartsDir string `koanf:"charts_dir" yaml:"charts_dir"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		LogFormat:    DefaultLogFormat,
		OutputFormat: DefaultOutput,
		Delimiter:    DefaultDelimiter,
		CRM: CRMConfig{
			Rows: DefaultCRMRows,
			Seed: DefaultCRMSeed,
			Out:  DefaultCRMOut,
		},
		Toxicity: ToxicityConfig{
			Rows:      DefaultToxicityRows,
			Seed:      DefaultToxicitySeed,
			Out:       DefaultToxicityOut,
			ChartsDir: DefaultToxicityChartsDir,
		},
	}
}

// DelimiterRune returns the field delimiter. Call Validate first.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}
