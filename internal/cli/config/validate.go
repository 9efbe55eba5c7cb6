package config

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/leapstack-labs/synthgen/internal/generator"
)

// Validate checks if the configuration is valid.
// Row counts are checked by the commands that use them.
func (c *Config) Validate() error {
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return fmt.Errorf("%w: delimiter must be a single character, got %q", generator.ErrInvalidArgument, c.Delimiter)
	}
	switch d := c.DelimiterRune(); d {
	case '"', '\r', '\n', utf8.RuneError:
		return fmt.Errorf("%w: %q cannot be used as a delimiter", generator.ErrInvalidArgument, d)
	}

	if !slices.Contains([]string{OutputAuto, OutputText, OutputMarkdown}, c.OutputFormat) {
		return fmt.Errorf("%w: unknown output mode %q (want auto, text or markdown)", generator.ErrInvalidArgument, c.OutputFormat)
	}
	if !slices.Contains([]string{LogFormatText, LogFormatJSON}, c.LogFormat) {
		return fmt.Errorf("%w: unknown log format %q (want text or json)", generator.ErrInvalidArgument, c.LogFormat)
	}
	return nil
}
