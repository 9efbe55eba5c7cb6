package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/leapstack-labs/synthgen/internal/adapter"
	"github.com/leapstack-labs/synthgen/internal/cli/config"
	"github.com/leapstack-labs/synthgen/internal/dataset"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
	Out    io.Writer
	// Markdown is set when tables should be printed as markdown.
	Markdown bool

	printer *message.Printer
}

// NewCommandContext collects the config and logger installed by the root
// command and resolves the effective output mode.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := config.FromContext(cmd.Context())
	out := cmd.OutOrStdout()
	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Out:      out,
		Markdown: useMarkdown(cfg.OutputFormat, out),
		printer:  message.NewPrinter(language.English),
	}
}

// useMarkdown resolves the output mode. Auto picks text on a terminal and
// markdown when piped.
func useMarkdown(mode string, w io.Writer) bool {
	switch mode {
	case config.OutputText:
		return false
	case config.OutputMarkdown:
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return true
	}
	return !term.IsTerminal(int(f.Fd())) //nolint:gosec // file descriptors fit in int
}

// Printf writes to the command output with locale-aware number grouping.
func (c *CommandContext) Printf(format string, args ...any) {
	_, _ = c.printer.Fprintf(c.Out, format, args...)
}

// WroteRows prints the confirmation line for a written table.
func (c *CommandContext) WroteRows(n int, path string) {
	c.Printf("Wrote %d rows to %s\n", n, path)
}

// LoadWarehouse loads the file at path into DuckDB when a database is configured.
func (c *CommandContext) LoadWarehouse(ctx context.Context, tbl *dataset.Table, path string) error {
	if c.Cfg.DuckDB == "" {
		return nil
	}

	db, err := adapter.OpenDuckDB(ctx, adapter.Config{Path: c.Cfg.DuckDB, Logger: c.Logger})
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return loadTable(ctx, db, tbl, path, c.Cfg.DelimiterRune(), c.Logger)
}

// loadTable loads path into the table's warehouse table and checks the row count.
func loadTable(ctx context.Context, db adapter.Loader, tbl *dataset.Table, path string, delim rune, logger *slog.Logger) error {
	if err := db.LoadCSV(ctx, tbl.Name, path, delim); err != nil {
		return err
	}
	n, err := db.RowCount(ctx, tbl.Name)
	if err != nil {
		return err
	}
	if n != int64(tbl.Len()) {
		return fmt.Errorf("warehouse table %s has %d rows, expected %d", tbl.Name, n, tbl.Len())
	}
	logger.Info("loaded table into duckdb", "table", tbl.Name, "rows", n)
	return nil
}
