package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// DuckDBAdapter loads tables into a DuckDB database.
type DuckDBAdapter struct {
	db     *sql.DB
	config Config
	logger *slog.Logger
}

// NewDuckDBAdapter creates a new DuckDB adapter instance.
func NewDuckDBAdapter() *DuckDBAdapter {
	return &DuckDBAdapter{logger: slog.New(slog.DiscardHandler)}
}

// NewDuckDBAdapterFromDB wraps an already open connection.
func NewDuckDBAdapterFromDB(db *sql.DB, logger *slog.Logger) *DuckDBAdapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &DuckDBAdapter{db: db, logger: logger}
}

// OpenDuckDB connects a new adapter with cfg.
func OpenDuckDB(ctx context.Context, cfg Config) (*DuckDBAdapter, error) {
	a := NewDuckDBAdapter()
	if err := a.Connect(ctx, cfg); err != nil {
		return nil, err
	}
	return a, nil
}

// Connect establishes a connection to DuckDB.
// Use ":memory:" as the path for an in-memory database.
func (a *DuckDBAdapter) Connect(ctx context.Context, cfg Config) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}
	if cfg.Logger != nil {
		a.logger = cfg.Logger
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return fmt.Errorf("failed to open duckdb connection: %w", err)
	}

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping duckdb: %w", err)
	}

	a.db = db
	a.config = cfg
	a.logger.Debug("connected to duckdb", "path", path)

	return nil
}

// Close closes the DuckDB connection.
func (a *DuckDBAdapter) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Exec executes a SQL statement that doesn't return rows.
func (a *DuckDBAdapter) Exec(ctx context.Context, sqlStr string) error {
	if a.db == nil {
		return fmt.Errorf("database connection not established")
	}

	_, err := a.db.ExecContext(ctx, sqlStr)
	if err != nil {
		return fmt.Errorf("failed to execute SQL: %w", err)
	}

	return nil
}

// LoadCSV loads data from a delimited file into a table, replacing it if it exists.
// DuckDB infers the column types from the file.
func (a *DuckDBAdapter) LoadCSV(ctx context.Context, tableName, filePath string, delim rune) error {
	if a.db == nil {
		return fmt.Errorf("database connection not established")
	}
	if delim == 0 {
		delim = ','
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	query := LoadCSVQuery(tableName, absPath, delim)
	a.logger.Debug("loading table", "table", tableName, "path", absPath)

	if err := a.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to load %s into %s: %w", filePath, tableName, err)
	}

	return nil
}

// RowCount returns the number of rows in tableName.
func (a *DuckDBAdapter) RowCount(ctx context.Context, tableName string) (int64, error) {
	if a.db == nil {
		return 0, fmt.Errorf("database connection not established")
	}

	var n int64
	query := "SELECT COUNT(*) FROM " + quoteIdent(tableName) //nolint:gosec // identifier is quoted
	if err := a.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows of %s: %w", tableName, err)
	}
	return n, nil
}

// LoadCSVQuery builds the statement that (re)creates tableName from a file.
func LoadCSVQuery(tableName, absPath string, delim rune) string {
	return fmt.Sprintf(
		"CREATE OR REPLACE TABLE %s AS SELECT * FROM read_csv_auto(%s, header=true, delim=%s)",
		quoteIdent(tableName),
		quoteLiteral(absPath),
		quoteLiteral(string(delim)),
	)
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Ensure DuckDBAdapter implements Loader
var _ Loader = (*DuckDBAdapter)(nil)
