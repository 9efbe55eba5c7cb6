// Package adapter loads generated tables into an analytical database.
package adapter

import (
	"context"
	"log/slog"
)

// Config holds the configuration for connecting to a database.
type Config struct {
	// Path is the database file. Use ":memory:" or leave empty for an
	// in-memory database.
	Path string

	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// Loader is a database that can ingest a delimited file as a table.
type Loader interface {
	// LoadCSV replaces tableName with the contents of the delimited file at filePath.
	LoadCSV(ctx context.Context, tableName, filePath string, delim rune) error

	// RowCount returns the number of rows in tableName.
	RowCount(ctx context.Context, tableName string) (int64, error)

	// Close releases the connection.
	Close() error
}
