package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DefaultDelimiter separates fields when none is configured.
const DefaultDelimiter = ','

// WriteCSV writes a header row followed by one record per row, in insertion order.
func (t *Table) WriteCSV(w io.Writer, delim rune) error {
	if delim == 0 {
		delim = DefaultDelimiter
	}

	cw := csv.NewWriter(w)
	cw.Comma = delim

	if err := cw.Write(t.Header()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i := 0; i < t.Len(); i++ {
		if err := cw.Write(t.Record(i)); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile creates the parent directory of path if needed and writes the table
// to path, replacing any existing file.
func (t *Table) WriteFile(path string, delim rune) (err error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if err := t.WriteCSV(f, delim); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
