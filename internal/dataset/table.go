// Package dataset holds the in-memory columnar table produced by the
// generators and its delimited-file serialization.
package dataset

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Kind is the value type of a column.
type Kind int

// Column kinds.
const (
	KindString Kind = iota
	KindInt
	KindFloat
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Column is a named, typed vector of values with a declared domain.
// Exactly one of Strings, Ints or Floats is populated, according to Kind.
type Column struct {
	Name string
	Kind Kind

	// Precision is the number of decimals floats are rounded to on output.
	Precision int

	// Min and Max bound numeric columns. Use math.Inf for an open bound.
	Min, Max float64

	// Labels is the fixed label set of a categorical column.
	// A nil Labels leaves string values unconstrained.
	Labels []string

	Strings []string
	Ints    []int64
	Floats  []float64
}

// NewStringColumn creates a string column. labels may be nil for free-form values.
func NewStringColumn(name string, labels []string, values []string) *Column {
	return &Column{Name: name, Kind: KindString, Labels: labels, Strings: values}
}

// NewIntColumn creates an integer column bounded by [lo, hi].
func NewIntColumn(name string, lo, hi float64, values []int64) *Column {
	return &Column{Name: name, Kind: KindInt, Min: lo, Max: hi, Ints: values}
}

// NewFloatColumn creates a float column bounded by [lo, hi] and written with
// precision decimals.
func NewFloatColumn(name string, precision int, lo, hi float64, values []float64) *Column {
	return &Column{Name: name, Kind: KindFloat, Precision: precision, Min: lo, Max: hi, Floats: values}
}

// Len returns the number of values in the column.
func (c *Column) Len() int {
	switch c.Kind {
	case KindInt:
		return len(c.Ints)
	case KindFloat:
		return len(c.Floats)
	default:
		return len(c.Strings)
	}
}

// Format renders the i-th value as it appears in the output file.
func (c *Column) Format(i int) string {
	switch c.Kind {
	case KindInt:
		return strconv.FormatInt(c.Ints[i], 10)
	case KindFloat:
		return formatFloat(c.Floats[i], c.Precision)
	default:
		return c.Strings[i]
	}
}

// formatFloat rounds half away from zero and prints the shortest
// representation, keeping a trailing ".0" on integral values.
func formatFloat(v float64, precision int) string {
	p := math.Pow10(precision)
	r := math.Round(v*p) / p
	s := strconv.FormatFloat(r, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEIN") {
		s += ".0"
	}
	return s
}

// Table is an ordered, columnar set of rows sharing one schema.
type Table struct {
	Name    string
	columns []*Column
	index   map[string]int
}

// NewTable assembles columns into a table. All columns must have the same length
// and distinct names.
func NewTable(name string, columns ...*Column) (*Table, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s has no columns", name)
	}

	t := &Table{
		Name:    name,
		columns: columns,
		index:   make(map[string]int, len(columns)),
	}

	n := columns[0].Len()
	for i, c := range columns {
		if _, dup := t.index[c.Name]; dup {
			return nil, fmt.Errorf("table %s: duplicate column %q", name, c.Name)
		}
		if c.Len() != n {
			return nil, fmt.Errorf("table %s: column %q has %d values, want %d", name, c.Name, c.Len(), n)
		}
		t.index[c.Name] = i
	}

	return t, nil
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return t.columns[0].Len()
}

// Columns returns the columns in output order.
func (t *Table) Columns() []*Column {
	return t.columns
}

// Header returns the column names in output order.
func (t *Table) Header() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Column looks a column up by name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.columns[i], true
}

// Floats returns the values of a numeric column as float64.
func (t *Table) Floats(name string) ([]float64, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("table %s has no column %q", t.Name, name)
	}
	switch c.Kind {
	case KindFloat:
		return c.Floats, nil
	case KindInt:
		out := make([]float64, len(c.Ints))
		for i, v := range c.Ints {
			out[i] = float64(v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("column %q is %s, not numeric", name, c.Kind)
	}
}

// Strings returns the values of a string column.
func (t *Table) Strings(name string) ([]string, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, fmt.Errorf("table %s has no column %q", t.Name, name)
	}
	if c.Kind != KindString {
		return nil, fmt.Errorf("column %q is %s, not string", name, c.Kind)
	}
	return c.Strings, nil
}

// Record renders row i as output fields.
func (t *Table) Record(i int) []string {
	rec := make([]string, len(t.columns))
	for j, c := range t.columns {
		rec[j] = c.Format(i)
	}
	return rec
}

// Validate checks every value against its column domain.
func (t *Table) Validate() error {
	for _, c := range t.columns {
		switch c.Kind {
		case KindString:
			if c.Labels == nil {
				continue
			}
			for i, v := range c.Strings {
				if !slices.Contains(c.Labels, v) {
					return fmt.Errorf("%s row %d: %s=%q not in label set", t.Name, i, c.Name, v)
				}
			}
		case KindInt:
			for i, v := range c.Ints {
				if f := float64(v); f < c.Min || f > c.Max {
					return fmt.Errorf("%s row %d: %s=%d outside [%v, %v]", t.Name, i, c.Name, v, c.Min, c.Max)
				}
			}
		case KindFloat:
			for i, v := range c.Floats {
				if math.IsNaN(v) || v < c.Min || v > c.Max {
					return fmt.Errorf("%s row %d: %s=%v outside [%v, %v]", t.Name, i, c.Name, v, c.Min, c.Max)
				}
			}
		}
	}
	return nil
}
