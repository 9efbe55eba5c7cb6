package report

import (
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"gonum.org/v1/gonum/stat"

	"github.com/leapstack-labs/synthgen/internal/dataset"
)

// Matrix is a square pairwise correlation matrix.
type Matrix struct {
	Columns []string
	Values  [][]float64
}

// At returns the correlation between columns a and b.
func (m *Matrix) At(a, b string) (float64, bool) {
	i, j := -1, -1
	for k, c := range m.Columns {
		if c == a {
			i = k
		}
		if c == b {
			j = k
		}
	}
	if i < 0 || j < 0 {
		return 0, false
	}
	return m.Values[i][j], true
}

// Correlation computes the Pearson correlation of every pair of columns.
// A constant column yields NaN against every column.
func Correlation(t *dataset.Table, columns []string) (*Matrix, error) {
	data := make([][]float64, len(columns))
	for i, name := range columns {
		vals, err := t.Floats(name)
		if err != nil {
			return nil, err
		}
		data[i] = vals
	}

	m := &Matrix{Columns: columns, Values: make([][]float64, len(columns))}
	for i := range columns {
		m.Values[i] = make([]float64, len(columns))
	}
	for i := range columns {
		for j := i; j < len(columns); j++ {
			r := stat.Correlation(data[i], data[j], nil)
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m, nil
}

// Render prints the matrix rounded to two decimals, as a box-drawn table or,
// with markdown set, as a markdown table.
func (m *Matrix) Render(w io.Writer, markdown bool) {
	tw := m.tableWriter()
	tw.SetOutputMirror(w)
	if markdown {
		tw.RenderMarkdown()
		return
	}
	tw.Render()
}

// String renders the matrix as a box-drawn table.
func (m *Matrix) String() string {
	return m.tableWriter().Render()
}

func (m *Matrix) tableWriter() table.Writer {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)

	header := table.Row{""}
	for _, c := range m.Columns {
		header = append(header, c)
	}
	tw.AppendHeader(header)

	for i, c := range m.Columns {
		row := table.Row{c}
		for _, v := range m.Values[i] {
			row = append(row, strconv.FormatFloat(v, 'f', 2, 64))
		}
		tw.AppendRow(row)
	}
	return tw
}
