// Package report renders charts and console summaries from generated tables.
package report

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/leapstack-labs/synthgen/internal/dataset"
)

// Default raster geometry: a 6.4x4.8 inch figure at 150 DPI.
const (
	DefaultWidth  = 6.4 * vg.Inch
	DefaultHeight = 4.8 * vg.Inch
	DefaultDPI    = 150
)

var (
	pointColor = color.NRGBA{R: 31, G: 119, B: 180, A: 128}
	meanColor  = color.NRGBA{R: 44, G: 160, B: 44, A: 255}
)

// Chart is one image derived from a table.
type Chart struct {
	// File is the image file name inside the output directory.
	File  string
	Build func(t *dataset.Table) (*plot.Plot, error)
}

// ChartWriter renders charts as PNG files into Dir.
type ChartWriter struct {
	Dir    string
	Width  vg.Length
	Height vg.Length
	DPI    int
	Logger *slog.Logger
}

// NewChartWriter creates a ChartWriter with the default geometry.
func NewChartWriter(dir string, logger *slog.Logger) *ChartWriter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ChartWriter{
		Dir:    dir,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		DPI:    DefaultDPI,
		Logger: logger,
	}
}

// Render creates the output directory and renders every chart independently.
// A failing chart does not stop the others; the paths written so far are
// returned together with the joined errors.
func (w *ChartWriter) Render(t *dataset.Table, charts ...Chart) ([]string, error) {
	if err := os.MkdirAll(w.Dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create charts directory: %w", err)
	}

	var written []string
	var errs []error
	for _, c := range charts {
		path := filepath.Join(w.Dir, c.File)
		if err := w.renderOne(t, c, path); err != nil {
			w.Logger.Warn("chart failed", "file", c.File, "error", err)
			errs = append(errs, fmt.Errorf("chart %s: %w", c.File, err))
			continue
		}
		w.Logger.Debug("chart written", "path", path)
		written = append(written, path)
	}

	return written, errors.Join(errs...)
}

func (w *ChartWriter) renderOne(t *dataset.Table, c Chart, path string) (err error) {
	p, err := c.Build(t)
	if err != nil {
		return err
	}

	canvas := vgimg.NewWith(vgimg.UseWH(w.Width, w.Height), vgimg.UseDPI(w.DPI))
	p.Draw(draw.New(canvas))

	f, err := os.Create(path) //nolint:gosec // path is built from the charts directory flag
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(f); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// Labels sets the title and axis labels of a plot.
type Labels struct {
	Title string
	X     string
	Y     string
}

func newPlot(l Labels) *plot.Plot {
	p := plot.New()
	p.Title.Text = l.Title
	p.X.Label.Text = l.X
	p.Y.Label.Text = l.Y
	return p
}

// Histogram plots the distribution of values over bins equal-width bins.
func Histogram(values []float64, bins int, l Labels) (*plot.Plot, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("histogram needs at least one value")
	}
	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return nil, err
	}
	p := newPlot(l)
	p.Add(h)
	return p, nil
}

// Scatter plots ys against xs with semi-transparent points.
func Scatter(xs, ys []float64, l Labels) (*plot.Plot, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("scatter got %d x values and %d y values", len(xs), len(ys))
	}
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	s.GlyphStyle.Color = pointColor
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	s.GlyphStyle.Radius = vg.Points(2)

	p := newPlot(l)
	p.Add(s)
	return p, nil
}

// GroupedBoxPlot draws one box of values per distinct group label, in sorted
// label order, with a marker at each group mean.
func GroupedBoxPlot(values []float64, groups []string, l Labels) (*plot.Plot, error) {
	if len(values) != len(groups) {
		return nil, fmt.Errorf("boxplot got %d values and %d group labels", len(values), len(groups))
	}

	byGroup := make(map[string]plotter.Values)
	for i, g := range groups {
		byGroup[g] = append(byGroup[g], values[i])
	}
	labels := GroupOrder(groups)
	if len(labels) == 0 {
		return nil, fmt.Errorf("boxplot needs at least one group")
	}

	p := newPlot(l)
	means := make(plotter.XYs, len(labels))
	for i, label := range labels {
		b, err := plotter.NewBoxPlot(vg.Points(28), float64(i), byGroup[label])
		if err != nil {
			return nil, fmt.Errorf("group %s: %w", label, err)
		}
		p.Add(b)
		means[i].X = float64(i)
		means[i].Y = stat.Mean(byGroup[label], nil)
	}

	m, err := plotter.NewScatter(means)
	if err != nil {
		return nil, err
	}
	m.GlyphStyle.Color = meanColor
	m.GlyphStyle.Shape = draw.TriangleGlyph{}
	m.GlyphStyle.Radius = vg.Points(3)
	p.Add(m)

	p.NominalX(labels...)
	return p, nil
}

// GroupOrder returns the distinct labels of groups, sorted.
func GroupOrder(groups []string) []string {
	seen := make(map[string]struct{})
	var labels []string
	for _, g := range groups {
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		labels = append(labels, g)
	}
	sort.Strings(labels)
	return labels
}
