package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/agbru/mcarea/internal/dataset"
	apperrors "github.com/agbru/mcarea/internal/errors"
)

// Artifact file names.
const (
	AreaFile     = "area_vs_N.png"
	ErrorFile    = "error_vs_N.png"
	CombinedFile = "combined_plots.png"
)

// Output resolution bounds. A 12x10 inch figure at MaxDPI is 14400x12000 pixels.
const (
	DefaultDPI = 300
	MaxDPI     = 1200
)

var (
	wideColor   = color.NRGBA{R: 0, G: 0, B: 255, A: 179}
	narrowColor = color.NRGBA{R: 0, G: 128, B: 0, A: 179}
	exactColor  = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	gridColor   = color.NRGBA{R: 0, G: 0, B: 0, A: 77}
)

const (
	areaTitle  = "Approximate area versus number of points"
	errorTitle = "Relative error versus number of points"
	xLabel     = "Number of points N"
)

// Options configures a render pass.
type Options struct {
	// Dir is the output directory.
	Dir string
	// DPI is the output resolution; zero means DefaultDPI.
	DPI int
}

// Result describes what Render produced.
type Result struct {
	Scale Scale
	// YMin and YMax are the error axis bounds.
	YMin, YMax float64
	// Files lists the written images in creation order.
	Files []string
}

// Decide computes the error axis scale and bounds for pair.
func Decide(pair dataset.Pair) (Scale, float64, float64) {
	we, ne := pair.Wide.Errors(), pair.Narrow.Errors()
	lo, hi := ErrorBounds(we, ne)
	return DecideScale(we, ne), lo, hi
}

// Render writes the three figures for pair. exact is drawn as the reference
// line of the area plots. Figures are written one after the other; when a
// later figure fails, the files already written stay on disk and are listed
// in the returned Result.
func Render(pair dataset.Pair, exact float64, opts Options) (Result, error) {
	dpi := opts.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	if dpi > MaxDPI {
		return Result{}, apperrors.RenderError{Artifact: AreaFile, Cause: fmt.Errorf("dpi %d exceeds %d", dpi, MaxDPI)}
	}
	scale, lo, hi := Decide(pair)
	res := Result{Scale: scale, YMin: lo, YMax: hi}

	area, err := AreaPlot(pair, exact)
	if err != nil {
		return res, apperrors.RenderError{Artifact: AreaFile, Cause: err}
	}
	path := filepath.Join(opts.Dir, AreaFile)
	if err := save(path, dpi, 12*vg.Inch, 6*vg.Inch, func(dc draw.Canvas) { area.Draw(dc) }); err != nil {
		return res, apperrors.RenderError{Artifact: AreaFile, Cause: err}
	}
	res.Files = append(res.Files, path)

	errPlot, err := ErrorPlot(pair, scale, lo, hi)
	if err != nil {
		return res, apperrors.RenderError{Artifact: ErrorFile, Cause: err}
	}
	errPlot.X.Label.Text = xLabel
	path = filepath.Join(opts.Dir, ErrorFile)
	if err := save(path, dpi, 12*vg.Inch, 6*vg.Inch, func(dc draw.Canvas) { errPlot.Draw(dc) }); err != nil {
		return res, apperrors.RenderError{Artifact: ErrorFile, Cause: err}
	}
	res.Files = append(res.Files, path)

	top, err := AreaPlot(pair, exact)
	if err != nil {
		return res, apperrors.RenderError{Artifact: CombinedFile, Cause: err}
	}
	top.X.Label.Text = ""
	bottom, err := ErrorPlot(pair, scale, lo, hi)
	if err != nil {
		return res, apperrors.RenderError{Artifact: CombinedFile, Cause: err}
	}
	path = filepath.Join(opts.Dir, CombinedFile)
	err = save(path, dpi, 12*vg.Inch, 10*vg.Inch, func(dc draw.Canvas) {
		tiles := draw.Tiles{Rows: 2, Cols: 1, PadY: vg.Points(12)}
		canvases := plot.Align([][]*plot.Plot{{top}, {bottom}}, tiles, dc)
		top.Draw(canvases[0][0])
		bottom.Draw(canvases[1][0])
	})
	if err != nil {
		return res, apperrors.RenderError{Artifact: CombinedFile, Cause: err}
	}
	res.Files = append(res.Files, path)
	return res, nil
}

// AreaPlot builds the approximate area plot with a dashed reference line at exact.
func AreaPlot(pair dataset.Pair, exact float64) (*plot.Plot, error) {
	p := newPlot(areaTitle, "Approximate area")

	wide, err := seriesLine(pair.Wide.Ns(), pair.Wide.Areas(), wideColor)
	if err != nil {
		return nil, fmt.Errorf("wide series: %w", err)
	}
	narrow, err := seriesLine(pair.Narrow.Ns(), pair.Narrow.Areas(), narrowColor)
	if err != nil {
		return nil, fmt.Errorf("narrow series: %w", err)
	}

	xs := pair.Wide.Ns()
	if len(xs) == 0 {
		return nil, fmt.Errorf("no samples to plot")
	}
	ref, err := plotter.NewLine(plotter.XYs{{X: xs[0], Y: exact}, {X: xs[len(xs)-1], Y: exact}})
	if err != nil {
		return nil, fmt.Errorf("reference line: %w", err)
	}
	ref.LineStyle.Color = exactColor
	ref.LineStyle.Width = vg.Points(1.5)
	ref.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}

	p.Add(wide, narrow, ref)
	p.Legend.Add("Wide region", wide)
	p.Legend.Add("Narrow region", narrow)
	p.Legend.Add(fmt.Sprintf("Exact value (%.4f)", exact), ref)
	return p, nil
}

// ErrorPlot builds the relative error plot on the given scale and bounds.
// On a log axis, non-positive errors are drawn at the lower bound.
func ErrorPlot(pair dataset.Pair, scale Scale, lo, hi float64) (*plot.Plot, error) {
	p := newPlot(errorTitle, "Relative error")

	we, ne := pair.Wide.Errors(), pair.Narrow.Errors()
	if scale == ScaleLog {
		we, ne = clampBelow(we, lo), clampBelow(ne, lo)
	}
	wide, err := seriesLine(pair.Wide.Ns(), we, wideColor)
	if err != nil {
		return nil, fmt.Errorf("wide series: %w", err)
	}
	narrow, err := seriesLine(pair.Narrow.Ns(), ne, narrowColor)
	if err != nil {
		return nil, fmt.Errorf("narrow series: %w", err)
	}
	p.Add(wide, narrow)
	p.Legend.Add("Wide region", wide)
	p.Legend.Add("Narrow region", narrow)

	if scale == ScaleLog {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	p.Y.Min, p.Y.Max = lo, hi
	return p, nil
}

func newPlot(title, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Legend.Top = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Horizontal.Color = gridColor
	p.Add(grid)
	return p
}

func seriesLine(xs, ys []float64, c color.Color) (*plotter.Line, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("length mismatch: %d x values, %d y values", len(xs), len(ys))
	}
	pts := make(plotter.XYs, len(xs))
	for i := range pts {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	l.LineStyle.Color = c
	l.LineStyle.Width = vg.Points(1)
	return l, nil
}

func clampBelow(xs []float64, floor float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = max(x, floor)
	}
	return out
}

// save draws onto a fresh image canvas and writes it as PNG. The file is
// closed before save returns.
func save(path string, dpi int, w, h vg.Length, drawFn func(draw.Canvas)) error {
	c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(dpi))
	dc := draw.New(c)
	dc.SetColor(color.White)
	dc.Fill(dc.Rectangle.Path())
	drawFn(dc)

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
