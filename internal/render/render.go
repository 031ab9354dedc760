// Package render draws sweep results as colour-mapped scatter charts.
package render

import (
	"errors"
	"fmt"
	"io"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/RMahshie/matchviz/internal/sweep"
)

// Format is an output image format.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

const (
	DefaultWidth  = 1024
	DefaultHeight = 640
	minDimension  = 200
	maxDimension  = 4096
	dotWidth      = 4
)

var (
	// ErrNothingToPlot is returned when no point of the result can be drawn.
	ErrNothingToPlot = errors.New("no drawable points")
	// ErrUnknownFormat is returned for an unsupported image format.
	ErrUnknownFormat = errors.New("unknown image format")
)

// ParseFormat maps "png" or "svg" (any case) to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case PNG, "":
		return PNG, nil
	case SVG:
		return SVG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == SVG {
		return chart.ContentTypeSVG
	}
	return chart.ContentTypePNG
}

// Extension returns the file extension including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

func (f Format) provider() chart.RendererProvider {
	if f == SVG {
		return chart.SVG
	}
	return chart.PNG
}

// Options control the rendered image.
type Options struct {
	Width  int
	Height int
	Format Format
}

func (o Options) normalized() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	o.Width = clamp(o.Width, minDimension, maxDimension)
	o.Height = clamp(o.Height, minDimension, maxDimension)
	if o.Format == "" {
		o.Format = PNG
	}
	return o
}

// Scatter writes an L vs C scatter chart of res to w. Each dot is coloured
// by its match error on the Viridis scale. Samples without a capacitor and
// non-finite samples are left out.
func Scatter(w io.Writer, res *sweep.Result, opts Options) error {
	opts = opts.normalized()

	xs, ys, errs := plottable(res)
	if len(xs) == 0 {
		return ErrNothingToPlot
	}
	lo, hi := minMax(errs)

	colorByError := func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
		if hi == lo {
			return chart.Viridis(0, 0, 1)
		}
		return chart.Viridis(errs[index], lo, hi)
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("%s   |Zin - Ztarget| %.3g .. %.3g Ohm", res.Title(), lo, hi),
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:           "Inductance L (nH)",
			ValueFormatter: formatTick,
		},
		YAxis: chart.YAxis{
			Name:           "Capacitance C (pF)",
			ValueFormatter: formatTick,
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: "L vs C",
				Style: chart.Style{
					StrokeWidth:      chart.Disabled,
					DotWidth:         dotWidth,
					DotColorProvider: colorByError,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}

	// go-chart refuses a zero-width x range
	if xlo, xhi := minMax(xs); xlo == xhi {
		graph.XAxis.Range = &chart.ContinuousRange{Min: xlo - 0.5, Max: xhi + 0.5}
	}
	if ylo, yhi := minMax(ys); ylo == yhi {
		graph.YAxis.Range = &chart.ContinuousRange{Min: ylo * 0.5, Max: yhi * 1.5}
	}

	if err := graph.Render(opts.Format.provider(), w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// plottable returns L (nH), C (pF) and error for every drawable point.
func plottable(res *sweep.Result) (xs, ys, errs []float64) {
	if res == nil {
		return nil, nil, nil
	}
	for _, p := range res.Points {
		if p.Capacitance.Open || !p.Finite() {
			continue
		}
		xs = append(xs, p.InductanceNH())
		ys = append(ys, p.Capacitance.Picofarads())
		errs = append(errs, p.MatchErrorOhms)
	}
	return xs, ys, errs
}

func minMax(values []float64) (lo, hi float64) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func formatTick(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.4g", f)
	}
	return ""
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
