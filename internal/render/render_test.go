package render

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RMahshie/matchviz/internal/sweep"
)

func referenceResult(t *testing.T) *sweep.Result {
	t.Helper()

	res, err := sweep.Compute(sweep.TargetFromGHz(40, 13, 2.4))
	require.NoError(t, err)
	return res
}

func TestScatterPNG(t *testing.T) {
	var buf bytes.Buffer
	err := Scatter(&buf, referenceResult(t), Options{Width: 640, Height: 400, Format: PNG})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")), "expected PNG signature")
}

func TestScatterSVG(t *testing.T) {
	var buf bytes.Buffer
	err := Scatter(&buf, referenceResult(t), Options{Format: SVG})
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<svg"), "expected svg document")
	assert.Contains(t, out, "Inductance L (nH)")
	assert.Contains(t, out, "Capacitance C (pF)")
	assert.Contains(t, out, "Matching for Z = 40 + j13 at 2.40 GHz")
}

func TestScatterSkipsOpenAndNonFinite(t *testing.T) {
	res := &sweep.Result{
		Target: sweep.TargetFromGHz(50, 0, 1),
		Points: []sweep.Point{
			{InductanceHenries: 1e-9, Capacitance: sweep.Capacitance{Open: true}, MatchErrorOhms: 1},
			{InductanceHenries: 2e-9, Capacitance: sweep.Capacitance{Farads: 2e-12}, MatchErrorOhms: math.NaN()},
			{InductanceHenries: 3e-9, Capacitance: sweep.Capacitance{Farads: 3e-12}, MatchErrorOhms: 2},
		},
	}

	xs, ys, errs := plottable(res)
	assert.InDeltaSlice(t, []float64{3}, xs, 1e-9)
	assert.InDeltaSlice(t, []float64{3}, ys, 1e-9)
	assert.Equal(t, []float64{2}, errs)

	var buf bytes.Buffer
	require.NoError(t, Scatter(&buf, res, Options{Format: SVG}))
}

func TestScatterNothingToPlot(t *testing.T) {
	res := &sweep.Result{
		Target: sweep.TargetFromGHz(50, 0, 1),
		Points: []sweep.Point{
			{InductanceHenries: 1e-9, Capacitance: sweep.Capacitance{Open: true}},
		},
	}

	var buf bytes.Buffer
	assert.ErrorIs(t, Scatter(&buf, res, Options{}), ErrNothingToPlot)
	assert.ErrorIs(t, Scatter(&buf, nil, Options{}), ErrNothingToPlot)
	assert.Zero(t, buf.Len())
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "png", want: PNG},
		{in: "SVG", want: SVG},
		{in: "", want: PNG},
		{in: " svg ", want: SVG},
		{in: "gif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatMetadata(t *testing.T) {
	assert.Equal(t, "image/png", PNG.ContentType())
	assert.Equal(t, "image/svg+xml", SVG.ContentType())
	assert.Equal(t, ".svg", SVG.Extension())
}

func TestOptionsNormalized(t *testing.T) {
	o := Options{}.normalized()
	assert.Equal(t, DefaultWidth, o.Width)
	assert.Equal(t, DefaultHeight, o.Height)
	assert.Equal(t, PNG, o.Format)

	o = Options{Width: 10, Height: 100000}.normalized()
	assert.Equal(t, minDimension, o.Width)
	assert.Equal(t, maxDimension, o.Height)
}
