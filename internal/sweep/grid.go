package sweep

import (
	"fmt"
	"math"
)

// Default inductance grid: 500 samples from 0.5 nH to 10 nH inclusive.
const (
	DefaultStartHenries = 0.5e-9
	DefaultStopHenries  = 10e-9
	DefaultSamples      = 500
)

// Grid is a linearly spaced inductance grid, endpoints inclusive.
type Grid struct {
	StartHenries float64
	StopHenries  float64
	Samples      int
}

// DefaultGrid returns the 0.5..10 nH, 500 sample grid.
func DefaultGrid() Grid {
	return Grid{
		StartHenries: DefaultStartHenries,
		StopHenries:  DefaultStopHenries,
		Samples:      DefaultSamples,
	}
}

// Validate checks the grid can produce a strictly increasing sequence.
func (g Grid) Validate() error {
	if g.Samples < 2 {
		return fmt.Errorf("%w: samples must be at least 2 (got %d)", ErrInvalidGrid, g.Samples)
	}
	if !isFinite(g.StartHenries) || !isFinite(g.StopHenries) {
		return fmt.Errorf("%w: bounds must be finite", ErrInvalidGrid)
	}
	if g.StartHenries <= 0 {
		return fmt.Errorf("%w: start must be > 0 (got %g)", ErrInvalidGrid, g.StartHenries)
	}
	if g.StopHenries <= g.StartHenries {
		return fmt.Errorf("%w: stop must be > start (got start=%g stop=%g)", ErrInvalidGrid, g.StartHenries, g.StopHenries)
	}
	return nil
}

// Values returns the grid samples. The last sample is exactly StopHenries.
func (g Grid) Values() []float64 {
	if g.Samples <= 0 {
		return nil
	}
	out := make([]float64, g.Samples)
	if g.Samples == 1 {
		out[0] = g.StartHenries
		return out
	}
	step := (g.StopHenries - g.StartHenries) / float64(g.Samples-1)
	for i := range out {
		out[i] = g.StartHenries + float64(i)*step
	}
	out[len(out)-1] = g.StopHenries
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
