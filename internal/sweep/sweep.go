// Package sweep computes L-C matching solutions for a fixed resistive load.
//
// For every inductance on a fixed grid the inductor is placed in parallel
// with the load, the capacitor that cancels the remaining reactance is
// derived, and the residual mismatch against the target impedance is
// recorded.
package sweep

import (
	"errors"
	"fmt"
	"math"

	"github.com/RMahshie/matchviz/pkg/impedance"
)

// LoadResistanceOhms is the terminating load the network matches into.
const LoadResistanceOhms = 50.0

var (
	// ErrInvalidFrequency is returned for a frequency that is not a finite value > 0.
	ErrInvalidFrequency = errors.New("invalid frequency")
	// ErrInvalidTarget is returned when the target impedance is not finite.
	ErrInvalidTarget = errors.New("invalid target impedance")
	// ErrInvalidGrid is returned for an unusable inductance grid.
	ErrInvalidGrid = errors.New("invalid inductance grid")
)

// Target is the impedance the network should present at a frequency.
type Target struct {
	ResistanceOhms float64
	ReactanceOhms  float64
	FrequencyHz    float64
}

// TargetFromGHz builds a Target from a frequency given in GHz.
func TargetFromGHz(resistance, reactance, frequencyGHz float64) Target {
	return Target{
		ResistanceOhms: resistance,
		ReactanceOhms:  reactance,
		FrequencyHz:    frequencyGHz * 1e9,
	}
}

// Impedance returns R + jX.
func (t Target) Impedance() impedance.Impedance {
	return impedance.New(t.ResistanceOhms, t.ReactanceOhms)
}

// FrequencyGHz returns the frequency in GHz.
func (t Target) FrequencyGHz() float64 {
	return t.FrequencyHz / 1e9
}

// Validate rejects targets the sweep cannot evaluate.
func (t Target) Validate() error {
	if !isFinite(t.FrequencyHz) || t.FrequencyHz <= 0 {
		return fmt.Errorf("%w: frequency must be > 0 Hz (got %g)", ErrInvalidFrequency, t.FrequencyHz)
	}
	if !isFinite(t.ResistanceOhms) || !isFinite(t.ReactanceOhms) {
		return fmt.Errorf("%w: %g%+gj", ErrInvalidTarget, t.ResistanceOhms, t.ReactanceOhms)
	}
	return nil
}

// Calculator runs sweeps over a fixed grid. It holds no mutable state and is
// safe for concurrent use.
type Calculator struct {
	grid Grid
	load float64
}

// NewCalculator returns a Calculator for the given grid and the 50 Ohm load.
func NewCalculator(grid Grid) (*Calculator, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{grid: grid, load: LoadResistanceOhms}, nil
}

// Grid returns the calculator's inductance grid.
func (c *Calculator) Grid() Grid {
	return c.grid
}

var defaultCalculator = &Calculator{grid: DefaultGrid(), load: LoadResistanceOhms}

// Compute runs the sweep for t over the reference grid.
func Compute(t Target) (*Result, error) {
	return defaultCalculator.Compute(t)
}

// Compute runs the sweep for t. Every grid sample yields exactly one Point.
func (c *Calculator) Compute(t Target) (*Result, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	omega := 2 * math.Pi * t.FrequencyHz
	target := t.Impedance()

	inductances := c.grid.Values()
	points := make([]Point, len(inductances))
	for i, l := range inductances {
		points[i] = solve(omega, l, c.load, target)
	}

	return &Result{
		Target:             t,
		Grid:               c.grid,
		LoadResistanceOhms: c.load,
		Points:             points,
	}, nil
}

// ParallelWithLoad returns the impedance of an inductor in parallel with a
// resistive load at angular frequency omega.
func ParallelWithLoad(omega, inductance, load float64) impedance.Impedance {
	xl := impedance.Reactance(omega * inductance)
	r := impedance.Resistor(load)
	return xl.Mul(r).Div(r.Add(xl))
}

func solve(omega, inductance, load float64, target impedance.Impedance) Point {
	zParallel := ParallelWithLoad(omega, inductance, load)
	zRequired := target.Sub(zParallel)
	xc := zRequired.Imag

	var (
		c     Capacitance
		added impedance.Impedance
	)
	if xc == 0 {
		// No reactance left to cancel: an open capacitor adds nothing.
		c = Capacitance{Open: true}
	} else {
		c = Capacitance{Farads: 1 / (omega * math.Abs(xc))}
		reactance := 1 / (omega * c.Farads)
		// The branch follows the sign of the required reactance, not the
		// physical sign of a capacitor (which is always negative).
		if xc < 0 {
			added = impedance.Reactance(-reactance)
		} else {
			added = impedance.Reactance(reactance)
		}
	}

	zTotal := zParallel.Add(added)
	return Point{
		InductanceHenries: inductance,
		Capacitance:       c,
		MatchErrorOhms:    zTotal.Sub(target).Abs(),
	}
}
