package sweep

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when an input falls outside its interactive range.
var ErrOutOfRange = errors.New("value out of range")

// Bound is the interactive range of one input.
type Bound struct {
	Min     float64
	Max     float64
	Step    float64
	Default float64
}

// Contains reports whether v lies within the bound, inclusive.
func (b Bound) Contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// Clamp limits v to the bound.
func (b Bound) Clamp(v float64) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// Limits are the ranges offered to interactive callers. The sweep itself
// accepts any finite target; these only bound slider-style inputs.
type Limits struct {
	ResistanceOhms Bound
	ReactanceOhms  Bound
	FrequencyGHz   Bound
}

// DefaultLimits returns R 10..100 Ohm, X -50..50 Ohm and F 0.1..6 GHz.
func DefaultLimits() Limits {
	return Limits{
		ResistanceOhms: Bound{Min: 10, Max: 100, Step: 1, Default: 40},
		ReactanceOhms:  Bound{Min: -50, Max: 50, Step: 1, Default: 13},
		FrequencyGHz:   Bound{Min: 0.1, Max: 6, Step: 0.1, Default: 2.4},
	}
}

// DefaultTarget returns the target built from the default slider positions.
func (l Limits) DefaultTarget() Target {
	return TargetFromGHz(l.ResistanceOhms.Default, l.ReactanceOhms.Default, l.FrequencyGHz.Default)
}

// Validate checks resistance, reactance and frequency (GHz) against the limits.
func (l Limits) Validate(resistance, reactance, frequencyGHz float64) error {
	if !l.ResistanceOhms.Contains(resistance) {
		return fmt.Errorf("%w: resistance %g not in [%g, %g] Ohm",
			ErrOutOfRange, resistance, l.ResistanceOhms.Min, l.ResistanceOhms.Max)
	}
	if !l.ReactanceOhms.Contains(reactance) {
		return fmt.Errorf("%w: reactance %g not in [%g, %g] Ohm",
			ErrOutOfRange, reactance, l.ReactanceOhms.Min, l.ReactanceOhms.Max)
	}
	if !l.FrequencyGHz.Contains(frequencyGHz) {
		return fmt.Errorf("%w: frequency %g not in [%g, %g] GHz",
			ErrOutOfRange, frequencyGHz, l.FrequencyGHz.Min, l.FrequencyGHz.Max)
	}
	return nil
}
