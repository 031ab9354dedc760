// Package impedance provides a small complex impedance value type.
package impedance

import (
	"fmt"
	"math"
)

// Impedance is a complex impedance in Ohms: Real + j*Imag.
type Impedance struct {
	Real float64 `json:"real" doc:"Resistance in Ohms"`
	Imag float64 `json:"imag" doc:"Reactance in Ohms"`
}

// New returns the impedance r + jx.
func New(r, x float64) Impedance {
	return Impedance{Real: r, Imag: x}
}

// Resistor returns a purely resistive impedance.
func Resistor(r float64) Impedance {
	return Impedance{Real: r}
}

// Reactance returns a purely reactive impedance.
func Reactance(x float64) Impedance {
	return Impedance{Imag: x}
}

// Add returns z + o.
func (z Impedance) Add(o Impedance) Impedance {
	return Impedance{Real: z.Real + o.Real, Imag: z.Imag + o.Imag}
}

// Sub returns z - o.
func (z Impedance) Sub(o Impedance) Impedance {
	return Impedance{Real: z.Real - o.Real, Imag: z.Imag - o.Imag}
}

// Mul returns z * o.
func (z Impedance) Mul(o Impedance) Impedance {
	return Impedance{
		Real: z.Real*o.Real - z.Imag*o.Imag,
		Imag: z.Real*o.Imag + z.Imag*o.Real,
	}
}

// Div returns z / o using Smith's algorithm. Dividing by zero yields NaN parts.
func (z Impedance) Div(o Impedance) Impedance {
	absReal := math.Abs(o.Real)
	absImag := math.Abs(o.Imag)

	switch {
	case absReal >= absImag:
		if absReal == 0 {
			return Impedance{Real: math.NaN(), Imag: math.NaN()}
		}
		ratio := o.Imag / o.Real
		denom := o.Real + o.Imag*ratio
		return Impedance{
			Real: (z.Real + z.Imag*ratio) / denom,
			Imag: (z.Imag - z.Real*ratio) / denom,
		}
	case absImag >= absReal:
		ratio := o.Real / o.Imag
		denom := o.Real*ratio + o.Imag
		return Impedance{
			Real: (z.Real*ratio + z.Imag) / denom,
			Imag: (z.Imag*ratio - z.Real) / denom,
		}
	default:
		// at least one part of o is NaN
		return Impedance{Real: math.NaN(), Imag: math.NaN()}
	}
}

// Scale multiplies both parts by k.
func (z Impedance) Scale(k float64) Impedance {
	return Impedance{Real: z.Real * k, Imag: z.Imag * k}
}

// Conj returns the complex conjugate of z.
func (z Impedance) Conj() Impedance {
	return Impedance{Real: z.Real, Imag: -z.Imag}
}

// Abs returns the magnitude |z|.
func (z Impedance) Abs() float64 {
	return math.Hypot(z.Real, z.Imag)
}

// Parallel returns the parallel combination z*o / (z+o).
func (z Impedance) Parallel(o Impedance) Impedance {
	return z.Mul(o).Div(z.Add(o))
}

// IsFinite reports whether both parts are finite numbers.
func (z Impedance) IsFinite() bool {
	return !math.IsNaN(z.Real) && !math.IsInf(z.Real, 0) &&
		!math.IsNaN(z.Imag) && !math.IsInf(z.Imag, 0)
}

// String formats z as "R+jX" or "R-jX".
func (z Impedance) String() string {
	if z.Imag < 0 {
		return fmt.Sprintf("%g-j%g", z.Real, -z.Imag)
	}
	return fmt.Sprintf("%g+j%g", z.Real, z.Imag)
}
