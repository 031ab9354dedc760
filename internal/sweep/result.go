package sweep

import (
	"fmt"
	"math"
	"sort"
)

// Capacitance is a sweep capacitor value. Open marks a sample where no
// capacitor is needed (infinite capacitance); Farads is zero in that case.
type Capacitance struct {
	Farads float64
	Open   bool
}

// Picofarads returns the value in pF, +Inf for an open capacitor.
func (c Capacitance) Picofarads() float64 {
	if c.Open {
		return math.Inf(1)
	}
	return c.Farads * 1e12
}

// Point is one sample of a sweep.
type Point struct {
	InductanceHenries float64
	Capacitance       Capacitance
	MatchErrorOhms    float64
}

// InductanceNH returns the inductance in nH.
func (p Point) InductanceNH() float64 {
	return p.InductanceHenries * 1e9
}

// Finite reports whether every value of the point is a finite number. Open
// capacitors count as finite: they are tagged, not infinite.
func (p Point) Finite() bool {
	if !isFinite(p.InductanceHenries) || !isFinite(p.MatchErrorOhms) {
		return false
	}
	return p.Capacitance.Open || isFinite(p.Capacitance.Farads)
}

// Result is the outcome of one sweep. It is not modified after Compute returns.
type Result struct {
	Target             Target
	Grid               Grid
	LoadResistanceOhms float64
	Points             []Point
}

// Title formats the summary line shown above a plot.
func (r *Result) Title() string {
	return fmt.Sprintf("Matching for Z = %g + j%g at %.2f GHz",
		r.Target.ResistanceOhms, r.Target.ReactanceOhms, r.Target.FrequencyGHz())
}

// Best returns the point with the lowest match error. Ties go to the
// smallest inductance. ok is false when there is no finite point.
func (r *Result) Best() (best Point, ok bool) {
	for _, p := range r.Points {
		if !p.Finite() {
			continue
		}
		if !ok || p.MatchErrorOhms < best.MatchErrorOhms {
			best = p
			ok = true
		}
	}
	return best, ok
}

// Ranked returns up to n finite points ordered by ascending match error.
// n <= 0 returns all of them.
func (r *Result) Ranked(n int) []Point {
	out := make([]Point, 0, len(r.Points))
	for _, p := range r.Points {
		if p.Finite() {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].MatchErrorOhms < out[j].MatchErrorOhms
	})
	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out
}

// ErrorRange returns the smallest and largest finite match error.
// Both are zero when there is no finite point.
func (r *Result) ErrorRange() (lo, hi float64) {
	first := true
	for _, p := range r.Points {
		if !isFinite(p.MatchErrorOhms) {
			continue
		}
		if first {
			lo, hi = p.MatchErrorOhms, p.MatchErrorOhms
			first = false
			continue
		}
		lo = math.Min(lo, p.MatchErrorOhms)
		hi = math.Max(hi, p.MatchErrorOhms)
	}
	return lo, hi
}

// NonFinite counts points carrying NaN or infinite values.
func (r *Result) NonFinite() int {
	n := 0
	for _, p := range r.Points {
		if !p.Finite() {
			n++
		}
	}
	return n
}

// OpenCount counts points where no capacitor is needed.
func (r *Result) OpenCount() int {
	n := 0
	for _, p := range r.Points {
		if p.Capacitance.Open {
			n++
		}
	}
	return n
}
