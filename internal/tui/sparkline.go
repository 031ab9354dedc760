package tui

import (
	"math"
	"strings"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparkline draws values as a single line of block characters, width columns
// wide. Each column shows the mean of the values that fall into it. Non-finite
// values are skipped; a column without finite values is blank.
func sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	if width > len(values) {
		width = len(values)
	}

	cols := make([]float64, width)
	ok := make([]bool, width)
	for c := range cols {
		from := c * len(values) / width
		to := (c + 1) * len(values) / width
		sum, n := 0.0, 0
		for _, v := range values[from:to] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			sum += v
			n++
		}
		if n > 0 {
			cols[c] = sum / float64(n)
			ok[c] = true
		}
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for c, v := range cols {
		if !ok[c] {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	var b strings.Builder
	top := len(sparkRunes) - 1
	for c, v := range cols {
		if !ok[c] {
			b.WriteRune(' ')
			continue
		}
		idx := 0
		if hi > lo {
			idx = int(math.Round((v - lo) / (hi - lo) * float64(top)))
		}
		b.WriteRune(sparkRunes[idx])
	}
	return b.String()
}
