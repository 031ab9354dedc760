package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/RMahshie/matchviz/internal/sweep"
)

var tableHeader = []string{"No", "L [nH]", "C [pF]", "error [Ω]"}

// WriteTable writes points as a boxed, right aligned text table.
func WriteTable(w io.Writer, points []sweep.Point) error {
	if len(points) == 0 {
		_, err := fmt.Fprintln(w, "(none)")
		return err
	}

	rows := make([][]string, len(points))
	for i, p := range points {
		rows[i] = []string{
			fmt.Sprintf("%d", i+1),
			fmt4(p.InductanceHenries * toNanohenries),
			capacitanceText(p.Capacitance),
			fmt4(p.MatchErrorOhms),
		}
	}

	widths := make([]int, len(tableHeader))
	for i, h := range tableHeader {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for j, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[j] {
				widths[j] = cw
			}
		}
	}

	var b strings.Builder
	line := func() {
		b.WriteString("+")
		for _, width := range widths {
			b.WriteString(strings.Repeat("-", width+2))
			b.WriteString("+")
		}
		b.WriteString("\n")
	}
	writeRow := func(cells []string, rightAlign bool) {
		b.WriteString("|")
		for j, cell := range cells {
			pad := strings.Repeat(" ", widths[j]-runewidth.StringWidth(cell))
			if rightAlign {
				b.WriteString(" " + pad + cell + " |")
			} else {
				b.WriteString(" " + cell + pad + " |")
			}
		}
		b.WriteString("\n")
	}

	line()
	writeRow(tableHeader, false)
	line()
	for _, row := range rows {
		writeRow(row, true)
	}
	line()

	_, err := io.WriteString(w, b.String())
	return err
}
