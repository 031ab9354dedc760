package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/RMahshie/matchviz/internal/sweep"
)

var tsvHeader = []string{"L [nH]", "C [pF]", "error [Ω]"}

// WriteTSV writes one tab separated row per point. Values use 4 significant
// digits; an open capacitor is written as "inf".
func WriteTSV(w io.Writer, res *sweep.Result) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(tsvHeader); err != nil {
		return err
	}
	for _, p := range res.Points {
		row := []string{
			fmt4(p.InductanceHenries * toNanohenries),
			capacitanceText(p.Capacitance),
			fmt4(p.MatchErrorOhms),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveTSV writes the TSV rendering of res to path.
func SaveTSV(path string, res *sweep.Result) error {
	fp, err := createFile(path)
	if err != nil {
		return err
	}
	defer fp.Close()

	if err := WriteTSV(fp, res); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return fp.Close()
}

func capacitanceText(c sweep.Capacitance) string {
	if c.Open {
		return "inf"
	}
	return fmt4(c.Farads * toPicofarads)
}
