package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/RMahshie/matchviz/internal/sweep"
)

const (
	summarySheet = "Summary"
	sweepSheet   = "Sweep"
)

// WriteXLSX writes res as a workbook with a Summary and a Sweep sheet.
func WriteXLSX(w io.Writer, res *sweep.Result) error {
	f, err := buildWorkbook(res)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SaveXLSX writes the workbook for res to path.
func SaveXLSX(path string, res *sweep.Result) error {
	f, err := buildWorkbook(res)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func buildWorkbook(res *sweep.Result) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, fmt.Errorf("failed to name summary sheet: %w", err)
	}
	if err := writeSummary(f, res); err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(sweepSheet); err != nil {
		return nil, fmt.Errorf("failed to create sweep sheet: %w", err)
	}
	if err := writePoints(f, res.Points); err != nil {
		return nil, err
	}
	return f, nil
}

func writeSummary(f *excelize.File, res *sweep.Result) error {
	rows := [][]interface{}{
		{"Title", res.Title()},
		{"R target [Ω]", res.Target.ResistanceOhms},
		{"X target [Ω]", res.Target.ReactanceOhms},
		{"f [GHz]", res.Target.FrequencyGHz()},
		{"R load [Ω]", res.LoadResistanceOhms},
		{"Samples", len(res.Points)},
		{"No capacitor", res.OpenCount()},
		{"Non-finite", res.NonFinite()},
	}
	if best, ok := res.Best(); ok {
		rows = append(rows,
			[]interface{}{"Best L [nH]", best.InductanceHenries * toNanohenries},
			[]interface{}{"Best C [pF]", capacitanceCell(best.Capacitance)},
			[]interface{}{"Best error [Ω]", best.MatchErrorOhms},
		)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	return nil
}

func writePoints(f *excelize.File, points []sweep.Point) error {
	header := []interface{}{"No", "L [nH]", "C [pF]", "No capacitor", "|Zin - Ztarget| [Ω]"}
	if err := f.SetSheetRow(sweepSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, p := range points {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			i + 1,
			p.InductanceHenries * toNanohenries,
			capacitanceCell(p.Capacitance),
			p.Capacitance.Open,
			p.MatchErrorOhms,
		}
		if err := f.SetSheetRow(sweepSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	return nil
}

// capacitanceCell leaves open capacitors blank; spreadsheets have no infinity.
func capacitanceCell(c sweep.Capacitance) interface{} {
	if c.Open {
		return nil
	}
	return c.Farads * toPicofarads
}
