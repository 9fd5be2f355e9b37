package importer

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/chiuwenyu/singlephase/internal/calc/singlephase"
	"github.com/chiuwenyu/singlephase/internal/units"
)

const sheetName = "Segments"

// Columns of an import sheet. Export appends the result columns.
var inputHeader = []string{"name", "w_kg_h", "rho_kg_m3", "mu_cp", "id_in", "roughness_mm", "sf"}

var resultHeader = []string{"velocity_m_s", "reynolds", "darcy_friction_factor", "dp_kg_cm2_100m", "velocity_head", "regime", "notes"}

// Segment is one parsed sheet row; Row is the 1-based sheet row number.
type Segment struct {
	Row   int
	Input singlephase.Input
}

type RowError struct {
	Row int    `json:"row"`
	Err string `json:"error"`
}

// ReadSegments parses the first sheet of an xlsx workbook. The first row is
// a header. Rows that cannot be parsed are reported and skipped.
func ReadSegments(r io.Reader) ([]Segment, []RowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0), excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("empty sheet")
	}

	var items []Segment
	var skipped []RowError
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		in, err := parseSegmentRow(rows[i])
		if err != nil {
			skipped = append(skipped, RowError{Row: i + 1, Err: err.Error()})
			continue
		}
		items = append(items, Segment{Row: i + 1, Input: in})
	}
	return items, skipped, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parseSegmentRow(row []string) (singlephase.Input, error) {
	// expected: name, w, rho, mu_cp, id_in, roughness_mm(optional), sf(optional)
	if len(row) < 5 {
		return singlephase.Input{}, fmt.Errorf("bad row: %d columns", len(row))
	}
	var vals [6]float64
	for i := 1; i < len(row) && i <= 6; i++ {
		if strings.TrimSpace(row[i]) == "" {
			continue
		}
		v, err := toFloat(row[i])
		if err != nil {
			return singlephase.Input{}, fmt.Errorf("column %s: %w", inputHeader[i], err)
		}
		vals[i-1] = v
	}
	return singlephase.Input{
		Name:           strings.TrimSpace(row[0]),
		FlowKgH:        vals[0],
		DensityKgM3:    vals[1],
		ViscosityCP:    vals[2],
		IDValue:        vals[3],
		IDUnit:         string(units.Inches),
		RoughnessValue: vals[4],
		RoughnessUnit:  string(units.Millimetres),
		SafetyFactor:   vals[5],
	}, nil
}

func toFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return v, nil
}

// WriteResults calculates every item and writes inputs and results as an
// xlsx workbook. Failed items keep their inputs and carry the error in the
// notes column.
func WriteResults(w io.Writer, items []singlephase.Input) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	header := make([]interface{}, 0, len(inputHeader)+len(resultHeader))
	for _, h := range append(append([]string{}, inputHeader...), resultHeader...) {
		header = append(header, h)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}

	for i, in := range items {
		row := inputRow(in)
		res, err := singlephase.Calculate(in)
		if err != nil {
			row = append(row, "", "", "", "", "", "", err.Error())
		} else {
			row = append(row, res.VelocityMS, res.Reynolds, res.FrictionFactor,
				res.PressureDrop100, res.VelocityHead, string(res.Regime), res.Notes)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}
	return f.Write(w)
}

// inputRow writes the item back in sheet units so an export can be
// re-imported.
func inputRow(in singlephase.Input) []interface{} {
	w, rho, mu, id, e, sf, err := in.Normalize()
	if err != nil {
		return []interface{}{in.Name, in.FlowKgH, in.DensityKgM3, "", "", "", in.SafetyFactor}
	}
	return []interface{}{
		in.Name, w, rho,
		units.PascalSecondsToCentipoise(mu),
		units.MetresToInches(id),
		units.MetresToMillimetres(e),
		sf,
	}
}
