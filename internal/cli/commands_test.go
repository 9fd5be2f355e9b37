package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/chiuwenyu/singlephase/internal/calc/singlephase"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd("test", &out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDemo(t *testing.T) {
	out, err := run(t, "demo")
	require.NoError(t, err)

	want := []string{
		"Act. ID :  13.25 inch, equal to 0.33655000 meters",
		"Velocity (m/s) : 1.2386",
		"Pressure Drop (Kg/cm^2/100m) : 0.011715",
		"1.0 V.H. (Kg/m/s^2) : 582.9828",
		"Reynold No. [-] : 2.9334e+006",
	}
	assert.Equal(t, strings.Join(want, "\n")+"\n", out)
}

func TestCalc_JSON(t *testing.T) {
	out, err := run(t, "calc", "--json", "--name", "P-101",
		"--w", "150734", "--rho", "380", "--mu", "0.054", "--id", "13.25")
	require.NoError(t, err)

	var res singlephase.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "P-101", res.Name)
	assert.Equal(t, singlephase.RegimeTurbulent, res.Regime)
	assert.InEpsilon(t, 0.011714964623188415, res.PressureDrop100, 1e-9)
}

func TestCalc_Table(t *testing.T) {
	out, err := run(t, "calc", "--w", "3600", "--rho", "1000", "--mu", "1000", "--id", "0.1", "--id-unit", "m")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	assert.Contains(t, lines[2], "laminar")
}

func TestCalc_Errors(t *testing.T) {
	_, err := run(t, "calc", "--w", "1", "--rho", "0", "--mu", "1", "--id", "1")
	assert.ErrorIs(t, err, singlephase.ErrDivisionByZero)

	_, err = run(t, "calc", "--w", "1", "--rho", "1", "--mu", "1", "--id", "1", "--id-unit", "furlong")
	assert.Error(t, err)

	_, err = run(t, "calc", "--w", "1")
	assert.Error(t, err)
}

func TestSheet(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "lines.xlsx")
	dst := filepath.Join(dir, "results.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"name", "w_kg_h", "rho_kg_m3", "mu_cp", "id_in", "roughness_mm", "sf"},
		{"P-101", 150734, 380, 0.054, 13.25, 0.046, 1},
		{"P-102", 1000, 0, 1, 2, 0.046, 1},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(src))
	require.NoError(t, f.Close())

	out, err := run(t, "sheet", src, "-o", dst)
	require.NoError(t, err)
	assert.Contains(t, out, "P-101")
	assert.Contains(t, out, "2.9334e+006")
	assert.Contains(t, out, "division by zero")

	_, err = os.Stat(dst)
	assert.NoError(t, err)
}
