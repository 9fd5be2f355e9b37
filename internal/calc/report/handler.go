package report

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/chiuwenyu/singlephase/internal/calc/singlephase"
	"github.com/chiuwenyu/singlephase/internal/format"
	"github.com/chiuwenyu/singlephase/internal/telemetry"
)

type Input struct {
	Project string            `json:"project"`
	Author  string            `json:"author"`
	Title   string            `json:"title"`
	Notes   string            `json:"notes"`
	Segment singlephase.Input `json:"segment"`
}

type Handler struct{}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := singlephase.Calculate(input.Segment)
	if err != nil {
		singlephase.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	if err := Render(w, input, res, time.Now()); err != nil {
		telemetry.FromContext(r.Context()).Error("render report", "error", err)
		http.Error(w, "Report generation error", http.StatusInternalServerError)
		return
	}
}

// Render writes an A4 calculation sheet for one segment.
func Render(w io.Writer, input Input, res singlephase.Result, now time.Time) error {
	if input.Title == "" {
		input.Title = "Single-Phase Line Sizing"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(input.Title, false)
	pdf.SetAuthor(input.Author, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, input.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", input.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", input.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", now.Format("2006-01-02")))
	pdf.Ln(6)
	if res.Name != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Line: %s", res.Name))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	seg := input.Segment
	table(pdf, "Input", [][2]string{
		{"Flow rate (kg/hr)", format.Fixed(seg.FlowKgH, 1)},
		{"Density (kg/m3)", format.Fixed(seg.DensityKgM3, 3)},
		{"Viscosity (kg/m/s)", format.Sci(res.ViscosityPaS, 0, 4, 3)},
		{"Inside diameter (m)", format.Fixed(res.IDM, 8)},
		{"Roughness (m)", format.Sci(res.RoughnessM, 0, 4, 3)},
		{"Safety factor (-)", format.Fixed(res.SafetyFactor, 2)},
	})
	table(pdf, "Result", [][2]string{
		{"Velocity (m/s)", format.Fixed(res.VelocityMS, 4)},
		{"Reynolds No. (-)", res.ReynoldsSci},
		{"Flow regime", string(res.Regime)},
		{"Darcy friction factor (-)", format.Fixed(res.FrictionFactor, 6)},
		{"Pressure drop (kg/cm2/100m)", format.Fixed(res.PressureDrop100, 6)},
		{"1.0 V.H. (kg/m/s2)", format.Fixed(res.VelocityHead, 4)},
	})

	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, res.Notes, "", "L", false)
	if input.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, input.Notes, "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func table(pdf *gofpdf.Fpdf, title string, rows [][2]string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		pdf.CellFormat(80, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 7, row[1], "1", 0, "R", false, 0, "")
		pdf.Ln(7)
	}
	pdf.Ln(4)
}
