package importer

import (
	"encoding/json"
	"net/http"

	"github.com/chiuwenyu/singlephase/internal/calc/batch"
	"github.com/chiuwenyu/singlephase/internal/calc/singlephase"
	"github.com/chiuwenyu/singlephase/internal/telemetry"
)

const maxUploadSize = 10 << 20

type Handler struct{}

type ImportResult struct {
	Count   int                  `json:"count"`
	Results []singlephase.Result `json:"results"`
	Skipped []RowError           `json:"skipped,omitempty"`
}

func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "File required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	items, skipped, err := ReadSegments(file)
	if err != nil {
		http.Error(w, "Invalid file", http.StatusBadRequest)
		return
	}

	out := ImportResult{Results: []singlephase.Result{}, Skipped: skipped}
	for _, seg := range items {
		res, err := singlephase.Calculate(seg.Input)
		if err != nil {
			telemetry.ObserveCalculation("", singlephase.ErrorKind(err))
			out.Skipped = append(out.Skipped, RowError{Row: seg.Row, Err: err.Error()})
			continue
		}
		telemetry.ObserveCalculation(string(res.Regime), "")
		out.Results = append(out.Results, res)
	}
	out.Count = len(out.Results)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		telemetry.FromContext(r.Context()).Error("encode import result", "error", err)
	}
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var input batch.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if len(input.Items) == 0 {
		http.Error(w, "No items", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"pipe-segments.xlsx\"")
	if err := WriteResults(w, input.Items); err != nil {
		telemetry.FromContext(r.Context()).Error("write workbook", "error", err)
		http.Error(w, "Export error", http.StatusInternalServerError)
	}
}
