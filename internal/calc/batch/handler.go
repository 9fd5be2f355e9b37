package batch

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chiuwenyu/singlephase/internal/calc/singlephase"
	"github.com/chiuwenyu/singlephase/internal/telemetry"
)

type Handler struct{}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		if errors.Is(err, ErrNoItems) {
			http.Error(w, "No items", http.StatusBadRequest)
			return
		}
		telemetry.ObserveCalculation("", singlephase.ErrorKind(err))
		var ie *ItemError
		if errors.As(err, &ie) && errors.Is(err, singlephase.ErrDivisionByZero) {
			http.Error(w, ie.Error(), http.StatusUnprocessableEntity)
			return
		}
		http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
		return
	}
	for _, item := range res.Results {
		telemetry.ObserveCalculation(string(item.Regime), "")
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		telemetry.FromContext(r.Context()).Error("encode batch result", "error", err)
	}
}
