package singlephase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/chiuwenyu/singlephase/internal/session"
	"github.com/chiuwenyu/singlephase/internal/telemetry"
)

// Recorder persists a finished calculation for a user.
type Recorder interface {
	SaveCalculation(ctx context.Context, userID int, in Input, res Result) (string, error)
}

type Handler struct {
	Recorder Recorder // optional
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	log := telemetry.FromContext(r.Context())

	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Calculate(input)
	if err != nil {
		telemetry.ObserveCalculation("", ErrorKind(err))
		WriteError(w, err)
		return
	}
	telemetry.ObserveCalculation(string(res.Regime), "")

	if h.Recorder != nil {
		if userID, ok := session.UserID(r.Context()); ok {
			id, err := h.Recorder.SaveCalculation(r.Context(), userID, input, res)
			if err != nil {
				log.Error("save calculation", "error", err, "user_id", userID)
			} else {
				w.Header().Set("X-Calculation-Id", id)
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(res); err != nil {
		log.Error("encode result", "error", err)
	}
}

// ErrorKind is a short metrics label for a Calculate error.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrDivisionByZero):
		return "division_by_zero"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	default:
		return "other"
	}
}

// WriteError maps a Calculate error to an HTTP response.
func WriteError(w http.ResponseWriter, err error) {
	var dz *DivisionByZeroError
	if errors.As(err, &dz) {
		http.Error(w, dz.Error(), http.StatusUnprocessableEntity)
		return
	}
	http.Error(w, "Calculation error: "+err.Error(), http.StatusBadRequest)
}
