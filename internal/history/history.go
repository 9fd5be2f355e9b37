package history

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/chiuwenyu/singlephase/internal/repo"
	"github.com/chiuwenyu/singlephase/internal/session"
	"github.com/chiuwenyu/singlephase/internal/telemetry"
)

type HistoryHandler struct {
	Repo repo.Calculations
}

// List returns the caller's most recent calculations. ?limit=N caps the
// count.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := session.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	items, err := h.Repo.ListCalculations(r.Context(), userID, limit)
	if err != nil {
		telemetry.FromContext(r.Context()).Error("list calculations", "error", err, "user_id", userID)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := session.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	calc, err := h.Repo.GetCalculation(r.Context(), userID, id)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Calculation not found", http.StatusNotFound)
		return
	}
	if err != nil {
		telemetry.FromContext(r.Context()).Error("get calculation", "error", err, "id", id)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(calc)
}
