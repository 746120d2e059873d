package reminders

import (
	"encoding/json"
	"net/http"

	"medicine-reminder/internal/domain/users"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/reminders", listRemindersHandler(svc))
}

type reminderResponse struct {
	UserID     string     `json:"user_id"`
	User       string     `json:"user"`
	Band       users.Band `json:"band"`
	MedicineID string     `json:"medicine_id"`
	Medicine   string     `json:"medicine"`
	Dosage     string     `json:"dosage"`
	Time       string     `json:"time"`
	Status     Status     `json:"status"`
	Due        bool       `json:"due"`
}

func listRemindersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Compute(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]reminderResponse, 0, len(items))
		for _, rem := range items {
			out = append(out, reminderResponse{
				UserID:     rem.UserID,
				User:       rem.UserName,
				Band:       rem.Band,
				MedicineID: rem.MedicineID,
				Medicine:   rem.Medicine,
				Dosage:     rem.Dosage,
				Time:       rem.Time,
				Status:     rem.Status,
				Due:        rem.Due,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
