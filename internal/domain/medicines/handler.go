package medicines

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"medicine-reminder/internal/domain/users"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, usersSvc *users.Service) {
	r.Route("/users/{userID}/medicines", func(mr chi.Router) {
		mr.Post("/", createMedicineHandler(svc, usersSvc))
		mr.Get("/", listMedicinesHandler(svc, usersSvc))
		mr.Delete("/{medicineID}", deleteMedicineHandler(svc))
		mr.Post("/{medicineID}/taken", markTakenHandler(svc))
	})
}

type createMedicineRequest struct {
	Name      string   `json:"name"`
	Dosage    string   `json:"dosage"`
	Frequency string   `json:"frequency"`
	Times     []string `json:"times"`
}

type markTakenRequest struct {
	Time string `json:"time"`
}

type medicineResponse struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Name      string          `json:"name"`
	Dosage    string          `json:"dosage"`
	Frequency string          `json:"frequency"`
	Times     []string        `json:"times"`
	Taken     map[string]bool `json:"taken"`
	CreatedAt time.Time       `json:"created_at"`
}

func createMedicineHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")
		if err := requireUser(w, r, usersSvc, userID); err != nil {
			return
		}

		var req createMedicineRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.Create(r.Context(), userID, CreateInput{
			Name:      req.Name,
			Dosage:    req.Dosage,
			Frequency: req.Frequency,
			Times:     req.Times,
		})
		if err != nil {
			var badTime *BadTimeError
			switch {
			case errors.Is(err, ErrMissingFields), errors.Is(err, ErrNoTimes), errors.As(err, &badTime):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toMedicineResponse(m))
	}
}

func listMedicinesHandler(svc *Service, usersSvc *users.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")
		if err := requireUser(w, r, usersSvc, userID); err != nil {
			return
		}

		items, err := svc.ListByUser(r.Context(), userID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]medicineResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMedicineResponse(m))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func markTakenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")
		medicineID := chi.URLParam(r, "medicineID")

		var req markTakenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		m, err := svc.MarkTaken(r.Context(), userID, medicineID, req.Time)
		if err != nil {
			switch {
			case errors.Is(err, ErrMissingFields):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound), errors.Is(err, ErrUnknownTime):
				http.Error(w, err.Error(), http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toMedicineResponse(m))
	}
}

func deleteMedicineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")
		medicineID := chi.URLParam(r, "medicineID")

		if err := svc.Delete(r.Context(), userID, medicineID); err != nil {
			switch {
			case errors.Is(err, ErrMissingFields):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, err.Error(), http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "medicine deleted successfully"})
	}
}

// requireUser responde 404 si el dueño no existe y 500 si el storage falló
// (archivo corrupto, disco); si devuelve error ya escribió la respuesta.
func requireUser(w http.ResponseWriter, r *http.Request, usersSvc *users.Service, userID string) error {
	_, err := usersSvc.GetByID(r.Context(), userID)
	if err == nil {
		return nil
	}
	if errors.Is(err, users.ErrNotFound) {
		http.Error(w, users.ErrNotFound.Error(), http.StatusNotFound)
		return err
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
	return err
}

func toMedicineResponse(m Medicine) medicineResponse {
	return medicineResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		Name:      m.Name,
		Dosage:    m.Dosage,
		Frequency: m.Frequency,
		Times:     m.Times,
		Taken:     m.Taken,
		CreatedAt: m.CreatedAt,
	}
}

// Duplicado a propósito por módulo (ver comentario en users/handler.go).
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
