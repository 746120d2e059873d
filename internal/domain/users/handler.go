package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// MedicineCascade evita importar el paquete medicines (rompe ciclos).
// Al borrar un usuario se borran también todos sus medicamentos.
type MedicineCascade interface {
	DeleteByUser(ctx context.Context, userID string) error
}

func RegisterRoutes(r chi.Router, svc *Service, meds MedicineCascade) {
	r.Route("/users", func(ur chi.Router) {
		ur.Post("/", createUserHandler(svc))
		ur.Get("/", listUsersHandler(svc))
		ur.Delete("/{userID}", deleteUserHandler(svc, meds))
	})
}

type createUserRequest struct {
	Name string `json:"name"`
	Age  string `json:"age"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Band      Band      `json:"band"`
	CreatedAt time.Time `json:"created_at"`
}

func createUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		u, err := svc.Create(r.Context(), CreateInput{Name: req.Name, Age: req.Age})
		if err != nil {
			switch {
			case errors.Is(err, ErrMissingFields),
				errors.Is(err, ErrAgeNotNumber),
				errors.Is(err, ErrAgeNotPositive):
				http.Error(w, err.Error(), http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, toUserResponse(u))
	}
}

func listUsersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]userResponse, 0, len(items))
		for _, u := range items {
			out = append(out, toUserResponse(u))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func deleteUserHandler(svc *Service, meds MedicineCascade) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := chi.URLParam(r, "userID")

		// Verificar existencia antes de borrar nada: si el ID no existe
		// la operación falla sin tocar medicamentos ni usuario. Una falla
		// de storage (archivo corrupto, disco) es 500, no 404.
		if _, err := svc.GetByID(r.Context(), userID); err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, ErrNotFound.Error(), http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if err := meds.DeleteByUser(r.Context(), userID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		if err := svc.Delete(r.Context(), userID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "user deleted successfully"})
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Age:       u.Age,
		Band:      ClassifyAge(u.Age),
		CreatedAt: u.CreatedAt,
	}
}

// writeJSON se repite en los handlers de cada módulo a propósito,
// igual que en el resto del proyecto: todavía no amerita un helper común.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
