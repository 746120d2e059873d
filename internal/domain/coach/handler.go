package coach

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/coach", func(cr chi.Router) {
		cr.Post("/bmi", bmiHandler())
		cr.Post("/plans", generatePlanHandler(svc))
		cr.Post("/plans/pdf", exportPlanPDFHandler(svc))
	})
}

type bmiRequest struct {
	HeightCm float64 `json:"height_cm"`
	WeightKg float64 `json:"weight_kg"`
}

type bmiResponse struct {
	BMI      float64     `json:"bmi"`
	Category BMICategory `json:"category"`
}

type profileRequest struct {
	Name     string  `json:"name"`
	Age      int     `json:"age"`
	Gender   string  `json:"gender"`
	HeightCm float64 `json:"height_cm"`
	WeightKg float64 `json:"weight_kg"`
	Goal     string  `json:"goal"`
	Level    string  `json:"level"`
}

type planRequest struct {
	Kind    string         `json:"kind"`
	Profile profileRequest `json:"profile"`
}

type planResponse struct {
	ID      string   `json:"id"`
	Kind    PlanKind `json:"kind"`
	Content string   `json:"content"`
}

func bmiHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req bmiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		bmi, err := ComputeBMI(req.HeightCm, req.WeightKg)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusOK, bmiResponse{BMI: bmi.Value, Category: bmi.Category})
	}
}

func generatePlanHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plan, _, ok := generateFromRequest(w, r, svc)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, planResponse{ID: plan.ID, Kind: plan.Kind, Content: plan.Content})
	}
}

func exportPlanPDFHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		plan, profile, ok := generateFromRequest(w, r, svc)
		if !ok {
			return
		}

		b, err := RenderPDF(plan, profile)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="`+string(plan.Kind)+`-plan.pdf"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(b)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}

// generateFromRequest comparte el decode+generación entre /plans y /plans/pdf.
// Si devuelve ok=false ya escribió la respuesta de error.
func generateFromRequest(w http.ResponseWriter, r *http.Request, svc *Service) (Plan, Profile, bool) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return Plan{}, Profile{}, false
	}

	profile := Profile{
		Name:     req.Profile.Name,
		Age:      req.Profile.Age,
		Gender:   req.Profile.Gender,
		HeightCm: req.Profile.HeightCm,
		WeightKg: req.Profile.WeightKg,
		Goal:     req.Profile.Goal,
		Level:    req.Profile.Level,
	}

	plan, err := svc.GeneratePlan(r.Context(), PlanKind(req.Kind), profile)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidKind), errors.Is(err, ErrInvalidProfile), errors.Is(err, ErrInvalidMeasure):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrUnavailable):
			http.Error(w, err.Error(), http.StatusBadGateway)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return Plan{}, Profile{}, false
	}

	return plan, profile, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
