package coach

import (
	"context"
	"errors"
	"strings"

	"medicine-reminder/internal/ports/ai"

	"github.com/google/uuid"
)

var (
	ErrInvalidProfile = errors.New("please fill in all profile fields")
	ErrInvalidKind    = errors.New("plan kind must be workout, nutrition or recovery")
	ErrInvalidMeasure = errors.New("height and weight must be positive")

	// ErrUnavailable es el mensaje fijo cuando el modelo no responde;
	// no hay reintentos ni fallback local.
	ErrUnavailable = errors.New("the coaching assistant is unavailable right now, please try again later")
)

type Service struct {
	gen ai.TextGenerator
}

func NewService(gen ai.TextGenerator) *Service {
	return &Service{gen: gen}
}

// ComputeBMI es puro: peso / estatura².
func ComputeBMI(heightCm, weightKg float64) (BMI, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return BMI{}, ErrInvalidMeasure
	}

	h := heightCm / 100
	v := weightKg / (h * h)

	cat := BMIObese
	switch {
	case v < 18.5:
		cat = BMIUnderweight
	case v < 25:
		cat = BMINormal
	case v < 30:
		cat = BMIOverweight
	}

	return BMI{Value: v, Category: cat}, nil
}

func (s *Service) GeneratePlan(ctx context.Context, kind PlanKind, p Profile) (Plan, error) {
	switch kind {
	case PlanWorkout, PlanNutrition, PlanRecovery:
	default:
		return Plan{}, ErrInvalidKind
	}
	if strings.TrimSpace(p.Name) == "" || p.Age <= 0 {
		return Plan{}, ErrInvalidProfile
	}
	if p.HeightCm <= 0 || p.WeightKg <= 0 {
		return Plan{}, ErrInvalidMeasure
	}

	if s.gen == nil {
		return Plan{}, ErrUnavailable
	}

	content, err := s.gen.Generate(ctx, systemPrompt, planPrompt(kind, p))
	if err != nil {
		return Plan{}, ErrUnavailable
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return Plan{}, ErrUnavailable
	}

	return Plan{
		ID:      uuid.NewString(),
		Kind:    kind,
		Content: content,
	}, nil
}
