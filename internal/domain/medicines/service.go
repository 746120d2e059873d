package medicines

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrMissingFields = errors.New("please fill in all fields")
	ErrNoTimes       = errors.New("specify at least one dose time")
	ErrNotFound      = errors.New("medicine not found")
	ErrUnknownTime   = errors.New("could not find medicine record for that time")
)

// BadTimeError señala la primera hora inválida de un registro.
type BadTimeError struct {
	Value string
}

func (e *BadTimeError) Error() string {
	return fmt.Sprintf("invalid time format: %s", e.Value)
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name      string
	Dosage    string
	Frequency string
	Times     []string
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Medicine, error) {
	userID = strings.TrimSpace(userID)
	name := strings.TrimSpace(in.Name)
	dosage := strings.TrimSpace(in.Dosage)
	frequency := strings.TrimSpace(in.Frequency)

	if userID == "" || name == "" || dosage == "" || frequency == "" {
		return Medicine{}, ErrMissingFields
	}
	if len(in.Times) == 0 {
		return Medicine{}, ErrNoTimes
	}
	for _, t := range in.Times {
		if !ValidTime(t) {
			return Medicine{}, &BadTimeError{Value: t}
		}
	}

	// Copia defensiva y orden ascendente. Para "HH:MM" con cero a la
	// izquierda el orden lexicográfico coincide con el cronológico.
	times := make([]string, len(in.Times))
	copy(times, in.Times)
	sort.Strings(times)

	m := Medicine{
		UserID:    userID,
		Name:      name,
		Dosage:    dosage,
		Frequency: frequency,
		Times:     times,
		Taken:     map[string]bool{},
		CreatedAt: s.now(),
	}

	return s.repo.Create(ctx, m)
}

func (s *Service) GetByID(ctx context.Context, userID, id string) (Medicine, error) {
	userID = strings.TrimSpace(userID)
	id = strings.TrimSpace(id)
	if userID == "" || id == "" {
		return Medicine{}, ErrNotFound
	}
	// El repo ya devuelve ErrNotFound; una falla de storage no se disfraza
	// de no-encontrado.
	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Medicine, error) {
	return s.repo.ListByUser(ctx, userID)
}

// MarkTaken registra la dosis (medicamento, hora) como tomada hoy.
// Es idempotente: marcar dos veces la misma dosis el mismo día deja una
// sola entrada y no es error.
func (s *Service) MarkTaken(ctx context.Context, userID, id, timeStr string) (Medicine, error) {
	userID = strings.TrimSpace(userID)
	id = strings.TrimSpace(id)
	timeStr = strings.TrimSpace(timeStr)

	if userID == "" || id == "" || timeStr == "" {
		return Medicine{}, ErrMissingFields
	}

	m, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return Medicine{}, err
	}

	// La hora tiene que ser una de las horas programadas, comparación
	// exacta de strings.
	scheduled := false
	for _, t := range m.Times {
		if t == timeStr {
			scheduled = true
			break
		}
	}
	if !scheduled {
		return Medicine{}, ErrUnknownTime
	}

	key := TakenKey(s.now(), timeStr)
	if err := s.repo.MarkTaken(ctx, userID, id, key); err != nil {
		return Medicine{}, err
	}

	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	userID = strings.TrimSpace(userID)
	id = strings.TrimSpace(id)
	if userID == "" || id == "" {
		return ErrMissingFields
	}
	return s.repo.Delete(ctx, userID, id)
}

// DeleteByUser borra todos los medicamentos del usuario (cascada al borrar
// el usuario). Un usuario sin medicamentos no es error.
func (s *Service) DeleteByUser(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrMissingFields
	}
	return s.repo.DeleteByUser(ctx, userID)
}
