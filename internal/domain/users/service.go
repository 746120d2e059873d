package users

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrMissingFields  = errors.New("please fill in all fields")
	ErrAgeNotNumber   = errors.New("age must be a number")
	ErrAgeNotPositive = errors.New("age must be positive")
	ErrNotFound       = errors.New("user not found")
)

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
	Name string
	// Age llega como texto (igual que desde un form); el service decide
	// si es número y si es positivo.
	Age string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	name := strings.TrimSpace(in.Name)
	ageStr := strings.TrimSpace(in.Age)

	if name == "" || ageStr == "" {
		return User{}, ErrMissingFields
	}

	age, err := strconv.Atoi(ageStr)
	if err != nil {
		return User{}, ErrAgeNotNumber
	}
	if age <= 0 {
		return User{}, ErrAgeNotPositive
	}

	u := User{
		Name:      name,
		Age:       age,
		CreatedAt: s.now(),
	}

	return s.repo.Create(ctx, u)
}

func (s *Service) GetByID(ctx context.Context, id string) (User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return User{}, ErrNotFound
	}
	// El repo ya devuelve ErrNotFound; una falla de storage no se disfraza
	// de no-encontrado.
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

// Delete borra el usuario. La cascada sobre sus medicamentos la orquesta el
// handler (ver MedicineCascade): primero se verifica que el usuario exista,
// así una baja de un ID desconocido no toca nada.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrMissingFields
	}
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
