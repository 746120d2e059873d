package reminders

import (
	"context"
	"time"

	"medicine-reminder/internal/domain/medicines"
	"medicine-reminder/internal/domain/users"
)

// Ventana "due": desde 5 minutos antes de la hora programada hasta 30 después.
const (
	dueBeforeMin = -5
	dueAfterMin  = 30
)

type Service struct {
	users *users.Service
	meds  *medicines.Service
	now   func() time.Time
}

func NewService(usersSvc *users.Service, medsSvc *medicines.Service) *Service {
	return &Service{
		users: usersSvc,
		meds:  medsSvc,
		now:   time.Now,
	}
}

// Compute arma los recordatorios de hoy: uno por (usuario, medicamento, hora),
// incluyendo los que no están en ventana (Due=false); la capa de presentación
// decide qué mostrar. El orden es usuarios asc, sus medicamentos asc, y las
// horas en el orden almacenado.
func (s *Service) Compute(ctx context.Context) ([]Reminder, error) {
	now := s.now()

	us, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Reminder, 0)
	for _, u := range us {
		ms, err := s.meds.ListByUser(ctx, u.ID)
		if err != nil {
			return nil, err
		}

		band := users.ClassifyAge(u.Age)
		for _, m := range ms {
			for _, t := range m.Times {
				status := StatusPending
				if m.Taken[medicines.TakenKey(now, t)] {
					status = StatusTaken
				}

				out = append(out, Reminder{
					UserID:     u.ID,
					UserName:   u.Name,
					Band:       band,
					MedicineID: m.ID,
					Medicine:   m.Name,
					Dosage:     m.Dosage,
					Time:       t,
					Status:     status,
					Due:        isDue(now, t),
				})
			}
		}
	}

	return out, nil
}

// isDue compara solo hora-del-día: la fecha de now se descarta, así que una
// dosis de 23:50 consultada a las 00:10 del día siguiente NO está en ventana
// (la comparación nunca cruza medianoche; comportamiento deliberado, ver
// DESIGN.md). Una hora que no parsea nunca está due, no es error.
func isDue(now time.Time, scheduled string) bool {
	t, err := time.Parse("15:04", scheduled)
	if err != nil {
		return false
	}

	delta := (now.Hour()*60 + now.Minute()) - (t.Hour()*60 + t.Minute())
	return delta >= dueBeforeMin && delta <= dueAfterMin
}
