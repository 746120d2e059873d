package reminders

import "medicine-reminder/internal/domain/users"

type Status string

const (
	StatusTaken   Status = "taken"
	StatusPending Status = "pending"
)

// Reminder es una proyección efímera, una por (usuario, medicamento, hora
// programada) del día de hoy. No se persiste: se recalcula en cada vista.
type Reminder struct {
	UserID   string
	UserName string
	Band     users.Band

	MedicineID string
	Medicine   string
	Dosage     string

	Time   string
	Status Status
	Due    bool
}
