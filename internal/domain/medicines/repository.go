package medicines

import "context"

// Repository distingue no-encontrado de falla de storage: GetByID, MarkTaken
// y Delete devuelven ErrNotFound cuando el medicamento no existe; cualquier
// otro error se propaga tal cual.
type Repository interface {
	// Create asigna el próximo ID secuencial dentro del usuario dueño.
	// El contador es monótono por usuario: no reusa IDs borrados.
	Create(ctx context.Context, m Medicine) (Medicine, error)
	GetByID(ctx context.Context, userID, id string) (Medicine, error)
	ListByUser(ctx context.Context, userID string) ([]Medicine, error)
	// MarkTaken agrega takenKey al registro del medicamento. Re-marcar la
	// misma clave es un no-op (queda una sola entrada).
	MarkTaken(ctx context.Context, userID, id, takenKey string) error
	Delete(ctx context.Context, userID, id string) error
	DeleteByUser(ctx context.Context, userID string) error
}
