package users

import "context"

// Repository distingue no-encontrado de falla de storage: GetByID y Delete
// devuelven ErrNotFound cuando el ID no existe; cualquier otro error (archivo
// corrupto, disco, conexión) se propaga tal cual y nadie lo colapsa a 404.
type Repository interface {
	// Create asigna el próximo ID secuencial. El contador es monótono:
	// un ID borrado no se vuelve a entregar.
	Create(ctx context.Context, u User) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	List(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, id string) error
}
