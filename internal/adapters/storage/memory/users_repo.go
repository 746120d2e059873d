package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"medicine-reminder/internal/domain/users"
)

type usersRepo struct {
	mu   sync.RWMutex
	seq  int
	byID map[string]users.User
}

func NewUsersRepo() users.Repository {
	return &usersRepo{
		byID: make(map[string]users.User),
	}
}

func (r *usersRepo) Create(ctx context.Context, u users.User) (users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	u.ID = strconv.Itoa(r.seq)
	r.byID[u.ID] = u
	return u, nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) List(ctx context.Context) ([]users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]users.User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}

	sort.Slice(out, func(i, j int) bool {
		return lessNumericID(out[i].ID, out[j].ID)
	})

	return out, nil
}

func (r *usersRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return users.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// lessNumericID ordena IDs secuenciales ("1" < "2" < "10"); si alguno no es
// numérico cae a comparación de strings.
func lessNumericID(a, b string) bool {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	if errA != nil || errB != nil {
		return a < b
	}
	return ai < bi
}
