package jsonfile

import (
	"context"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"medicine-reminder/internal/domain/users"
)

// usersDoc es el layout persistido: el contador secuencial vive junto a la
// colección para que un ID borrado no se vuelva a entregar.
type usersDoc struct {
	Seq   int                 `json:"seq"`
	Items map[string]userItem `json:"items"`
}

type userItem struct {
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"created_at"`
}

type usersRepo struct {
	mu  sync.Mutex
	doc document
}

func NewUsersRepo(dir string) users.Repository {
	return &usersRepo{
		doc: document{path: filepath.Join(dir, "users.json")},
	}
}

func (r *usersRepo) Create(ctx context.Context, u users.User) (users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return users.User{}, err
	}

	doc.Seq++
	u.ID = strconv.Itoa(doc.Seq)
	doc.Items[u.ID] = userItem{
		Name:      u.Name,
		Age:       u.Age,
		CreatedAt: u.CreatedAt,
	}

	if err := r.doc.save(doc); err != nil {
		return users.User{}, err
	}
	return u, nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return users.User{}, err
	}

	it, ok := doc.Items[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return toUser(id, it), nil
}

func (r *usersRepo) List(ctx context.Context) ([]users.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return nil, err
	}

	out := make([]users.User, 0, len(doc.Items))
	for id, it := range doc.Items {
		out = append(out, toUser(id, it))
	}

	sort.Slice(out, func(i, j int) bool {
		return lessNumericID(out[i].ID, out[j].ID)
	})

	return out, nil
}

func (r *usersRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return err
	}

	if _, ok := doc.Items[id]; !ok {
		return users.ErrNotFound
	}
	delete(doc.Items, id)

	return r.doc.save(doc)
}

func (r *usersRepo) read() (usersDoc, error) {
	doc := usersDoc{Items: map[string]userItem{}}
	if err := r.doc.load(&doc); err != nil {
		return usersDoc{}, err
	}
	if doc.Items == nil {
		doc.Items = map[string]userItem{}
	}
	return doc, nil
}

func toUser(id string, it userItem) users.User {
	return users.User{
		ID:        id,
		Name:      it.Name,
		Age:       it.Age,
		CreatedAt: it.CreatedAt,
	}
}

func lessNumericID(a, b string) bool {
	ai, errA := strconv.Atoi(a)
	bi, errB := strconv.Atoi(b)
	if errA != nil || errB != nil {
		return a < b
	}
	return ai < bi
}
