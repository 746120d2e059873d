package jsonfile

import (
	"context"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"medicine-reminder/internal/domain/medicines"
)

// medicinesDoc agrupa por usuario; cada usuario lleva su propio contador
// secuencial junto a sus medicamentos.
type medicinesDoc struct {
	Items map[string]*userMedicines `json:"items"`
}

type userMedicines struct {
	Seq   int                     `json:"seq"`
	Items map[string]medicineItem `json:"items"`
}

type medicineItem struct {
	Name      string          `json:"name"`
	Dosage    string          `json:"dosage"`
	Frequency string          `json:"frequency"`
	Times     []string        `json:"times"`
	Taken     map[string]bool `json:"taken"`
	CreatedAt time.Time       `json:"created_at"`
}

type medicinesRepo struct {
	mu  sync.Mutex
	doc document
}

func NewMedicinesRepo(dir string) medicines.Repository {
	return &medicinesRepo{
		doc: document{path: filepath.Join(dir, "medicines.json")},
	}
}

func (r *medicinesRepo) Create(ctx context.Context, m medicines.Medicine) (medicines.Medicine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return medicines.Medicine{}, err
	}

	um, ok := doc.Items[m.UserID]
	if !ok {
		um = &userMedicines{Items: map[string]medicineItem{}}
		doc.Items[m.UserID] = um
	}

	um.Seq++
	m.ID = strconv.Itoa(um.Seq)
	um.Items[m.ID] = toItem(m)

	if err := r.doc.save(doc); err != nil {
		return medicines.Medicine{}, err
	}
	return m, nil
}

func (r *medicinesRepo) GetByID(ctx context.Context, userID, id string) (medicines.Medicine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return medicines.Medicine{}, err
	}

	um, ok := doc.Items[userID]
	if !ok {
		return medicines.Medicine{}, medicines.ErrNotFound
	}
	it, ok := um.Items[id]
	if !ok {
		return medicines.Medicine{}, medicines.ErrNotFound
	}
	return toMedicine(userID, id, it), nil
}

func (r *medicinesRepo) ListByUser(ctx context.Context, userID string) ([]medicines.Medicine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return nil, err
	}

	um, ok := doc.Items[userID]
	if !ok {
		return []medicines.Medicine{}, nil
	}

	out := make([]medicines.Medicine, 0, len(um.Items))
	for id, it := range um.Items {
		out = append(out, toMedicine(userID, id, it))
	}

	sort.Slice(out, func(i, j int) bool {
		return lessNumericID(out[i].ID, out[j].ID)
	})

	return out, nil
}

func (r *medicinesRepo) MarkTaken(ctx context.Context, userID, id, takenKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return err
	}

	um, ok := doc.Items[userID]
	if !ok {
		return medicines.ErrNotFound
	}
	it, ok := um.Items[id]
	if !ok {
		return medicines.ErrNotFound
	}

	if it.Taken == nil {
		it.Taken = map[string]bool{}
	}
	it.Taken[takenKey] = true
	um.Items[id] = it

	return r.doc.save(doc)
}

func (r *medicinesRepo) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return err
	}

	um, ok := doc.Items[userID]
	if !ok {
		return medicines.ErrNotFound
	}
	if _, ok := um.Items[id]; !ok {
		return medicines.ErrNotFound
	}
	delete(um.Items, id)

	return r.doc.save(doc)
}

func (r *medicinesRepo) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return err
	}

	if _, ok := doc.Items[userID]; !ok {
		// cascada: usuario sin medicamentos no es error
		return nil
	}
	delete(doc.Items, userID)

	return r.doc.save(doc)
}

func (r *medicinesRepo) read() (medicinesDoc, error) {
	doc := medicinesDoc{Items: map[string]*userMedicines{}}
	if err := r.doc.load(&doc); err != nil {
		return medicinesDoc{}, err
	}
	if doc.Items == nil {
		doc.Items = map[string]*userMedicines{}
	}
	for _, um := range doc.Items {
		if um.Items == nil {
			um.Items = map[string]medicineItem{}
		}
	}
	return doc, nil
}

func toItem(m medicines.Medicine) medicineItem {
	return medicineItem{
		Name:      m.Name,
		Dosage:    m.Dosage,
		Frequency: m.Frequency,
		Times:     m.Times,
		Taken:     m.Taken,
		CreatedAt: m.CreatedAt,
	}
}

func toMedicine(userID, id string, it medicineItem) medicines.Medicine {
	taken := it.Taken
	if taken == nil {
		taken = map[string]bool{}
	}
	return medicines.Medicine{
		ID:        id,
		UserID:    userID,
		Name:      it.Name,
		Dosage:    it.Dosage,
		Frequency: it.Frequency,
		Times:     it.Times,
		Taken:     taken,
		CreatedAt: it.CreatedAt,
	}
}
