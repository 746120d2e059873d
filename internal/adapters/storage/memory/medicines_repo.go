package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"medicine-reminder/internal/domain/medicines"
)

type medicinesRepo struct {
	mu     sync.RWMutex
	seq    map[string]int // contador por usuario, monótono
	byUser map[string]map[string]medicines.Medicine
}

func NewMedicinesRepo() medicines.Repository {
	return &medicinesRepo{
		seq:    make(map[string]int),
		byUser: make(map[string]map[string]medicines.Medicine),
	}
}

func (r *medicinesRepo) Create(ctx context.Context, m medicines.Medicine) (medicines.Medicine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq[m.UserID]++
	m.ID = strconv.Itoa(r.seq[m.UserID])

	if r.byUser[m.UserID] == nil {
		r.byUser[m.UserID] = make(map[string]medicines.Medicine)
	}
	r.byUser[m.UserID][m.ID] = cloneMedicine(m)
	return m, nil
}

func (r *medicinesRepo) GetByID(ctx context.Context, userID, id string) (medicines.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byUser[userID][id]
	if !ok {
		return medicines.Medicine{}, medicines.ErrNotFound
	}
	return cloneMedicine(m), nil
}

func (r *medicinesRepo) ListByUser(ctx context.Context, userID string) ([]medicines.Medicine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medicines.Medicine, 0, len(r.byUser[userID]))
	for _, m := range r.byUser[userID] {
		out = append(out, cloneMedicine(m))
	}

	sort.Slice(out, func(i, j int) bool {
		return lessNumericID(out[i].ID, out[j].ID)
	})

	return out, nil
}

func (r *medicinesRepo) MarkTaken(ctx context.Context, userID, id, takenKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.byUser[userID][id]
	if !ok {
		return medicines.ErrNotFound
	}
	if m.Taken == nil {
		m.Taken = make(map[string]bool)
		r.byUser[userID][id] = m
	}
	m.Taken[takenKey] = true
	return nil
}

func (r *medicinesRepo) Delete(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUser[userID][id]; !ok {
		return medicines.ErrNotFound
	}
	delete(r.byUser[userID], id)
	return nil
}

func (r *medicinesRepo) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byUser, userID)
	return nil
}

// cloneMedicine copia slices y mapas para que el caller no mute el estado
// interno del repo (y viceversa).
func cloneMedicine(m medicines.Medicine) medicines.Medicine {
	times := make([]string, len(m.Times))
	copy(times, m.Times)

	taken := make(map[string]bool, len(m.Taken))
	for k, v := range m.Taken {
		taken[k] = v
	}

	m.Times = times
	m.Taken = taken
	return m
}
