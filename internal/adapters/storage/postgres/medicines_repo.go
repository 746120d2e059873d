package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"medicine-reminder/internal/domain/medicines"
)

type MedicinesRepo struct {
	db *sql.DB
}

func NewMedicinesRepo(db *sql.DB) *MedicinesRepo {
	return &MedicinesRepo{db: db}
}

func (r *MedicinesRepo) Create(ctx context.Context, m medicines.Medicine) (medicines.Medicine, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return medicines.Medicine{}, err
	}
	defer func() { _ = tx.Rollback() }()

	seq, err := nextSeq(ctx, tx, "medicines:"+m.UserID)
	if err != nil {
		return medicines.Medicine{}, err
	}
	m.ID = strconv.FormatInt(seq, 10)

	times, err := json.Marshal(m.Times)
	if err != nil {
		return medicines.Medicine{}, err
	}
	taken, err := json.Marshal(m.Taken)
	if err != nil {
		return medicines.Medicine{}, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO medicines (user_id, id, name, dosage, frequency, times, taken, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		m.UserID,
		m.ID,
		m.Name,
		m.Dosage,
		m.Frequency,
		string(times),
		string(taken),
		m.CreatedAt,
	)
	if err != nil {
		return medicines.Medicine{}, err
	}

	if err := tx.Commit(); err != nil {
		return medicines.Medicine{}, err
	}
	return m, nil
}

func (r *MedicinesRepo) GetByID(ctx context.Context, userID, id string) (medicines.Medicine, error) {
	userID = strings.TrimSpace(userID)
	id = strings.TrimSpace(id)
	if userID == "" || id == "" {
		return medicines.Medicine{}, medicines.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT user_id, id, name, dosage, frequency, times, taken, created_at
		FROM medicines
		WHERE user_id = $1 AND id = $2
	`, userID, id)

	m, err := scanMedicine(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return medicines.Medicine{}, medicines.ErrNotFound
		}
		return medicines.Medicine{}, err
	}
	return m, nil
}

func (r *MedicinesRepo) ListByUser(ctx context.Context, userID string) ([]medicines.Medicine, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, id, name, dosage, frequency, times, taken, created_at
		FROM medicines
		WHERE user_id = $1
		ORDER BY id::bigint ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]medicines.Medicine, 0)
	for rows.Next() {
		m, err := scanMedicine(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, rows.Err()
}

// MarkTaken agrega la clave al JSON de tomas en una sola sentencia;
// re-marcar la misma clave deja el documento igual.
func (r *MedicinesRepo) MarkTaken(ctx context.Context, userID, id, takenKey string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE medicines
		SET taken = (taken::jsonb || jsonb_build_object($3::text, true))::text
		WHERE user_id = $1 AND id = $2
	`, userID, id, takenKey)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return medicines.ErrNotFound
	}
	return nil
}

func (r *MedicinesRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM medicines WHERE user_id = $1 AND id = $2
	`, userID, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return medicines.ErrNotFound
	}
	return nil
}

func (r *MedicinesRepo) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM medicines WHERE user_id = $1`, userID)
	return err
}

func scanMedicine(scan func(dest ...any) error) (medicines.Medicine, error) {
	var m medicines.Medicine
	var times, taken string

	if err := scan(
		&m.UserID,
		&m.ID,
		&m.Name,
		&m.Dosage,
		&m.Frequency,
		&times,
		&taken,
		&m.CreatedAt,
	); err != nil {
		return medicines.Medicine{}, err
	}

	if err := json.Unmarshal([]byte(times), &m.Times); err != nil {
		return medicines.Medicine{}, fmt.Errorf("decode times: %w", err)
	}
	if err := json.Unmarshal([]byte(taken), &m.Taken); err != nil {
		return medicines.Medicine{}, fmt.Errorf("decode taken: %w", err)
	}
	if m.Taken == nil {
		m.Taken = map[string]bool{}
	}

	return m, nil
}
