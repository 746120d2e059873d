package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"medicine-reminder/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) (users.User, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return users.User{}, err
	}
	defer func() { _ = tx.Rollback() }()

	seq, err := nextSeq(ctx, tx, "users")
	if err != nil {
		return users.User{}, err
	}
	u.ID = strconv.FormatInt(seq, 10)

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (id, name, age, created_at)
		VALUES ($1, $2, $3, $4)
	`,
		u.ID,
		u.Name,
		u.Age,
		u.CreatedAt,
	)
	if err != nil {
		return users.User{}, err
	}

	if err := tx.Commit(); err != nil {
		return users.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, users.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, age, created_at
		FROM users
		WHERE id = $1
	`, id)

	var u users.User
	if err := row.Scan(&u.ID, &u.Name, &u.Age, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) List(ctx context.Context) ([]users.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, age, created_at
		FROM users
		ORDER BY id::bigint ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		var u users.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Age, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}

	return out, rows.Err()
}

func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}
