package postgres

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open abre una conexión pool a Postgres usando pgx (database/sql).
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// nextSeq incrementa y devuelve el contador monótono del scope
// ("users" o "medicines:<userID>"). Nunca entrega un valor ya usado,
// aunque el registro que lo llevaba se haya borrado.
func nextSeq(ctx context.Context, tx *sql.Tx, scope string) (int64, error) {
	var seq int64
	err := tx.QueryRowContext(ctx, `
		INSERT INTO counters (scope, seq) VALUES ($1, 1)
		ON CONFLICT (scope) DO UPDATE SET seq = counters.seq + 1
		RETURNING seq
	`, scope).Scan(&seq)
	return seq, err
}
