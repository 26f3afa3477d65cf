package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresBackend struct {
	pool *pgxpool.Pool
}

// NewPostgresBackend connects with dsn and creates the slots table.
func NewPostgresBackend(ctx context.Context, dsn string) (*PostgresBackend, error) {
	if dsn == "" {
		return nil, errors.New("postgres dsn required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	b := &PostgresBackend{pool: pool}
	if err := b.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return b, nil
}

func (b *PostgresBackend) migrate(ctx context.Context) error {
	_, err := b.pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS weaning_slots (
            key        TEXT PRIMARY KEY,
            payload    JSONB NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
        )`)
	if err != nil {
		return fmt.Errorf("create weaning_slots table: %w", err)
	}
	return nil
}

func (b *PostgresBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := b.pool.QueryRow(ctx, `SELECT payload FROM weaning_slots WHERE key = $1`, key).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", key, err)
	}
	return payload, nil
}

func (b *PostgresBackend) Put(ctx context.Context, key string, data []byte) error {
	query := `
        INSERT INTO weaning_slots (key, payload, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()
    `
	if _, err := b.pool.Exec(ctx, query, key, string(data)); err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (b *PostgresBackend) Close() error {
	b.pool.Close()
	return nil
}
