package export

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/lib/pq"
)

var tableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// PostgresOutput copies meal rows into a table, replacing its contents.
type PostgresOutput struct {
	db *sql.DB
}

func NewPostgresOutput(dsn string) (*PostgresOutput, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres export needs export.postgres_dsn")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	return &PostgresOutput{db: db}, nil
}

func (p *PostgresOutput) Close() error { return p.db.Close() }

// ReplaceMeals recreates table from rows inside one transaction.
func (p *PostgresOutput) ReplaceMeals(ctx context.Context, table string, rows []MealRow, tick func()) error {
	if !tableName.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}
	quoted := pq.QuoteIdentifier(table)

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+quoted+` (
		date        DATE NOT NULL,
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		type        TEXT NOT NULL,
		fed_time    TEXT,
		amount      TEXT,
		grams       INTEGER,
		ingredients TEXT[],
		from_cube   BOOLEAN NOT NULL DEFAULT FALSE,
		cube_id     TEXT
	)`); err != nil {
		return fmt.Errorf("failed to create %s: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM `+quoted); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(table,
		"date", "id", "title", "type", "fed_time", "amount",
		"grams", "ingredients", "from_cube", "cube_id"))
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx,
			r.Date, r.ID, r.Title, r.Type,
			nullableString(r.FedTime), r.Amount, r.Grams,
			pq.Array(r.Ingredients), r.FromCube, nullableString(r.CubeID),
		); err != nil {
			_ = stmt.Close()
			return fmt.Errorf("failed to copy meal %s: %w", r.ID, err)
		}
		tick()
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		return fmt.Errorf("failed to flush copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return err
	}
	return tx.Commit()
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
