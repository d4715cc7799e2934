package journal

import (
	"context"
	"database/sql"
	"fmt"

	"faal-poster/internal/domain"

	_ "github.com/lib/pq"
)

const schema = `
	CREATE TABLE IF NOT EXISTS deliveries (
		id         UUID PRIMARY KEY,
		date       TEXT NOT NULL,
		caption    TEXT NOT NULL,
		status     INTEGER NOT NULL,
		error      TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)
`

// Postgres stores deliveries in the deliveries table.
type Postgres struct {
	db *sql.DB
}

// OpenPostgres connects to dsn and ensures the deliveries table exists.
func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	p := NewPostgres(db)
	if err := p.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return p, nil
}

// NewPostgres wraps an existing connection pool.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Migrate creates the deliveries table if it is missing.
func (p *Postgres) Migrate(ctx context.Context) error {
	if _, err := p.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create deliveries table: %w", err)
	}
	return nil
}

// Record inserts d.
func (p *Postgres) Record(ctx context.Context, d domain.Delivery) error {
	query := `
		INSERT INTO deliveries (id, date, caption, status, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := p.db.ExecContext(ctx, query, d.ID.String(), d.Date, d.Caption, d.Status, d.Error, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert delivery: %w", err)
	}
	return nil
}

// Recent returns up to limit deliveries, newest first.
func (p *Postgres) Recent(ctx context.Context, limit int) ([]domain.Delivery, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, date, caption, status, error, created_at
		FROM deliveries
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := p.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []domain.Delivery
	for rows.Next() {
		var d domain.Delivery
		if err := rows.Scan(&d.ID, &d.Date, &d.Caption, &d.Status, &d.Error, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan delivery: %w", err)
		}
		deliveries = append(deliveries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deliveries: %w", err)
	}
	return deliveries, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() error {
	return p.db.Close()
}
