package driver

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"waybill/internal/registry/models"
	"waybill/pkg/platform/sentinel"
)

// Postgres persists drivers in a table with a unique name constraint.
// Insertion order is preserved via a bigserial sequence column.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// EnsureSchema creates the drivers table if it does not exist.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS drivers (
			seq        BIGSERIAL PRIMARY KEY,
			id         UUID NOT NULL,
			name       TEXT NOT NULL UNIQUE,
			car_id     TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure drivers schema: %w", err)
	}
	return nil
}

// CreateIfNameAvailable relies on ON CONFLICT DO NOTHING against the unique
// name index, so duplicate detection and the insert are one atomic
// statement.
func (s *Postgres) CreateIfNameAvailable(ctx context.Context, d *models.Driver) error {
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO drivers (id, name, car_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO NOTHING
	`, d.ID, d.Name, d.CarID, d.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert driver: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrAlreadyUsed
	}
	return nil
}

func (s *Postgres) Exists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM drivers WHERE name = $1)`, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check driver existence: %w", err)
	}
	return exists, nil
}

func (s *Postgres) List(ctx context.Context) ([]*models.Driver, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, car_id, created_at FROM drivers ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	defer rows.Close()

	var drivers []*models.Driver
	for rows.Next() {
		var d models.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.CarID, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan driver: %w", err)
		}
		drivers = append(drivers, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate drivers: %w", err)
	}
	return drivers, nil
}
