package customer

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"waybill/internal/registry/models"
	"waybill/pkg/platform/sentinel"
)

// Postgres persists customers with a unique name constraint.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// EnsureSchema creates the customers table if it does not exist.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS customers (
			seq          BIGSERIAL PRIMARY KEY,
			id           UUID NOT NULL,
			name         TEXT NOT NULL UNIQUE,
			address      TEXT NOT NULL,
			phone_number TEXT NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure customers schema: %w", err)
	}
	return nil
}

func (s *Postgres) CreateIfNameAvailable(ctx context.Context, c *models.Customer) error {
	tag, err := s.pool.Exec(ctx, `
		INSERT INTO customers (id, name, address, phone_number, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO NOTHING
	`, c.ID, c.Name, c.Address, c.PhoneNumber, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrAlreadyUsed
	}
	return nil
}

func (s *Postgres) Exists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM customers WHERE name = $1)`, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check customer existence: %w", err)
	}
	return exists, nil
}

func (s *Postgres) List(ctx context.Context) ([]*models.Customer, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, address, phone_number, created_at FROM customers ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.PhoneNumber, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customers: %w", err)
	}
	return customers, nil
}
