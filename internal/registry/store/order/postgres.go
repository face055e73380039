package order

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"waybill/internal/registry/models"
)

// Postgres persists orders. order_number deliberately carries no unique
// constraint.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// EnsureSchema creates the orders table if it does not exist.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS orders (
			seq              BIGSERIAL PRIMARY KEY,
			id               UUID NOT NULL,
			order_number     BIGINT NOT NULL,
			order_date       TIMESTAMPTZ NOT NULL,
			priority         TEXT NOT NULL DEFAULT '',
			customer_name    TEXT NOT NULL,
			customer_address TEXT NOT NULL DEFAULT '',
			created_at       TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure orders schema: %w", err)
	}
	return nil
}

func (s *Postgres) Append(ctx context.Context, o *models.Order) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO orders (id, order_number, order_date, priority, customer_name, customer_address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, o.ID, o.OrderNumber, o.OrderDate, o.Priority, o.CustomerName, o.CustomerAddress, o.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (s *Postgres) List(ctx context.Context) ([]*models.Order, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, order_number, order_date, priority, customer_name, customer_address, created_at
		FROM orders ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.OrderNumber, &o.OrderDate, &o.Priority,
			&o.CustomerName, &o.CustomerAddress, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return orders, nil
}
