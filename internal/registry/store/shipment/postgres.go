package shipment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"waybill/internal/registry/models"
)

// Postgres persists shipments. Receivers map to a text[] column; pgx v5
// handles the []string conversion natively.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// EnsureSchema creates the shipments table if it does not exist.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS shipments (
			seq             BIGSERIAL PRIMARY KEY,
			id              UUID NOT NULL,
			shipment_number BIGINT NOT NULL,
			driver_name     TEXT NOT NULL,
			receivers       TEXT[] NOT NULL,
			origins         TEXT NOT NULL DEFAULT '',
			destinations    TEXT NOT NULL DEFAULT '',
			tracking_number TEXT NOT NULL DEFAULT '',
			weight          BIGINT NOT NULL,
			status          TEXT NOT NULL,
			created_at      TIMESTAMPTZ NOT NULL,
			updated_at      TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure shipments schema: %w", err)
	}
	return nil
}

func (s *Postgres) Append(ctx context.Context, sh *models.Shipment) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO shipments (id, shipment_number, driver_name, receivers, origins,
			destinations, tracking_number, weight, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, sh.ID, sh.ShipmentNumber, sh.DriverName, sh.Receivers, sh.Origins,
		sh.Destinations, sh.TrackingNumber, sh.Weight, string(sh.Status),
		sh.CreatedAt, sh.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert shipment: %w", err)
	}
	return nil
}

func (s *Postgres) List(ctx context.Context) ([]*models.Shipment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, shipment_number, driver_name, receivers, origins,
			destinations, tracking_number, weight, status, created_at, updated_at
		FROM shipments ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	defer rows.Close()

	var shipments []*models.Shipment
	for rows.Next() {
		var (
			sh     models.Shipment
			status string
		)
		if err := rows.Scan(&sh.ID, &sh.ShipmentNumber, &sh.DriverName, &sh.Receivers,
			&sh.Origins, &sh.Destinations, &sh.TrackingNumber, &sh.Weight, &status,
			&sh.CreatedAt, &sh.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan shipment: %w", err)
		}
		sh.Status = models.ShipmentStatus(status)
		shipments = append(shipments, &sh)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate shipments: %w", err)
	}
	return shipments, nil
}
