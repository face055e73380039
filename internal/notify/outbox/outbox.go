// Package outbox implements a transactional-outbox sink: events are written
// to a Postgres table on the creation path and relayed to a downstream sink
// by a background worker. This keeps broker outages from surfacing anywhere
// near the registry's write path.
package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"waybill/internal/notify"
)

// Store appends events to the outbox table. It uses database/sql so the
// relay can share a plain *sql.DB handle (lib/pq driver).
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the outbox table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS registry_outbox (
			seq          BIGSERIAL PRIMARY KEY,
			id           UUID NOT NULL,
			kind         TEXT NOT NULL,
			payload      JSONB NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			published_at TIMESTAMPTZ
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure outbox schema: %w", err)
	}
	return nil
}

// Notify appends the event to the outbox.
func (s *Store) Notify(ctx context.Context, event notify.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO registry_outbox (id, kind, payload) VALUES ($1, $2, $3)
	`, uuid.New(), string(event.Kind), payload)
	if err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}
	return nil
}

// NextBatch returns up to limit unpublished events in append order, along
// with their row sequence numbers.
func (s *Store) NextBatch(ctx context.Context, limit int) ([]notify.Event, []int64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, payload FROM registry_outbox
		WHERE published_at IS NULL
		ORDER BY seq
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, nil, fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()

	var (
		events []notify.Event
		seqs   []int64
	)
	for rows.Next() {
		var (
			seq     int64
			payload []byte
			event   notify.Event
		)
		if err := rows.Scan(&seq, &payload); err != nil {
			return nil, nil, fmt.Errorf("scan outbox row: %w", err)
		}
		if err := json.Unmarshal(payload, &event); err != nil {
			return nil, nil, fmt.Errorf("unmarshal outbox payload: %w", err)
		}
		events = append(events, event)
		seqs = append(seqs, seq)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("iterate outbox: %w", err)
	}
	return events, seqs, nil
}

// MarkPublished stamps the given rows as relayed.
func (s *Store) MarkPublished(ctx context.Context, seqs []int64) error {
	if len(seqs) == 0 {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
		UPDATE registry_outbox SET published_at = now() WHERE seq = ANY($1)
	`, pq.Array(seqs))
	if err != nil {
		return fmt.Errorf("mark outbox published: %w", err)
	}
	return nil
}
