// Package storage persists received insights.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	// import db drivers
	_ "github.com/lib/pq"

	"github.com/sevigo/mamba-review/internal/core"
)

// Store defines the persistence operations for insights.
type Store interface {
	SaveInsight(ctx context.Context, insight *core.Insight) error
	ListInsights(ctx context.Context, limit int) ([]*core.Insight, error)
}

type postgresStore struct {
	db *sqlx.DB
}

// NewStore creates a Store backed by PostgreSQL.
func NewStore(db *sqlx.DB) Store {
	return &postgresStore{db: db}
}

// SaveInsight inserts the insight and fills in its generated ID.
func (s *postgresStore) SaveInsight(ctx context.Context, insight *core.Insight) error {
	query := `INSERT INTO insights (payload, received_at) VALUES ($1, $2) RETURNING id`
	if err := s.db.QueryRowxContext(ctx, query, []byte(insight.Payload), insight.ReceivedAt).Scan(&insight.ID); err != nil {
		return fmt.Errorf("failed to insert insight: %w", err)
	}
	return nil
}

// ListInsights returns the most recent insights, newest first.
func (s *postgresStore) ListInsights(ctx context.Context, limit int) ([]*core.Insight, error) {
	query := `
		SELECT id, payload::text AS payload, received_at
		FROM insights
		ORDER BY received_at DESC, id DESC
		LIMIT $1`

	var rows []insightRow
	if err := s.db.SelectContext(ctx, &rows, query, normalizeLimit(limit)); err != nil {
		return nil, fmt.Errorf("failed to list insights: %w", err)
	}

	insights := make([]*core.Insight, 0, len(rows))
	for _, r := range rows {
		insights = append(insights, &core.Insight{ID: r.ID, Payload: json.RawMessage(r.Payload), ReceivedAt: r.ReceivedAt})
	}
	return insights, nil
}

type insightRow struct {
	ID         int64     `db:"id"`
	Payload    string    `db:"payload"`
	ReceivedAt time.Time `db:"received_at"`
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 1000 {
		return 100
	}
	return limit
}
