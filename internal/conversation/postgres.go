package conversation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps conversation history in PostgreSQL, trimmed to MaxExchanges per user.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

func initSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS legal_exchanges (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			user_text TEXT NOT NULL,
			response_text TEXT NOT NULL,
			pii_redacted BOOLEAN NOT NULL DEFAULT FALSE,
			occurred_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		`CREATE INDEX IF NOT EXISTS idx_legal_exchanges_user_occurred ON legal_exchanges (user_id, occurred_at);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema failed on %q: %w", stmt, err)
		}
	}
	return nil
}

func (s *PostgresStore) Append(ctx context.Context, userID string, exchange Exchange) error {
	if exchange.ID == "" {
		exchange.ID = uuid.NewString()
	}
	if exchange.OccurredAt.IsZero() {
		exchange.OccurredAt = time.Now().UTC()
	}

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO legal_exchanges (id, user_id, user_text, response_text, pii_redacted, occurred_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			exchange.ID,
			userID,
			exchange.UserText,
			exchange.ResponseText,
			exchange.PIIRedacted,
			exchange.OccurredAt,
		); err != nil {
			return fmt.Errorf("insert exchange: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`DELETE FROM legal_exchanges WHERE user_id=$1 AND id NOT IN (
				SELECT id FROM legal_exchanges WHERE user_id=$1
				ORDER BY occurred_at DESC, id DESC LIMIT $2
			)`,
			userID,
			MaxExchanges,
		); err != nil {
			return fmt.Errorf("trim history: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("append exchange: %w", err)
	}
	return nil
}

func (s *PostgresStore) Recent(ctx context.Context, userID string, n int) ([]Exchange, error) {
	if n <= 0 || n > MaxExchanges {
		n = MaxExchanges
	}

	rows, err := s.pool.Query(ctx,
		`SELECT id, user_text, response_text, pii_redacted, occurred_at
		 FROM legal_exchanges WHERE user_id=$1 ORDER BY occurred_at DESC, id DESC LIMIT $2`,
		userID,
		n,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent exchanges: %w", err)
	}
	defer rows.Close()

	items := make([]Exchange, 0, n)
	for rows.Next() {
		var e Exchange
		if err := rows.Scan(&e.ID, &e.UserText, &e.ResponseText, &e.PIIRedacted, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan exchange row: %w", err)
		}
		items = append(items, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exchange rows: %w", err)
	}

	// Newest-first from the query; callers expect chronological order.
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}

	return items, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
