package conversation

import (
	"context"
	"time"
)

// MaxExchanges bounds the history kept per user. Older exchanges are evicted first.
const MaxExchanges = 10

// Exchange stores one recorded query and the answer that was returned for it.
type Exchange struct {
	ID           string    `json:"id"`
	UserText     string    `json:"user_text"`
	ResponseText string    `json:"response_text"`
	PIIRedacted  bool      `json:"pii_redacted"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Store keeps a bounded, ordered history of exchanges per user.
type Store interface {
	Append(ctx context.Context, userID string, exchange Exchange) error
	// Recent returns up to n exchanges, oldest first. n <= 0 returns the full history.
	Recent(ctx context.Context, userID string, n int) ([]Exchange, error)
	Close() error
}
