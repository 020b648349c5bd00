package conversation

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryStore is the process-local history store. Nothing survives a restart.
type InMemoryStore struct {
	mu      sync.RWMutex
	users   map[string]*userHistory
	onEvict func(userID string)
	now     func() time.Time
}

type userHistory struct {
	exchanges    []Exchange
	lastActivity time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users: make(map[string]*userHistory),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// SetEvictHook registers a callback invoked (outside the lock) for every user
// dropped by the idle janitor.
func (s *InMemoryStore) SetEvictHook(hook func(userID string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onEvict = hook
}

func (s *InMemoryStore) Append(_ context.Context, userID string, exchange Exchange) error {
	now := s.now()
	if exchange.ID == "" {
		exchange.ID = uuid.NewString()
	}
	if exchange.OccurredAt.IsZero() {
		exchange.OccurredAt = now
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.users[userID]
	if !ok {
		h = &userHistory{exchanges: make([]Exchange, 0, MaxExchanges)}
		s.users[userID] = h
	}
	if len(h.exchanges) >= MaxExchanges {
		// Shift in place so the backing array never grows past the cap.
		copy(h.exchanges, h.exchanges[len(h.exchanges)-MaxExchanges+1:])
		h.exchanges = h.exchanges[:MaxExchanges-1]
	}
	h.exchanges = append(h.exchanges, exchange)
	h.lastActivity = now
	return nil
}

func (s *InMemoryStore) Recent(_ context.Context, userID string, n int) ([]Exchange, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.users[userID]
	if !ok || len(h.exchanges) == 0 {
		return nil, nil
	}
	arr := h.exchanges
	if n <= 0 || n > len(arr) {
		n = len(arr)
	}
	out := make([]Exchange, n)
	copy(out, arr[len(arr)-n:])
	return out, nil
}

// Users reports how many users currently have a history.
func (s *InMemoryStore) Users() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// StartJanitor evicts users with no activity for idleTTL. It stops when ctx is done.
// A non-positive idleTTL disables eviction.
func (s *InMemoryStore) StartJanitor(ctx context.Context, interval, idleTTL time.Duration) {
	if idleTTL <= 0 {
		return
	}
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.evictIdle(idleTTL)
			}
		}
	}()
}

func (s *InMemoryStore) evictIdle(idleTTL time.Duration) []string {
	now := s.now()
	var evicted []string

	s.mu.Lock()
	for userID, h := range s.users {
		if now.Sub(h.lastActivity) < idleTTL {
			continue
		}
		delete(s.users, userID)
		evicted = append(evicted, userID)
	}
	hook := s.onEvict
	s.mu.Unlock()

	if hook != nil {
		for _, userID := range evicted {
			hook(userID)
		}
	}
	return evicted
}

func (s *InMemoryStore) Close() error { return nil }
