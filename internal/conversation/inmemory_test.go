package conversation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestInMemoryStoreKeepsTenMostRecent(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	for i := 0; i < 15; i++ {
		require.NoError(t, s.Append(ctx, "u1", Exchange{
			UserText:     fmt.Sprintf("q%d", i),
			ResponseText: fmt.Sprintf("a%d", i),
		}))
	}

	got, err := s.Recent(ctx, "u1", 100)
	require.NoError(t, err)
	require.Len(t, got, MaxExchanges)
	for i, e := range got {
		assert.Equal(t, fmt.Sprintf("q%d", i+5), e.UserText)
		assert.Equal(t, fmt.Sprintf("a%d", i+5), e.ResponseText)
		assert.NotEmpty(t, e.ID)
		assert.False(t, e.OccurredAt.IsZero())
	}
}

func TestInMemoryStoreRecentReturnsTail(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	for _, q := range []string{"a", "b", "c", "d"} {
		require.NoError(t, s.Append(ctx, "u1", Exchange{UserText: q}))
	}

	got, err := s.Recent(ctx, "u1", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"b", "c", "d"}, userTexts(got))

	all, err := s.Recent(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, userTexts(all))
}

func TestInMemoryStoreUnknownUserIsEmpty(t *testing.T) {
	s := NewInMemoryStore()
	got, err := s.Recent(context.Background(), "nobody", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, 0, s.Users())
}

func TestInMemoryStoreRecentIsACopy(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	require.NoError(t, s.Append(ctx, "u1", Exchange{UserText: "original"}))

	got, err := s.Recent(ctx, "u1", 1)
	require.NoError(t, err)
	got[0].UserText = "mutated"

	again, err := s.Recent(ctx, "u1", 1)
	require.NoError(t, err)
	assert.Equal(t, "original", again[0].UserText)
}

func TestInMemoryStoreUsersAreIsolated(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	require.NoError(t, s.Append(ctx, "a", Exchange{UserText: "from a"}))
	require.NoError(t, s.Append(ctx, "b", Exchange{UserText: "from b"}))

	got, err := s.Recent(ctx, "a", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"from a"}, userTexts(got))
	assert.Equal(t, 2, s.Users())
}

func TestInMemoryStoreConcurrentAppendsStayBounded(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Append(ctx, "u1", Exchange{UserText: fmt.Sprintf("q%d", i)})
		}(i)
	}
	wg.Wait()

	got, err := s.Recent(ctx, "u1", 100)
	require.NoError(t, err)
	assert.Len(t, got, MaxExchanges)
}

func TestInMemoryStoreEvictIdleUsers(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := base
	s.now = func() time.Time { return now }

	require.NoError(t, s.Append(ctx, "stale", Exchange{UserText: "old"}))
	now = base.Add(50 * time.Minute)
	require.NoError(t, s.Append(ctx, "fresh", Exchange{UserText: "new"}))

	var evicted []string
	s.SetEvictHook(func(userID string) { evicted = append(evicted, userID) })

	now = base.Add(61 * time.Minute)
	s.evictIdle(time.Hour)

	assert.Equal(t, []string{"stale"}, evicted)
	assert.Equal(t, 1, s.Users())
	got, err := s.Recent(ctx, "stale", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestInMemoryStoreJanitorStopsWithContext(t *testing.T) {
	s := NewInMemoryStore()
	require.NoError(t, s.Append(context.Background(), "u1", Exchange{UserText: "hi"}))
	later := time.Now().UTC().Add(2 * time.Hour)
	s.now = func() time.Time { return later }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.StartJanitor(ctx, 5*time.Millisecond, time.Hour)

	assert.Eventually(t, func() bool { return s.Users() == 0 }, time.Second, 5*time.Millisecond)
}

func TestNewStoreDefaultsToInMemory(t *testing.T) {
	s, err := NewStore(context.Background(), "  ")
	require.NoError(t, err)
	defer s.Close()
	_, ok := s.(*InMemoryStore)
	assert.True(t, ok, "NewStore() = %T, want *InMemoryStore", s)
}

func userTexts(in []Exchange) []string {
	out := make([]string, 0, len(in))
	for _, e := range in {
		out = append(out, e.UserText)
	}
	return out
}
