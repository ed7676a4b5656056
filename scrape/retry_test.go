package scrape_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fletchka/harvest"
	"github.com/fletchka/harvest/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noDelays() []time.Duration {
	return []time.Duration{0, 0, 0}
}

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	t.Run("returns first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "<html></html>", nil
		}

		html, err := scrape.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, noDelays())
		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("connection reset")
			}
			return "<html></html>", nil
		}

		html, err := scrape.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, noDelays())
		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after all attempts", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "", errors.New("always down")
		}

		_, err := scrape.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, noDelays())
		require.Error(t, err)
		assert.Equal(t, 4, calls)
	})

	t.Run("never retries a 404", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "", harvest.Errorf(harvest.ENOTFOUND, "HTTP 404")
		}

		_, err := scrape.FetchWithRetryDelays(context.Background(), "https://example.com", fetch, nil, noDelays())
		require.Error(t, err)
		assert.Equal(t, 1, calls)
		assert.Equal(t, harvest.ENOTFOUND, harvest.ErrorCode(err))
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetch := func(ctx context.Context, url string) (string, error) {
			cancel()
			return "", errors.New("transient")
		}

		_, err := scrape.FetchWithRetryDelays(ctx, "https://example.com", fetch, nil, []time.Duration{time.Hour})
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestDomainLimiter_Wait(t *testing.T) {
	t.Parallel()

	t.Run("spaces requests within a domain", func(t *testing.T) {
		t.Parallel()

		l := scrape.NewDomainLimiter()
		ctx := context.Background()

		start := time.Now()
		require.NoError(t, l.Wait(ctx, "example.com", 50*time.Millisecond))
		require.NoError(t, l.Wait(ctx, "example.com", 50*time.Millisecond))
		assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
	})

	t.Run("domains do not block each other", func(t *testing.T) {
		t.Parallel()

		l := scrape.NewDomainLimiter()
		ctx := context.Background()

		require.NoError(t, l.Wait(ctx, "a.example.com", time.Hour))
		start := time.Now()
		require.NoError(t, l.Wait(ctx, "b.example.com", time.Hour))
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		l := scrape.NewDomainLimiter()
		ctx, cancel := context.WithCancel(context.Background())

		require.NoError(t, l.Wait(ctx, "slow.example.com", time.Hour))
		cancel()
		require.Error(t, l.Wait(ctx, "slow.example.com", time.Hour))
	})
}
