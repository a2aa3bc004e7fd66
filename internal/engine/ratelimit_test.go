package engine

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBWLimiter(t *testing.T) {
	t.Parallel()

	t.Run("burst capped to rate when rate < 1MB", func(t *testing.T) {
		t.Parallel()
		lim := NewBWLimiter(1024)
		assert.Equal(t, 1024, lim.Burst())
	})

	t.Run("burst is 1MB when rate >= 1MB", func(t *testing.T) {
		t.Parallel()
		lim := NewBWLimiter(10 * 1024 * 1024)
		assert.Equal(t, 1<<20, lim.Burst())
	})

	t.Run("burst never zero", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, 1, NewBWLimiter(0).Burst())
	})
}

func TestRateLimitedReader(t *testing.T) {
	t.Parallel()

	t.Run("reads all data", func(t *testing.T) {
		t.Parallel()
		data := bytes.Repeat([]byte("x"), 4096)
		lim := NewBWLimiter(1 << 20)
		rl := newRateLimitedReader(context.Background(), bytes.NewReader(data), lim)

		got, err := io.ReadAll(rl)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("buffer larger than burst", func(t *testing.T) {
		t.Parallel()
		data := bytes.Repeat([]byte("y"), 64*1024)
		lim := NewBWLimiter(32 * 1024 * 1024)
		lim.SetBurst(4096)
		rl := newRateLimitedReader(context.Background(), bytes.NewReader(data), lim)

		buf := make([]byte, 16*1024)
		n, err := rl.Read(buf)
		require.NoError(t, err)
		assert.Equal(t, 4096, n)

		rest, err := io.ReadAll(rl)
		require.NoError(t, err)
		assert.Len(t, rest, len(data)-n)
	})

	t.Run("enforces rate limit", func(t *testing.T) {
		t.Parallel()
		// 10 KB at 5 KB/s: the first 5 KB ride the burst, the rest waits ~1s.
		data := bytes.Repeat([]byte("a"), 10*1024)
		lim := NewBWLimiter(5 * 1024)

		start := time.Now()
		got, err := io.ReadAll(newRateLimitedReader(context.Background(), bytes.NewReader(data), lim))
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Len(t, got, len(data))
		assert.Greater(t, elapsed, 500*time.Millisecond)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()
		data := bytes.Repeat([]byte("b"), 1<<20)
		lim := NewBWLimiter(1024)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		rl := newRateLimitedReader(ctx, bytes.NewReader(data), lim)

		buf := make([]byte, 4096)
		var gotErr error
		for range 100 {
			if _, err := rl.Read(buf); err != nil {
				gotErr = err
				break
			}
		}
		assert.Error(t, gotErr)
	})
}
