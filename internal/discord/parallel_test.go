package discord

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelRunsEveryInput(t *testing.T) {
	var sum atomic.Int64
	err := parallel(context.Background(), []int{1, 2, 3, 4, 5}, 2, func(_ context.Context, n int) error {
		sum.Add(int64(n))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), sum.Load())
}

func TestParallelReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	err := parallel(context.Background(), []int{1, 2, 3}, 0, func(_ context.Context, n int) error {
		if n == 2 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestParallelCancelledParent(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := parallel(ctx, []int{1}, 1, func(ctx context.Context, _ int) error {
		return ctx.Err()
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParallelEmpty(t *testing.T) {
	assert.NoError(t, parallel(context.Background(), []int(nil), 3, func(context.Context, int) error {
		return errors.New("never called")
	}))
}
