package worker

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolExecute(t *testing.T) {
	pool := NewPool(4, func(ctx context.Context, n int) (string, error) {
		if n == 3 {
			return "", errors.New("boom")
		}
		return strconv.Itoa(n * 2), nil
	})

	results := pool.Execute(context.Background(), []int{0, 1, 2, 3, 4})
	require.Len(t, results, 5)

	for i, r := range results {
		assert.Equal(t, i, r.Input, "results keep input order")
		if i == 3 {
			assert.Error(t, r.Err)
			continue
		}
		require.NoError(t, r.Err)
		assert.Equal(t, strconv.Itoa(i*2), r.Result)
	}
}

func TestPoolMinimumOneWorker(t *testing.T) {
	pool := NewPool(0, func(ctx context.Context, n int) (int, error) {
		return n + 1, nil
	})
	results := pool.Execute(context.Background(), []int{41})
	require.Len(t, results, 1)
	assert.Equal(t, 42, results[0].Result)
}

func TestPoolCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := NewPool(2, func(ctx context.Context, n int) (int, error) {
		return n, nil
	})
	results := pool.Execute(ctx, []int{1, 2, 3})
	// Slots for unprocessed inputs stay zero valued.
	assert.Len(t, results, 3)
}
