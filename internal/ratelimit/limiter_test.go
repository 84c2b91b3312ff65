package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitAllowsWithinRate(t *testing.T) {
	l := New("test", 100)

	start := time.Now()
	for range 5 {
		require.NoError(t, l.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), time.Second)
}

func TestWaitHonorsContextCancellation(t *testing.T) {
	l := New("test", 1)
	// Drain the burst so the next wait would block.
	require.NoError(t, l.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "test")
}

func TestName(t *testing.T) {
	assert.Equal(t, "catalog search", New("catalog search", 1).Name())
}
