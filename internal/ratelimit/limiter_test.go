package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitAllowsWithinRate(t *testing.T) {
	l := New("steam-api", 100)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	require.NoError(t, l.Wait(ctx))
	assert.Equal(t, "steam-api", l.Name())
}

func TestWaitCancelledContext(t *testing.T) {
	// Burst of 1 and an already-spent token forces Wait to block.
	l := NewWithBurst("steam-store", 1, 1)
	require.True(t, l.Allow())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Wait(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "steam-store")
}

func TestNilLimiterNeverBlocks(t *testing.T) {
	var l *Limiter

	require.NoError(t, l.Wait(context.Background()))
	assert.True(t, l.Allow())
	assert.Equal(t, "", l.Name())
}

func TestAllowExhaustsBurst(t *testing.T) {
	l := NewWithBurst("steam-store", 1, 2)

	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow())
}
