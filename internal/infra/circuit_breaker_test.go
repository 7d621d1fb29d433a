package infra

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRemote = errors.New("remote down")

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker() (*CircuitBreaker, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)}
	cb := NewCircuitBreaker(CircuitBreakerConfig{Name: "test", FailureThreshold: 3, SuccessThreshold: 1, OpenTimeout: 30 * time.Second})
	cb.now = clock.now
	return cb, clock
}

func fail(context.Context) error    { return errRemote }
func succeed(context.Context) error { return nil }

func TestCircuitBreaker_TripsAfterThreshold(t *testing.T) {
	cb, _ := newTestBreaker()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(ctx, fail), errRemote)
	}
	assert.Equal(t, CBOpen, cb.State())

	called := false
	err := cb.Execute(ctx, func(context.Context) error { called = true; return nil })
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	cb, _ := newTestBreaker()
	ctx := context.Background()

	_ = cb.Execute(ctx, fail)
	_ = cb.Execute(ctx, fail)
	require.NoError(t, cb.Execute(ctx, succeed))
	_ = cb.Execute(ctx, fail)
	_ = cb.Execute(ctx, fail)

	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenProbe(t *testing.T) {
	cb, clock := newTestBreaker()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_ = cb.Execute(ctx, fail)
	}

	clock.advance(29 * time.Second)
	assert.Equal(t, CBOpen, cb.State())

	clock.advance(time.Second)
	assert.Equal(t, CBHalfOpen, cb.State())

	require.NoError(t, cb.Execute(ctx, succeed))
	assert.Equal(t, CBClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb, clock := newTestBreaker()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_ = cb.Execute(ctx, fail)
	}
	clock.advance(30 * time.Second)

	assert.ErrorIs(t, cb.Execute(ctx, fail), errRemote)
	assert.Equal(t, CBOpen, cb.State())
}

func TestCircuitBreaker_CallerCancellationIsNotAFailure(t *testing.T) {
	cb, _ := newTestBreaker()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for i := 0; i < 5; i++ {
		err := cb.Execute(ctx, func(ctx context.Context) error { return ctx.Err() })
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, CBClosed, cb.State())
}

func TestCBState_String(t *testing.T) {
	assert.Equal(t, "closed", CBClosed.String())
	assert.Equal(t, "open", CBOpen.String())
	assert.Equal(t, "half-open", CBHalfOpen.String())
}
