package timer

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

const waitFor = 2 * time.Second

func TestTickSchedulerEmitsSeconds(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := clockwork.NewFakeClock()
	var total atomic.Int64
	scheduler := NewTickScheduler(clock, time.Second, zap.NewNop(), func(_ uint64, seconds int) {
		total.Add(int64(seconds))
	})
	defer scheduler.Close()

	scheduler.Sync(true)
	require.True(t, scheduler.Active())

	for want := int64(1); want <= 3; want++ {
		clock.Advance(time.Second)
		require.Eventually(t, func() bool { return total.Load() == want }, waitFor, time.Millisecond)
	}
}

func TestTickSchedulerCatchesUpAfterJump(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := clockwork.NewFakeClock()
	var total atomic.Int64
	scheduler := NewTickScheduler(clock, time.Second, zap.NewNop(), func(_ uint64, seconds int) {
		total.Add(int64(seconds))
	})
	defer scheduler.Close()

	scheduler.Sync(true)
	clock.Advance(5 * time.Second)
	assert.Eventually(t, func() bool { return total.Load() == 5 }, waitFor, time.Millisecond)
}

func TestTickSchedulerSyncIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	scheduler := NewTickScheduler(clockwork.NewFakeClock(), 0, nil, nil)
	defer scheduler.Close()

	scheduler.Sync(true)
	scheduler.Sync(true)
	assert.True(t, scheduler.Current(1))
	assert.False(t, scheduler.Current(2))

	scheduler.Sync(false)
	scheduler.Sync(false)
	assert.False(t, scheduler.Active())
	assert.False(t, scheduler.Current(1))

	scheduler.Sync(true)
	assert.False(t, scheduler.Current(1))
	assert.True(t, scheduler.Current(2))
}

func TestTickSchedulerStopsFiringAfterSyncFalse(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := clockwork.NewFakeClock()
	var total atomic.Int64
	scheduler := NewTickScheduler(clock, time.Second, zap.NewNop(), func(_ uint64, seconds int) {
		total.Add(int64(seconds))
	})
	defer scheduler.Close()

	scheduler.Sync(true)
	clock.Advance(time.Second)
	require.Eventually(t, func() bool { return total.Load() == 1 }, waitFor, time.Millisecond)

	scheduler.Sync(false)
	clock.Advance(3 * time.Second)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int64(1), total.Load())
}

func TestTickSchedulerCloseIsRepeatable(t *testing.T) {
	defer goleak.VerifyNone(t)

	scheduler := NewTickScheduler(clockwork.NewFakeClock(), time.Second, zap.NewNop(), nil)
	scheduler.Sync(true)
	scheduler.Close()
	scheduler.Close()
	assert.False(t, scheduler.Active())
}
