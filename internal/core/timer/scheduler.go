package timer

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"fitbuddy/internal/safego"
)

// TickFunc receives whole engine seconds elapsed since the previous firing.
// generation identifies the ticker that fired.
type TickFunc func(generation uint64, seconds int)

// TickScheduler owns at most one shared repeating ticker. Elapsed time is
// measured from the clock rather than counted per callback, so long sessions
// do not drift.
type TickScheduler struct {
	clock    clockwork.Clock
	interval time.Duration
	onTick   TickFunc
	logger   *zap.Logger

	mu         sync.Mutex
	generation uint64
	stopCh     chan struct{}
	wg         sync.WaitGroup
}

// NewTickScheduler creates an idle scheduler. interval is the length of one
// engine second and defaults to time.Second.
func NewTickScheduler(clock clockwork.Clock, interval time.Duration, logger *zap.Logger, onTick TickFunc) *TickScheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TickScheduler{
		clock:    clock,
		interval: interval,
		onTick:   onTick,
		logger:   logger,
	}
}

// Sync creates the ticker when active becomes true and tears it down when it
// becomes false. Repeated calls with the same value keep the existing ticker.
// Safe to call from inside the tick callback.
func (scheduler *TickScheduler) Sync(active bool) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	if active == (scheduler.stopCh != nil) {
		return
	}
	if !active {
		scheduler.stopLocked()
		return
	}

	scheduler.generation++
	generation := scheduler.generation
	stopCh := make(chan struct{})
	scheduler.stopCh = stopCh
	ticker := scheduler.clock.NewTicker(scheduler.interval)
	started := scheduler.clock.Now()

	scheduler.wg.Add(1)
	safego.Go(scheduler.logger, func() {
		scheduler.run(generation, ticker, started, stopCh)
	})
	scheduler.logger.Debug("tick scheduler started", zap.Uint64("generation", generation))
}

// Active reports whether a ticker currently exists.
func (scheduler *TickScheduler) Active() bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.stopCh != nil
}

// Current reports whether generation belongs to the live ticker. Firings from
// a torn-down ticker are stale and must be dropped.
func (scheduler *TickScheduler) Current(generation uint64) bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.stopCh != nil && scheduler.generation == generation
}

// Close stops the ticker and waits for its goroutine to exit. It must not be
// called from the tick callback.
func (scheduler *TickScheduler) Close() {
	scheduler.mu.Lock()
	scheduler.stopLocked()
	scheduler.mu.Unlock()
	scheduler.wg.Wait()
}

func (scheduler *TickScheduler) stopLocked() {
	if scheduler.stopCh == nil {
		return
	}
	close(scheduler.stopCh)
	scheduler.stopCh = nil
	scheduler.logger.Debug("tick scheduler stopped", zap.Uint64("generation", scheduler.generation))
}

func (scheduler *TickScheduler) run(generation uint64, ticker clockwork.Ticker, last time.Time, stopCh <-chan struct{}) {
	defer scheduler.wg.Done()
	defer ticker.Stop()

	var carry time.Duration
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.Chan():
			now := scheduler.clock.Now()
			carry += now.Sub(last)
			last = now
			seconds := int(carry / scheduler.interval)
			if seconds <= 0 {
				continue
			}
			carry -= time.Duration(seconds) * scheduler.interval
			if scheduler.onTick != nil {
				scheduler.onTick(generation, seconds)
			}
		}
	}
}
