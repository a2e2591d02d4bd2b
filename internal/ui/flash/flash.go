package flash

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"fitbuddy/internal/safego"
)

// Flasher plays a vibration pattern visually: even steps switch the
// highlight on, odd steps switch it off. A new pattern cancels the one in
// progress.
type Flasher struct {
	mu           sync.Mutex
	clock        clockwork.Clock
	logger       *zap.Logger
	setHighlight func(bool)
	cancel       context.CancelFunc
	wg           sync.WaitGroup
}

// New creates a flasher. setHighlight is called from a background goroutine;
// fyne callers wrap their update in fyne.Do.
func New(clock clockwork.Clock, logger *zap.Logger, setHighlight func(bool)) *Flasher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Flasher{clock: clock, logger: logger, setHighlight: setHighlight}
}

// Vibrate starts flashing pattern.
func (flasher *Flasher) Vibrate(pattern []time.Duration) {
	if len(pattern) == 0 || flasher.setHighlight == nil {
		return
	}
	steps := append([]time.Duration(nil), pattern...)

	flasher.mu.Lock()
	if flasher.cancel != nil {
		flasher.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	flasher.cancel = cancel
	flasher.wg.Add(1)
	flasher.mu.Unlock()

	safego.Go(flasher.logger, func() {
		defer flasher.wg.Done()
		flasher.run(ctx, steps)
	})
}

// Stop cancels any pattern in progress and waits for it to exit.
func (flasher *Flasher) Stop() {
	flasher.mu.Lock()
	if flasher.cancel != nil {
		flasher.cancel()
		flasher.cancel = nil
	}
	flasher.mu.Unlock()
	flasher.wg.Wait()
}

func (flasher *Flasher) run(ctx context.Context, steps []time.Duration) {
	defer flasher.setHighlight(false)
	for index, duration := range steps {
		flasher.setHighlight(index%2 == 0)
		if !flasher.sleep(ctx, duration) {
			return
		}
	}
}

func (flasher *Flasher) sleep(ctx context.Context, duration time.Duration) bool {
	timer := flasher.clock.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
