package alert

import (
	"time"

	"go.uber.org/zap"

	"fitbuddy/internal/core/model"
	"fitbuddy/internal/core/timer"
)

// CompletePattern is the vibration pattern for a finished countdown:
// on/off/on/off/on.
var CompletePattern = []time.Duration{
	200 * time.Millisecond,
	100 * time.Millisecond,
	200 * time.Millisecond,
	100 * time.Millisecond,
	200 * time.Millisecond,
}

// Dispatcher routes alert edges to a Port according to the alert mode.
type Dispatcher struct {
	port   Port
	logger *zap.Logger
}

// NewDispatcher creates a dispatcher delivering through port.
func NewDispatcher(port Port, logger *zap.Logger) *Dispatcher {
	if port == nil {
		port = NopPort{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{port: port, logger: logger}
}

// Dispatch delivers each alert. Completion vibrates and/or plays the triple
// beep per mode; a warning only ever plays the soft tone.
func (dispatcher *Dispatcher) Dispatch(mode model.AlertMode, alerts []timer.Alert) {
	for _, alert := range alerts {
		switch alert.Kind {
		case timer.AlertComplete:
			if mode.Vibrates() {
				dispatcher.port.Vibrate(CompletePattern)
			}
			if mode.Sounds() {
				dispatcher.port.PlayTone(ToneComplete)
			}
		case timer.AlertWarning:
			if mode.Sounds() {
				dispatcher.port.PlayTone(ToneWarning)
			}
		default:
			dispatcher.logger.Warn("unknown alert kind", zap.String("kind", string(alert.Kind)))
		}
	}
}
