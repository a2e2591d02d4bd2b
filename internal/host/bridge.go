package host

import (
	"context"

	"go.uber.org/zap"

	"fitbuddy/internal/core/model"
	"fitbuddy/internal/core/timer"
)

// Persister saves a user's timer configuration.
type Persister interface {
	Save(ctx context.Context, userKey string, config model.TimerConfig) error
}

// Options wires a Bridge.
type Options struct {
	Session *timer.Session
	Store   Persister
	User    string
	Logger  *zap.Logger
	// Render receives every state snapshot. Hosts marshal it onto their UI
	// goroutine.
	Render func(timer.State)
	// OnAlert receives alert edges after the session dispatched them.
	OnAlert func([]timer.Alert)
	Buffer  int
}

// Bridge connects a session to a host: it renders snapshots, saves settings
// edits and applies auto-advance.
type Bridge struct {
	options Options
	events  <-chan timer.Event
	logger  *zap.Logger
}

// NewBridge subscribes to the session immediately so no event between
// construction and Run is lost.
func NewBridge(options Options) *Bridge {
	if options.Buffer <= 0 {
		options.Buffer = 64
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bridge{
		options: options,
		events:  options.Session.Subscribe(options.Buffer),
		logger:  logger,
	}
}

// Run handles events until ctx is done or the session closes.
func (bridge *Bridge) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-bridge.events:
			if !ok {
				return nil
			}
			bridge.handle(ctx, event)
		}
	}
}

func (bridge *Bridge) handle(ctx context.Context, event timer.Event) {
	switch event.Type {
	case timer.EventState:
		if bridge.options.Render != nil {
			bridge.options.Render(event.State)
		}
	case timer.EventAlert:
		if bridge.options.OnAlert != nil {
			bridge.options.OnAlert(event.Alerts)
		}
		if action, ok := timer.NextPhase(event.State, event.Alerts); ok {
			bridge.logger.Debug("auto-advance", zap.String("action", action.Name()))
			bridge.options.Session.Dispatch(action)
		}
	case timer.EventSettingsChanged:
		if bridge.options.Store == nil {
			return
		}
		if err := bridge.options.Store.Save(ctx, bridge.options.User, event.Config); err != nil {
			bridge.logger.Warn("save preferences failed", zap.String("user", bridge.options.User), zap.Error(err))
		}
	}
}
