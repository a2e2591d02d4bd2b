package timer

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"fitbuddy/internal/core/model"
	"fitbuddy/internal/safego"
)

// AlertSink receives the alert edges of each transition. It is called from
// the session's alert worker, never while the session lock is held.
type AlertSink interface {
	Dispatch(mode model.AlertMode, alerts []Alert)
}

// alertQueueSize bounds undelivered alert batches; a full queue drops the batch.
const alertQueueSize = 16

type alertBatch struct {
	mode   model.AlertMode
	alerts []Alert
}

// SessionOptions contains runtime options for a Session.
type SessionOptions struct {
	Clock        clockwork.Clock
	TickInterval time.Duration
	Alerts       AlertSink
	Logger       *zap.Logger
}

// Session owns the engine state of one live workout view. Every action, from
// the UI or from the ticker, is applied under one lock, so observers never
// see a partially applied transition.
type Session struct {
	id        string
	mu        sync.Mutex
	state     State
	scheduler *TickScheduler
	alerts    AlertSink
	clock     clockwork.Clock
	logger    *zap.Logger
	events    []chan Event
	closed    bool

	alertQueue chan alertBatch
	alertWG    sync.WaitGroup
}

// NewSession creates a session holding the default state. Call Hydrate to
// apply stored preferences.
func NewSession(options SessionOptions) *Session {
	if options.Clock == nil {
		options.Clock = clockwork.NewRealClock()
	}
	if options.Logger == nil {
		options.Logger = zap.NewNop()
	}

	session := &Session{
		id:     uuid.NewString(),
		state:  DefaultState(),
		alerts: options.Alerts,
		clock:  options.Clock,
	}
	session.logger = options.Logger.With(zap.String("session", session.id))
	session.scheduler = NewTickScheduler(options.Clock, options.TickInterval, session.logger, session.handleTick)
	if session.alerts != nil {
		session.alertQueue = make(chan alertBatch, alertQueueSize)
		session.alertWG.Add(1)
		safego.Go(session.logger, session.deliverAlerts)
	}
	return session
}

// ID returns the session identifier used in logs.
func (session *Session) ID() string {
	return session.id
}

// Hydrate replaces the state with defaults merged with config.
func (session *Session) Hydrate(config model.TimerConfig) Transition {
	return session.Dispatch(InitTimers{Override: OverrideFromConfig(config)})
}

// Snapshot returns a copy of the current state.
func (session *Session) Snapshot() State {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.state.Clone()
}

// Subscribe registers a new observer channel. Slow observers miss events
// rather than stall the session.
func (session *Session) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed {
		close(ch)
		return ch
	}
	session.events = append(session.events, ch)
	return ch
}

// Dispatch applies action and returns the transition. After Close it is a
// no-op.
func (session *Session) Dispatch(action Action) Transition {
	session.mu.Lock()
	defer session.mu.Unlock()
	return session.dispatchLocked(action)
}

// Close tears down the ticker synchronously, delivers queued alerts and
// closes observers. It is safe to call more than once.
func (session *Session) Close() {
	session.mu.Lock()
	if session.closed {
		session.mu.Unlock()
		return
	}
	session.closed = true
	events := session.events
	session.events = nil
	session.mu.Unlock()

	// The tick goroutine may be waiting on mu, so join it without holding the lock.
	session.scheduler.Close()

	// closed is set, so no dispatch can enqueue after this point.
	if session.alertQueue != nil {
		close(session.alertQueue)
		session.alertWG.Wait()
	}

	for _, ch := range events {
		close(ch)
	}
	session.logger.Info("session closed")
}

func (session *Session) handleTick(generation uint64, seconds int) {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.closed || !session.scheduler.Current(generation) {
		return
	}
	session.dispatchLocked(Tick{Seconds: seconds})
}

func (session *Session) dispatchLocked(action Action) Transition {
	if session.closed || action == nil {
		state := session.state.Clone()
		return Transition{Action: action, Prev: state, Next: state}
	}

	transition := Apply(session.state, action)
	session.state = transition.Next
	session.scheduler.Sync(session.state.Ticking())

	if _, isTick := action.(Tick); !isTick {
		session.logger.Debug("timer action", zap.String("action", action.Name()))
	}

	now := session.clock.Now()
	session.emitLocked(Event{
		Type:   EventState,
		Action: action.Name(),
		State:  transition.Next.Clone(),
		At:     now,
	})

	if len(transition.Alerts) > 0 {
		for _, alert := range transition.Alerts {
			session.logger.Info("timer alert",
				zap.String("kind", string(alert.Kind)),
				zap.String("section", string(alert.Section)),
			)
		}
		session.enqueueAlertsLocked(transition.Next.AlertMode, transition.Alerts)
		session.emitLocked(Event{
			Type:   EventAlert,
			Action: action.Name(),
			State:  transition.Next.Clone(),
			Alerts: append([]Alert(nil), transition.Alerts...),
			At:     now,
		})
	}

	if EditsSettings(action) {
		session.emitLocked(Event{
			Type:   EventSettingsChanged,
			Action: action.Name(),
			State:  transition.Next.Clone(),
			Config: ConfigFromState(transition.Next),
			At:     now,
		})
	}

	return transition
}

func (session *Session) enqueueAlertsLocked(mode model.AlertMode, alerts []Alert) {
	if session.alertQueue == nil {
		return
	}
	select {
	case session.alertQueue <- alertBatch{mode: mode, alerts: append([]Alert(nil), alerts...)}:
	default:
		session.logger.Warn("alert queue full, alerts dropped", zap.Int("count", len(alerts)))
	}
}

func (session *Session) deliverAlerts() {
	defer session.alertWG.Done()
	for batch := range session.alertQueue {
		session.alerts.Dispatch(batch.mode, batch.alerts)
	}
}

func (session *Session) emitLocked(event Event) {
	for _, ch := range session.events {
		select {
		case ch <- event:
		default:
		}
	}
}
