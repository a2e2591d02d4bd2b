package timer

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"fitbuddy/internal/core/model"
)

type sinkMock struct {
	mock.Mock
}

func (m *sinkMock) Dispatch(mode model.AlertMode, alerts []Alert) {
	m.Called(mode, alerts)
}

func newTestSession(t *testing.T, sink AlertSink) (*Session, clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	session := NewSession(SessionOptions{
		Clock:        clock,
		TickInterval: time.Second,
		Alerts:       sink,
		Logger:       zap.NewNop(),
	})
	t.Cleanup(session.Close)
	return session, clock
}

func advanceTo(t *testing.T, session *Session, clock clockwork.FakeClock, id model.SectionID, elapsed int) {
	t.Helper()
	clock.Advance(time.Second)
	require.Eventually(t, func() bool {
		return session.Snapshot().Section(id).ElapsedSeconds == elapsed
	}, waitFor, time.Millisecond)
}

func TestSessionTicksRunningSections(t *testing.T) {
	defer goleak.VerifyNone(t)

	session, clock := newTestSession(t, nil)
	session.Dispatch(StartSection{ID: model.SectionTotal})
	require.True(t, session.scheduler.Active())

	advanceTo(t, session, clock, model.SectionTotal, 1)
	advanceTo(t, session, clock, model.SectionTotal, 2)

	session.Dispatch(PauseAll{})
	assert.False(t, session.scheduler.Active())

	clock.Advance(3 * time.Second)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 2, session.Snapshot().Section(model.SectionTotal).ElapsedSeconds)
	session.Close()
}

func TestSessionSchedulerFollowsGlobalSwitch(t *testing.T) {
	defer goleak.VerifyNone(t)

	session, _ := newTestSession(t, nil)
	session.Dispatch(StartSection{ID: model.SectionSet})
	require.True(t, session.scheduler.Active())

	session.Dispatch(ToggleGlobal{})
	assert.False(t, session.scheduler.Active())

	session.Dispatch(ToggleGlobal{})
	assert.True(t, session.scheduler.Active())
	session.Close()
}

func TestSessionDispatchesAlerts(t *testing.T) {
	defer goleak.VerifyNone(t)

	sink := &sinkMock{}
	sink.On("Dispatch", model.AlertBoth, []Alert{{Kind: AlertWarning, Section: model.SectionSetRest}}).Once()
	sink.On("Dispatch", model.AlertBoth, []Alert{{Kind: AlertComplete, Section: model.SectionSetRest}}).Once()

	session, clock := newTestSession(t, sink)
	session.Dispatch(SetTarget{ID: model.SectionSetRest, Seconds: 5})
	session.Dispatch(StartSection{ID: model.SectionSetRest})

	for elapsed := 1; elapsed <= 5; elapsed++ {
		advanceTo(t, session, clock, model.SectionSetRest, elapsed)
	}
	assert.False(t, session.Snapshot().Section(model.SectionSetRest).IsRunning)
	assert.False(t, session.scheduler.Active())

	// Close drains the alert queue before returning.
	session.Close()
	sink.AssertExpectations(t)
}

type blockingSink struct {
	calls   atomic.Int32
	release chan struct{}
}

func (s *blockingSink) Dispatch(model.AlertMode, []Alert) {
	s.calls.Add(1)
	<-s.release
}

func TestSlowAlertSinkDoesNotStallDispatch(t *testing.T) {
	defer goleak.VerifyNone(t)

	sink := &blockingSink{release: make(chan struct{})}
	session, clock := newTestSession(t, sink)
	session.Dispatch(SetTarget{ID: model.SectionSetRest, Seconds: 5})
	session.Dispatch(StartSection{ID: model.SectionSetRest})
	session.Dispatch(StartSection{ID: model.SectionTotal})

	for elapsed := 1; elapsed <= 5; elapsed++ {
		advanceTo(t, session, clock, model.SectionSetRest, elapsed)
	}
	require.Eventually(t, func() bool { return sink.calls.Load() >= 1 }, waitFor, time.Millisecond)

	// Ticks keep flowing while the sink is stuck.
	advanceTo(t, session, clock, model.SectionTotal, 6)

	done := make(chan Transition, 1)
	go func() { done <- session.Dispatch(PauseSection{ID: model.SectionTotal}) }()
	select {
	case transition := <-done:
		assert.False(t, transition.Next.Section(model.SectionTotal).IsRunning)
	case <-time.After(waitFor):
		t.Fatal("dispatch blocked behind the alert sink")
	}

	close(sink.release)
	session.Close()
	assert.Equal(t, int32(2), sink.calls.Load())
}

func TestSessionEmitsSettingsChanged(t *testing.T) {
	defer goleak.VerifyNone(t)

	session, _ := newTestSession(t, nil)
	events := session.Subscribe(8)

	session.Dispatch(ToggleGlobal{})

	first := <-events
	assert.Equal(t, EventState, first.Type)
	assert.Equal(t, "toggle_global", first.Action)

	second := <-events
	require.Equal(t, EventSettingsChanged, second.Type)
	assert.False(t, second.Config.GlobalEnabled)
	assert.Equal(t, ConfigFromState(session.Snapshot()), second.Config)

	session.Dispatch(StartSection{ID: model.SectionTotal})
	third := <-events
	assert.Equal(t, EventState, third.Type)
	assert.Empty(t, events)
	session.Close()
}

func TestSessionHydrate(t *testing.T) {
	defer goleak.VerifyNone(t)

	config := model.DefaultTimerConfig()
	config.AlertMode = model.AlertNone
	config.Sections[model.SectionTotal] = model.SectionConfig{Enabled: false, DefaultSeconds: 1800, Mode: model.ModeStopwatch}

	session, _ := newTestSession(t, nil)
	session.Dispatch(StartSection{ID: model.SectionSet})
	session.Hydrate(config)

	state := session.Snapshot()
	assert.Equal(t, model.AlertNone, state.AlertMode)
	assert.Equal(t, Section{Mode: model.ModeStopwatch, TargetSeconds: 1800}, state.Section(model.SectionTotal))
	assert.False(t, state.Section(model.SectionSet).IsRunning)
	assert.False(t, session.scheduler.Active())
	session.Close()
}

func TestSessionCloseStopsEverything(t *testing.T) {
	defer goleak.VerifyNone(t)

	session, clock := newTestSession(t, nil)
	events := session.Subscribe(4)
	session.Dispatch(StartSection{ID: model.SectionTotal})
	<-events

	session.Close()
	session.Close()

	_, open := <-events
	assert.False(t, open)
	assert.False(t, session.scheduler.Active())

	transition := session.Dispatch(ResetAll{})
	assert.True(t, transition.Next.Section(model.SectionTotal).IsRunning)

	clock.Advance(2 * time.Second)
	assert.Equal(t, 0, session.Snapshot().Section(model.SectionTotal).ElapsedSeconds)

	late := session.Subscribe(1)
	_, open = <-late
	assert.False(t, open)
}

func TestSessionIDIsUnique(t *testing.T) {
	first, _ := newTestSession(t, nil)
	second, _ := newTestSession(t, nil)
	assert.NotEmpty(t, first.ID())
	assert.NotEqual(t, first.ID(), second.ID())
}
