package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fitbuddy/internal/core/model"
)

func runningSetRest(target int, mode model.AlertMode) State {
	return reduceAll(DefaultState(),
		SetAlertMode{Mode: mode},
		SetTarget{ID: model.SectionSetRest, Seconds: target},
		StartSection{ID: model.SectionSetRest},
	)
}

func collectAlerts(state State, actions ...Action) (State, []Alert) {
	var alerts []Alert
	for _, action := range actions {
		transition := Apply(state, action)
		alerts = append(alerts, transition.Alerts...)
		state = transition.Next
	}
	return state, alerts
}

func TestCompletionFiresOnce(t *testing.T) {
	state := runningSetRest(5, model.AlertVibration)
	_, alerts := collectAlerts(state, Tick{}, Tick{}, Tick{}, Tick{}, Tick{}, Tick{}, Tick{})
	assert.Equal(t, []Alert{{Kind: AlertComplete, Section: model.SectionSetRest}}, alerts)
}

func TestWarningFiresAtThreeSecondsWithSound(t *testing.T) {
	for _, mode := range []model.AlertMode{model.AlertSound, model.AlertBoth} {
		state := runningSetRest(5, mode)
		_, alerts := collectAlerts(state, Tick{}, Tick{}, Tick{}, Tick{}, Tick{})
		assert.Equal(t, []Alert{
			{Kind: AlertWarning, Section: model.SectionSetRest},
			{Kind: AlertComplete, Section: model.SectionSetRest},
		}, alerts, "mode %s", mode)
	}
}

func TestWarningSuppressedWithoutSound(t *testing.T) {
	for _, mode := range []model.AlertMode{model.AlertVibration, model.AlertNone} {
		state := runningSetRest(5, mode)
		_, alerts := collectAlerts(state, Tick{}, Tick{})
		assert.Empty(t, alerts, "mode %s", mode)
	}
}

func TestWarningNotRepeatedWithoutProgress(t *testing.T) {
	state := runningSetRest(5, model.AlertSound)
	state, alerts := collectAlerts(state, Tick{}, Tick{})
	assert.Len(t, alerts, 1)

	_, alerts = collectAlerts(state, PauseSection{ID: model.SectionSetRest}, StartSection{ID: model.SectionSetRest})
	assert.Empty(t, alerts)
}

func TestSkippedWarningIsNotReportedLate(t *testing.T) {
	state := runningSetRest(10, model.AlertBoth)
	state, alerts := collectAlerts(state, Tick{Seconds: 8})
	assert.Empty(t, alerts)

	_, alerts = collectAlerts(state, Tick{Seconds: 5})
	assert.Equal(t, []Alert{{Kind: AlertComplete, Section: model.SectionSetRest}}, alerts)
}

func TestStopwatchNeverAlerts(t *testing.T) {
	state := reduceAll(DefaultState(), SetTarget{ID: model.SectionSet, Seconds: 5}, StartSection{ID: model.SectionSet})
	_, alerts := collectAlerts(state, Tick{}, Tick{}, Tick{}, Tick{}, Tick{}, Tick{})
	assert.Empty(t, alerts)
}

func TestPausedAtTargetDoesNotAlert(t *testing.T) {
	state := runningSetRest(5, model.AlertBoth)
	state = Reduce(state, Tick{Seconds: 5})
	_, alerts := collectAlerts(state, ResetAll{}, PauseAll{}, ToggleMode{ID: model.SectionSetRest})
	assert.Empty(t, alerts)
}

func TestConcurrentCompletionsAreOrdered(t *testing.T) {
	state := reduceAll(DefaultState(),
		ToggleSectionEnabled{ID: model.SectionExerciseRest},
		SetTarget{ID: model.SectionExerciseRest, Seconds: 5},
		SetTarget{ID: model.SectionSetRest, Seconds: 5},
		StartSection{ID: model.SectionSetRest},
		StartSection{ID: model.SectionExerciseRest},
		SetAlertMode{Mode: model.AlertNone},
	)
	transition := Apply(state, Tick{Seconds: 5})
	assert.Equal(t, []Alert{
		{Kind: AlertComplete, Section: model.SectionExerciseRest},
		{Kind: AlertComplete, Section: model.SectionSetRest},
	}, transition.Alerts)
}
