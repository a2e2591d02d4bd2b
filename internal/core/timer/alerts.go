package timer

import "fitbuddy/internal/core/model"

// WarningSeconds is the countdown remainder that triggers the soft warning.
const WarningSeconds = 3

// AlertKind classifies an alert edge.
type AlertKind string

const (
	AlertComplete AlertKind = "complete"
	AlertWarning  AlertKind = "warning"
)

// Alert is an edge detected between two consecutive states.
type Alert struct {
	Kind    AlertKind
	Section model.SectionID
}

// Transition is the result of applying one action.
type Transition struct {
	Action Action
	Prev   State
	Next   State
	Alerts []Alert
}

// Apply reduces state and detects alert edges in one step.
func Apply(state State, action Action) Transition {
	next := Reduce(state, action)
	return Transition{
		Action: action,
		Prev:   state,
		Next:   next,
		Alerts: DetectAlerts(state, next),
	}
}

// DetectAlerts compares two consecutive states section by section. Warning
// edges are only produced when the alert mode includes sound. A warning whose
// exact second was skipped is not reported late.
func DetectAlerts(prev, next State) []Alert {
	var alerts []Alert
	for _, id := range model.SectionIDs {
		before, okBefore := prev.Sections[id]
		after, okAfter := next.Sections[id]
		if !okBefore || !okAfter || after.Mode != model.ModeCountdown {
			continue
		}
		if completed(before, after) {
			alerts = append(alerts, Alert{Kind: AlertComplete, Section: id})
			continue
		}
		if next.AlertMode.Sounds() && nearExpiry(before, after) {
			alerts = append(alerts, Alert{Kind: AlertWarning, Section: id})
		}
	}
	return alerts
}

func completed(before, after Section) bool {
	return before.IsRunning &&
		!after.IsRunning &&
		after.ElapsedSeconds >= after.TargetSeconds &&
		before.ElapsedSeconds < before.TargetSeconds
}

func nearExpiry(before, after Section) bool {
	return after.IsRunning &&
		after.TargetSeconds-after.ElapsedSeconds == WarningSeconds &&
		after.ElapsedSeconds != before.ElapsedSeconds
}
