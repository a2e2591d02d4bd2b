package timer

import "fitbuddy/internal/core/model"

// NextPhase suggests the phase transition that follows a rest completed in
// the transition that produced state and alerts, when auto-advance is on.
// The engine never applies it on its own; hosts dispatch the returned action
// if they want chaining.
func NextPhase(state State, alerts []Alert) (Action, bool) {
	if !state.AutoAdvance || !state.GlobalEnabled {
		return nil, false
	}
	for _, alert := range alerts {
		if alert.Kind != AlertComplete {
			continue
		}
		switch alert.Section {
		case model.SectionSetRest:
			return StartSet{}, true
		case model.SectionExerciseRest:
			return StartExerciseTimer{}, true
		}
	}
	return nil, false
}
