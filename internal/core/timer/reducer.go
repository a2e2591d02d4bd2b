package timer

import "fitbuddy/internal/core/model"

// Reduce applies one action to state and returns the next state. The input
// state is never modified. Every action is total: invalid input is clamped or
// ignored.
func Reduce(state State, action Action) State {
	if action == nil {
		return state.Clone()
	}
	return action.apply(state.Clone())
}

func (action StartSection) apply(state State) State {
	state.update(action.ID, func(section *Section) {
		if !section.Enabled {
			return
		}
		if section.Mode == model.ModeCountdown && section.ElapsedSeconds >= section.TargetSeconds {
			section.ElapsedSeconds = 0
		}
		section.IsRunning = true
	})
	return state
}

func (action PauseSection) apply(state State) State {
	state.update(action.ID, func(section *Section) {
		section.IsRunning = false
	})
	return state
}

func (action ResetSection) apply(state State) State {
	state.update(action.ID, resetSection)
	return state
}

func (action ToggleSectionEnabled) apply(state State) State {
	state.update(action.ID, func(section *Section) {
		section.Enabled = !section.Enabled
		if !section.Enabled {
			resetSection(section)
		}
	})
	return state
}

func (action SetTarget) apply(state State) State {
	state.update(action.ID, func(section *Section) {
		section.TargetSeconds = model.ClampTarget(action.Seconds)
		// A running countdown whose new target is already behind it completes now.
		if section.Mode == model.ModeCountdown && section.IsRunning && section.ElapsedSeconds >= section.TargetSeconds {
			section.ElapsedSeconds = section.TargetSeconds
			section.IsRunning = false
		}
	})
	return state
}

func (action ToggleMode) apply(state State) State {
	state.update(action.ID, func(section *Section) {
		section.Mode = section.Mode.Toggled()
		section.ElapsedSeconds = 0
		section.IsRunning = false
	})
	return state
}

func (ToggleGlobal) apply(state State) State {
	state.GlobalEnabled = !state.GlobalEnabled
	return state
}

func (ToggleAutoAdvance) apply(state State) State {
	state.AutoAdvance = !state.AutoAdvance
	return state
}

func (action SetAlertMode) apply(state State) State {
	if action.Mode.Valid() {
		state.AlertMode = action.Mode
	}
	return state
}

func (ResetAll) apply(state State) State {
	for id := range state.Sections {
		state.update(id, resetSection)
	}
	return state
}

func (PauseAll) apply(state State) State {
	for id := range state.Sections {
		state.update(id, func(section *Section) {
			section.IsRunning = false
		})
	}
	return state
}

func (action StartSetRest) apply(state State) State {
	state.update(model.SectionSet, func(section *Section) {
		section.IsRunning = false
	})
	state.restartGated(model.SectionSetRest, action.Seconds)
	return state
}

func (action StartExerciseRest) apply(state State) State {
	state.update(model.SectionExercise, func(section *Section) {
		section.IsRunning = false
	})
	state.update(model.SectionSet, resetSection)
	state.update(model.SectionSetRest, resetSection)
	state.restartGated(model.SectionExerciseRest, action.Seconds)
	return state
}

func (action StartExerciseTimer) apply(state State) State {
	state.restartGated(model.SectionExercise, action.Seconds)
	state.restartGated(model.SectionSet, 0)
	state.update(model.SectionExerciseRest, resetSection)
	state.update(model.SectionSetRest, resetSection)
	return state
}

func (StartSet) apply(state State) State {
	state.update(model.SectionSetRest, resetSection)
	state.restartGated(model.SectionSet, 0)
	return state
}

func (action InitTimers) apply(State) State {
	state := DefaultState()
	override := action.Override
	if override.GlobalEnabled != nil {
		state.GlobalEnabled = *override.GlobalEnabled
	}
	if override.AutoAdvance != nil {
		state.AutoAdvance = *override.AutoAdvance
	}
	if override.AlertMode != nil && override.AlertMode.Valid() {
		state.AlertMode = *override.AlertMode
	}
	for id, sectionOverride := range override.Sections {
		sectionOverride := sectionOverride
		state.update(id, func(section *Section) {
			mergeSection(section, sectionOverride)
		})
	}
	return state
}

func (action Tick) apply(state State) State {
	if !state.GlobalEnabled {
		return state
	}
	seconds := action.Seconds
	if seconds <= 0 {
		seconds = 1
	}
	for id := range state.Sections {
		state.update(id, func(section *Section) {
			if !section.IsRunning || !section.Enabled {
				return
			}
			section.ElapsedSeconds += seconds
			if section.Mode == model.ModeCountdown && section.ElapsedSeconds >= section.TargetSeconds {
				section.ElapsedSeconds = section.TargetSeconds
				section.IsRunning = false
			}
		})
	}
	return state
}

// restartGated zeroes a section, applies an optional target override and runs
// it when both the section and the master switch are enabled.
func (state State) restartGated(id model.SectionID, seconds int) {
	globalEnabled := state.GlobalEnabled
	state.update(id, func(section *Section) {
		section.ElapsedSeconds = 0
		if seconds > 0 {
			section.TargetSeconds = model.ClampTarget(seconds)
		}
		section.IsRunning = section.Enabled && globalEnabled
	})
}

func resetSection(section *Section) {
	section.ElapsedSeconds = 0
	section.IsRunning = false
}

func mergeSection(section *Section, override SectionOverride) {
	if override.Enabled != nil {
		section.Enabled = *override.Enabled
	}
	if override.Mode != nil && override.Mode.Valid() {
		section.Mode = *override.Mode
	}
	if override.TargetSeconds != nil {
		section.TargetSeconds = model.ClampTarget(*override.TargetSeconds)
	}
	if override.ElapsedSeconds != nil && *override.ElapsedSeconds > 0 {
		section.ElapsedSeconds = *override.ElapsedSeconds
	}
	if override.IsRunning != nil {
		section.IsRunning = *override.IsRunning
	}
	if !section.Enabled {
		section.IsRunning = false
	}
	if section.Mode == model.ModeCountdown && section.ElapsedSeconds >= section.TargetSeconds {
		section.ElapsedSeconds = section.TargetSeconds
		section.IsRunning = false
	}
}
