package timer

import "fitbuddy/internal/core/model"

// Action is one discrete input to the reducer.
type Action interface {
	// Name identifies the action in logs.
	Name() string
	apply(state State) State
}

// settingsAction marks actions that edit the persisted configuration.
type settingsAction interface {
	editsSettings()
}

// EditsSettings reports whether the action changes persisted preferences.
func EditsSettings(action Action) bool {
	_, ok := action.(settingsAction)
	return ok
}

// StartSection runs a section if it is enabled.
type StartSection struct{ ID model.SectionID }

// PauseSection stops a section, keeping its elapsed value.
type PauseSection struct{ ID model.SectionID }

// ResetSection zeroes and stops a section.
type ResetSection struct{ ID model.SectionID }

// ToggleSectionEnabled flips a section's enabled flag. Disabling stops and zeroes it.
type ToggleSectionEnabled struct{ ID model.SectionID }

// SetTarget sets a section target, clamped to the floor.
type SetTarget struct {
	ID      model.SectionID
	Seconds int
}

// ToggleMode switches a section between countdown and stopwatch.
type ToggleMode struct{ ID model.SectionID }

// ToggleGlobal flips the master switch.
type ToggleGlobal struct{}

// ToggleAutoAdvance flips the auto-advance hint.
type ToggleAutoAdvance struct{}

// SetAlertMode selects the alert channels.
type SetAlertMode struct{ Mode model.AlertMode }

// ResetAll zeroes and stops every section.
type ResetAll struct{}

// PauseAll stops every section, keeping elapsed values.
type PauseAll struct{}

// StartSetRest moves from a set into the rest between sets. Seconds > 0
// overrides the rest target.
type StartSetRest struct{ Seconds int }

// StartExerciseRest moves from an exercise into the rest between exercises.
type StartExerciseRest struct{ Seconds int }

// StartExerciseTimer begins a new exercise and its first set.
type StartExerciseTimer struct{ Seconds int }

// StartSet begins the next set after a set rest.
type StartSet struct{}

// InitTimers hydrates a fresh state from defaults plus an override.
type InitTimers struct{ Override Override }

// Tick advances running sections. Seconds <= 0 counts as one.
type Tick struct{ Seconds int }

func (StartSection) Name() string         { return "start_section" }
func (PauseSection) Name() string         { return "pause_section" }
func (ResetSection) Name() string         { return "reset_section" }
func (ToggleSectionEnabled) Name() string { return "toggle_section_enabled" }
func (SetTarget) Name() string            { return "set_target" }
func (ToggleMode) Name() string           { return "toggle_mode" }
func (ToggleGlobal) Name() string         { return "toggle_global" }
func (ToggleAutoAdvance) Name() string    { return "toggle_auto_advance" }
func (SetAlertMode) Name() string         { return "set_alert_mode" }
func (ResetAll) Name() string             { return "reset_all" }
func (PauseAll) Name() string             { return "pause_all" }
func (StartSetRest) Name() string         { return "start_set_rest" }
func (StartExerciseRest) Name() string    { return "start_exercise_rest" }
func (StartExerciseTimer) Name() string   { return "start_exercise_timer" }
func (StartSet) Name() string             { return "start_set" }
func (InitTimers) Name() string           { return "init_timers" }
func (Tick) Name() string                 { return "tick" }

func (ToggleSectionEnabled) editsSettings() {}
func (SetTarget) editsSettings()            {}
func (ToggleMode) editsSettings()           {}
func (ToggleGlobal) editsSettings()         {}
func (ToggleAutoAdvance) editsSettings()    {}
func (SetAlertMode) editsSettings()         {}

// SectionOverride replaces individual section fields during hydration.
type SectionOverride struct {
	Enabled        *bool
	Mode           *model.TimerMode
	TargetSeconds  *int
	ElapsedSeconds *int
	IsRunning      *bool
}

// Override is a partial State. Nil fields and omitted sections keep defaults.
type Override struct {
	Sections      map[model.SectionID]SectionOverride
	GlobalEnabled *bool
	AutoAdvance   *bool
	AlertMode     *model.AlertMode
}

// OverrideFromConfig converts a preference record into a hydration override.
func OverrideFromConfig(config model.TimerConfig) Override {
	config = config.Normalized()
	override := Override{
		Sections:      make(map[model.SectionID]SectionOverride, len(config.Sections)),
		GlobalEnabled: &config.GlobalEnabled,
		AutoAdvance:   &config.AutoAdvance,
		AlertMode:     &config.AlertMode,
	}
	for id, section := range config.Sections {
		section := section
		override.Sections[id] = SectionOverride{
			Enabled:       &section.Enabled,
			Mode:          &section.Mode,
			TargetSeconds: &section.DefaultSeconds,
		}
	}
	return override
}
