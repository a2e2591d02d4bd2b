package timer

import "fitbuddy/internal/core/model"

// Section is the timing state of one channel.
type Section struct {
	Enabled        bool
	Mode           model.TimerMode
	TargetSeconds  int
	ElapsedSeconds int
	IsRunning      bool
}

// Status is the derived lifecycle position of a section.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// Status derives the section's state machine position.
func (section Section) Status() Status {
	switch {
	case section.IsRunning:
		return StatusRunning
	case section.Mode == model.ModeCountdown && section.ElapsedSeconds >= section.TargetSeconds:
		return StatusCompleted
	case section.ElapsedSeconds == 0:
		return StatusIdle
	default:
		return StatusPaused
	}
}

// Remaining returns seconds left on a countdown, or zero for a stopwatch.
func (section Section) Remaining() int {
	if section.Mode != model.ModeCountdown {
		return 0
	}
	remaining := section.TargetSeconds - section.ElapsedSeconds
	if remaining < 0 {
		return 0
	}
	return remaining
}

// State is the full engine state for one workout session. Sections always
// holds all five channels.
type State struct {
	Sections      map[model.SectionID]Section
	GlobalEnabled bool
	AutoAdvance   bool
	AlertMode     model.AlertMode
}

// DefaultState builds a fresh state from the built-in defaults.
func DefaultState() State {
	return StateFromConfig(model.DefaultTimerConfig())
}

// StateFromConfig seeds an idle state from a preference record.
func StateFromConfig(config model.TimerConfig) State {
	config = config.Normalized()
	state := State{
		Sections:      make(map[model.SectionID]Section, len(model.SectionIDs)),
		GlobalEnabled: config.GlobalEnabled,
		AutoAdvance:   config.AutoAdvance,
		AlertMode:     config.AlertMode,
	}
	for _, id := range model.SectionIDs {
		sectionConfig := config.Sections[id]
		state.Sections[id] = Section{
			Enabled:       sectionConfig.Enabled,
			Mode:          sectionConfig.Mode,
			TargetSeconds: sectionConfig.DefaultSeconds,
		}
	}
	return state
}

// ConfigFromState extracts the persistable configuration, dropping live counters.
func ConfigFromState(state State) model.TimerConfig {
	config := model.TimerConfig{
		GlobalEnabled: state.GlobalEnabled,
		AutoAdvance:   state.AutoAdvance,
		AlertMode:     state.AlertMode,
		Sections:      make(map[model.SectionID]model.SectionConfig, len(state.Sections)),
	}
	for id, section := range state.Sections {
		config.Sections[id] = model.SectionConfig{
			Enabled:        section.Enabled,
			DefaultSeconds: section.TargetSeconds,
			Mode:           section.Mode,
		}
	}
	return config
}

// Clone returns a deep copy so reducers never alias the caller's map.
func (state State) Clone() State {
	clone := state
	clone.Sections = make(map[model.SectionID]Section, len(state.Sections))
	for id, section := range state.Sections {
		clone.Sections[id] = section
	}
	return clone
}

// Section returns the named section.
func (state State) Section(id model.SectionID) Section {
	return state.Sections[id]
}

// Ticking reports whether a tick would advance any section.
func (state State) Ticking() bool {
	if !state.GlobalEnabled {
		return false
	}
	for _, section := range state.Sections {
		if section.IsRunning && section.Enabled {
			return true
		}
	}
	return false
}

func (state State) update(id model.SectionID, mutate func(*Section)) {
	section, ok := state.Sections[id]
	if !ok {
		return
	}
	mutate(&section)
	state.Sections[id] = section
}
