package model

// SectionID names one of the five fixed timer channels of a workout session.
type SectionID string

const (
	SectionTotal        SectionID = "total"
	SectionExercise     SectionID = "exercise"
	SectionExerciseRest SectionID = "exerciseRest"
	SectionSet          SectionID = "set"
	SectionSetRest      SectionID = "setRest"
)

// SectionIDs lists every section in display order.
var SectionIDs = []SectionID{
	SectionTotal,
	SectionExercise,
	SectionExerciseRest,
	SectionSet,
	SectionSetRest,
}

// Valid reports whether id is one of the five known sections.
func (id SectionID) Valid() bool {
	for _, known := range SectionIDs {
		if id == known {
			return true
		}
	}
	return false
}

// TimerMode selects whether a section counts toward a target or runs unbounded.
type TimerMode string

const (
	ModeCountdown TimerMode = "countdown"
	ModeStopwatch TimerMode = "stopwatch"
)

// Valid reports whether mode is a known timer mode.
func (mode TimerMode) Valid() bool {
	return mode == ModeCountdown || mode == ModeStopwatch
}

// Toggled returns the opposite mode.
func (mode TimerMode) Toggled() TimerMode {
	if mode == ModeCountdown {
		return ModeStopwatch
	}
	return ModeCountdown
}

// AlertMode selects which alert channels fire.
type AlertMode string

const (
	AlertVibration AlertMode = "vibration"
	AlertSound     AlertMode = "sound"
	AlertBoth      AlertMode = "both"
	AlertNone      AlertMode = "none"
)

// Valid reports whether mode is a known alert mode.
func (mode AlertMode) Valid() bool {
	switch mode {
	case AlertVibration, AlertSound, AlertBoth, AlertNone:
		return true
	}
	return false
}

// Vibrates reports whether the mode includes vibration.
func (mode AlertMode) Vibrates() bool {
	return mode == AlertVibration || mode == AlertBoth
}

// Sounds reports whether the mode includes tones.
func (mode AlertMode) Sounds() bool {
	return mode == AlertSound || mode == AlertBoth
}

// MinTargetSeconds is the lowest accepted section target.
const MinTargetSeconds = 5

// ClampTarget applies the target floor.
func ClampTarget(seconds int) int {
	if seconds < MinTargetSeconds {
		return MinTargetSeconds
	}
	return seconds
}

// SectionConfig is the persisted default for one section.
type SectionConfig struct {
	Enabled        bool
	DefaultSeconds int
	Mode           TimerMode
}

// TimerConfig is the per-user preference record that seeds a new session.
type TimerConfig struct {
	GlobalEnabled bool
	AutoAdvance   bool
	AlertMode     AlertMode
	Sections      map[SectionID]SectionConfig
}

// DefaultTimerConfig returns the built-in defaults.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		GlobalEnabled: true,
		AutoAdvance:   true,
		AlertMode:     AlertBoth,
		Sections: map[SectionID]SectionConfig{
			SectionTotal:        {Enabled: true, DefaultSeconds: 3600, Mode: ModeStopwatch},
			SectionExercise:     {Enabled: true, DefaultSeconds: 300, Mode: ModeStopwatch},
			SectionExerciseRest: {Enabled: false, DefaultSeconds: 120, Mode: ModeCountdown},
			SectionSet:          {Enabled: true, DefaultSeconds: 60, Mode: ModeStopwatch},
			SectionSetRest:      {Enabled: true, DefaultSeconds: 90, Mode: ModeCountdown},
		},
	}
}

// Clone returns a deep copy.
func (config TimerConfig) Clone() TimerConfig {
	clone := config
	clone.Sections = make(map[SectionID]SectionConfig, len(config.Sections))
	for id, section := range config.Sections {
		clone.Sections[id] = section
	}
	return clone
}

// Normalized fills missing sections from defaults and repairs invalid leaves.
func (config TimerConfig) Normalized() TimerConfig {
	defaults := DefaultTimerConfig()
	normalized := config.Clone()
	if !normalized.AlertMode.Valid() {
		normalized.AlertMode = defaults.AlertMode
	}
	for _, id := range SectionIDs {
		section, ok := normalized.Sections[id]
		if !ok {
			normalized.Sections[id] = defaults.Sections[id]
			continue
		}
		if !section.Mode.Valid() {
			section.Mode = defaults.Sections[id].Mode
		}
		section.DefaultSeconds = ClampTarget(section.DefaultSeconds)
		normalized.Sections[id] = section
	}
	for id := range normalized.Sections {
		if !id.Valid() {
			delete(normalized.Sections, id)
		}
	}
	return normalized
}
