package display

import (
	"fmt"

	"fitbuddy/internal/core/model"
	"fitbuddy/internal/core/timer"
)

// FormatClock renders seconds as mm:ss, or h:mm:ss from one hour up.
// Negative input renders as zero.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// ClockValue is the number shown on a section's clock: time left for a
// countdown, time spent for a stopwatch.
func ClockValue(section timer.Section) int {
	if section.Mode == model.ModeCountdown {
		return section.Remaining()
	}
	return section.ElapsedSeconds
}

// Clock formats a section's clock value.
func Clock(section timer.Section) string {
	return FormatClock(ClockValue(section))
}

// Progress returns elapsed/target clamped to [0, 1].
func Progress(section timer.Section) float64 {
	if section.TargetSeconds <= 0 {
		return 0
	}
	progress := float64(section.ElapsedSeconds) / float64(section.TargetSeconds)
	if progress > 1 {
		return 1
	}
	if progress < 0 {
		return 0
	}
	return progress
}

var sectionLabels = map[model.SectionID]string{
	model.SectionTotal:        "Workout",
	model.SectionExercise:     "Exercise",
	model.SectionExerciseRest: "Exercise rest",
	model.SectionSet:          "Set",
	model.SectionSetRest:      "Set rest",
}

// SectionLabel returns the human name of a section.
func SectionLabel(id model.SectionID) string {
	if label, ok := sectionLabels[id]; ok {
		return label
	}
	return string(id)
}

// StatusWord describes a section for a status line.
func StatusWord(section timer.Section) string {
	if !section.Enabled {
		return "off"
	}
	switch section.Status() {
	case timer.StatusRunning:
		return "running"
	case timer.StatusPaused:
		return "paused"
	case timer.StatusCompleted:
		return "done"
	default:
		return "ready"
	}
}

// ModeLabel returns a short name for a timer mode.
func ModeLabel(mode model.TimerMode) string {
	if mode == model.ModeCountdown {
		return "countdown"
	}
	return "stopwatch"
}

// AlertModeLabels lists alert modes in menu order.
var AlertModeLabels = []struct {
	Mode  model.AlertMode
	Label string
}{
	{model.AlertBoth, "Vibration and sound"},
	{model.AlertVibration, "Vibration only"},
	{model.AlertSound, "Sound only"},
	{model.AlertNone, "Silent"},
}

// AlertModeLabel returns the menu label for mode.
func AlertModeLabel(mode model.AlertMode) string {
	for _, entry := range AlertModeLabels {
		if entry.Mode == mode {
			return entry.Label
		}
	}
	return string(mode)
}

// AlertModeFromLabel is the inverse of AlertModeLabel.
func AlertModeFromLabel(label string) (model.AlertMode, bool) {
	for _, entry := range AlertModeLabels {
		if entry.Label == label {
			return entry.Mode, true
		}
	}
	return "", false
}

// Summary is a one-line description of the running sections, used by the
// tray status item and the terminal footer.
func Summary(state timer.State) string {
	if !state.GlobalEnabled {
		return "timers off"
	}
	for _, id := range []model.SectionID{model.SectionSetRest, model.SectionExerciseRest, model.SectionSet, model.SectionExercise, model.SectionTotal} {
		section := state.Section(id)
		if section.Enabled && section.IsRunning {
			return fmt.Sprintf("%s %s", SectionLabel(id), Clock(section))
		}
	}
	return "idle"
}
