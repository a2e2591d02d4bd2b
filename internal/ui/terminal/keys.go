package terminal

import (
	"github.com/gdamore/tcell/v2"

	"fitbuddy/internal/core/model"
	"fitbuddy/internal/core/timer"
	"fitbuddy/internal/ui/display"
)

// targetStep is the amount +/- changes a section target by.
const targetStep = 5

const helpText = "[yellow]↑↓/1-5[white] select  [yellow]s[white] start  [yellow]p[white] pause  [yellow]r[white] reset  " +
	"[yellow]e[white] on/off  [yellow]m[white] mode  [yellow]+/-[white] target\n" +
	"[yellow]x[white] next exercise  [yellow]b[white] set rest  [yellow]B[white] exercise rest  [yellow]n[white] next set  " +
	"[yellow]P[white] pause all  [yellow]R[white] reset all  [yellow]g[white] timers  [yellow]a[white] auto  [yellow]v[white] alerts  [yellow]q[white] quit"

// keyAction maps a key press on the selected section to an engine action.
func keyAction(event *tcell.EventKey, state timer.State, selected model.SectionID) (timer.Action, bool) {
	if event.Key() != tcell.KeyRune {
		return nil, false
	}
	section := state.Section(selected)
	switch event.Rune() {
	case 's':
		return timer.StartSection{ID: selected}, true
	case 'p':
		return timer.PauseSection{ID: selected}, true
	case 'r':
		return timer.ResetSection{ID: selected}, true
	case 'e':
		return timer.ToggleSectionEnabled{ID: selected}, true
	case 'm':
		return timer.ToggleMode{ID: selected}, true
	case '+', '=':
		return timer.SetTarget{ID: selected, Seconds: section.TargetSeconds + targetStep}, true
	case '-', '_':
		return timer.SetTarget{ID: selected, Seconds: section.TargetSeconds - targetStep}, true
	case 'x':
		return timer.StartExerciseTimer{}, true
	case 'b':
		return timer.StartSetRest{}, true
	case 'B':
		return timer.StartExerciseRest{}, true
	case 'n':
		return timer.StartSet{}, true
	case 'P':
		return timer.PauseAll{}, true
	case 'R':
		return timer.ResetAll{}, true
	case 'g':
		return timer.ToggleGlobal{}, true
	case 'a':
		return timer.ToggleAutoAdvance{}, true
	case 'v':
		return timer.SetAlertMode{Mode: nextAlertMode(state.AlertMode)}, true
	}
	return nil, false
}

func nextAlertMode(mode model.AlertMode) model.AlertMode {
	labels := display.AlertModeLabels
	for index, entry := range labels {
		if entry.Mode == mode {
			return labels[(index+1)%len(labels)].Mode
		}
	}
	return labels[0].Mode
}

// selectionKey returns the section chosen by a digit key.
func selectionKey(event *tcell.EventKey) (int, bool) {
	if event.Key() != tcell.KeyRune {
		return 0, false
	}
	r := event.Rune()
	if r < '1' || r > '0'+rune(len(model.SectionIDs)) {
		return 0, false
	}
	return int(r - '1'), true
}
