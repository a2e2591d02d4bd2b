package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"fitbuddy/internal/core/model"
	"fitbuddy/internal/core/timer"
	"fitbuddy/internal/ui/display"
)

// View renders a session in the terminal. All methods except Render run on
// the tview event goroutine.
type View struct {
	app      *tview.Application
	table    *tview.Table
	header   *tview.TextView
	footer   *tview.TextView
	root     *tview.Flex
	dispatch func(timer.Action)
	snapshot func() timer.State
	selected int
	onQuit   func()
}

func newView(app *tview.Application, dispatch func(timer.Action), snapshot func() timer.State, onQuit func()) *View {
	view := &View{
		app:      app,
		dispatch: dispatch,
		snapshot: snapshot,
		onQuit:   onQuit,
	}

	view.header = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	view.table = tview.NewTable().
		SetBorders(false).
		SetSelectable(true, false).
		SetFixed(1, 0)
	view.table.SetBorder(true).SetTitle(" FitBuddy ")
	view.table.SetSelectionChangedFunc(func(row, _ int) {
		if row >= 1 {
			view.selected = row - 1
		}
	})

	view.footer = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	view.footer.SetText(helpText)

	view.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(view.header, 1, 0, false).
		AddItem(view.table, 0, 1, true).
		AddItem(view.footer, 2, 0, false)

	view.root.SetInputCapture(view.handleKey)
	return view
}

func (view *View) selectedID() model.SectionID {
	return model.SectionIDs[view.selected]
}

func (view *View) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if event.Key() == tcell.KeyEscape || (event.Key() == tcell.KeyRune && event.Rune() == 'q') {
		if view.onQuit != nil {
			view.onQuit()
		}
		return nil
	}
	if index, ok := selectionKey(event); ok {
		view.selected = index
		view.table.Select(index+1, 0)
		return nil
	}
	if action, ok := keyAction(event, view.snapshot(), view.selectedID()); ok {
		view.dispatch(action)
		return nil
	}
	return event
}

// Render writes state into the widgets.
func (view *View) Render(state timer.State) {
	view.header.SetText(fmt.Sprintf("Timers [%s]%s[white]   Auto-advance [%s]%s[white]   Alerts [yellow]%s[white]",
		onColor(state.GlobalEnabled), onOff(state.GlobalEnabled),
		onColor(state.AutoAdvance), onOff(state.AutoAdvance),
		display.AlertModeLabel(state.AlertMode)))

	for column, title := range []string{"#", "Section", "Clock", "Target", "Mode", "Status"} {
		view.table.SetCell(0, column, tview.NewTableCell(title).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetExpansion(1))
	}
	for index, id := range model.SectionIDs {
		section := state.Section(id)
		row := index + 1
		textColor := tcell.ColorWhite
		switch {
		case !section.Enabled:
			textColor = tcell.ColorGray
		case section.IsRunning:
			textColor = tcell.ColorGreen
		case section.Status() == timer.StatusCompleted:
			textColor = tcell.ColorRed
		}
		values := []string{
			fmt.Sprintf("%d", row),
			display.SectionLabel(id),
			display.Clock(section),
			display.FormatClock(section.TargetSeconds),
			display.ModeLabel(section.Mode),
			display.StatusWord(section),
		}
		for column, value := range values {
			view.table.SetCell(row, column, tview.NewTableCell(value).
				SetTextColor(textColor).
				SetExpansion(1))
		}
	}
	view.table.Select(view.selected+1, 0)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

func onColor(on bool) string {
	if on {
		return "green"
	}
	return "gray"
}
