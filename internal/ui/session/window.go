package session

import (
	"image/color"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"fitbuddy/internal/core/model"
	"fitbuddy/internal/core/timer"
	"fitbuddy/internal/ui/display"
)

var (
	clockColor     = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	idleBackground = color.NRGBA{A: 0}
	flashColor     = color.NRGBA{R: 232, G: 190, B: 66, A: 90}
)

type sectionCard struct {
	id       model.SectionID
	clock    *canvas.Text
	status   *widget.Label
	progress *widget.ProgressBar
	enabled  *widget.Check
	mode     *widget.Button
	target   *widget.Entry
	start    *widget.Button
	pause    *widget.Button
	reset    *widget.Button

	// shownTarget is the last target written to the entry; typing is kept
	// until the engine's target actually changes.
	shownTarget int
}

// Window is the desktop view of one timer session. It renders snapshots and
// turns widget input into actions; it holds no timer state of its own.
type Window struct {
	window     fyne.Window
	dispatch   func(timer.Action)
	cards      map[model.SectionID]*sectionCard
	global     *widget.Check
	auto       *widget.Check
	alertMode  *widget.Select
	background *canvas.Rectangle

	startExercise     *widget.Button
	startSetRest      *widget.Button
	startExerciseRest *widget.Button
	pauseAll          *widget.Button
	resetAll          *widget.Button

	// syncing suppresses widget callbacks while Update writes widget values.
	syncing bool
}

// New builds the session window. dispatch receives every user action.
func New(app fyne.App, dispatch func(timer.Action)) *Window {
	window := app.NewWindow("FitBuddy")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	view := &Window{
		window:     window,
		dispatch:   dispatch,
		cards:      make(map[model.SectionID]*sectionCard, len(model.SectionIDs)),
		background: canvas.NewRectangle(idleBackground),
	}

	sections := container.NewVBox()
	for _, id := range model.SectionIDs {
		card := view.newCard(id)
		view.cards[id] = card
		sections.Add(view.cardLayout(card))
	}

	view.global = widget.NewCheck("Timers on", func(bool) { view.send(timer.ToggleGlobal{}) })
	view.auto = widget.NewCheck("Auto-advance", func(bool) { view.send(timer.ToggleAutoAdvance{}) })

	labels := make([]string, 0, len(display.AlertModeLabels))
	for _, entry := range display.AlertModeLabels {
		labels = append(labels, entry.Label)
	}
	view.alertMode = widget.NewSelect(labels, func(label string) {
		if mode, ok := display.AlertModeFromLabel(label); ok {
			view.send(timer.SetAlertMode{Mode: mode})
		}
	})

	view.startExercise = widget.NewButton("Next exercise", func() { view.send(timer.StartExerciseTimer{}) })
	view.startSetRest = widget.NewButton("Rest between sets", func() { view.send(timer.StartSetRest{}) })
	view.startExerciseRest = widget.NewButton("Rest between exercises", func() { view.send(timer.StartExerciseRest{}) })
	view.pauseAll = widget.NewButton("Pause all", func() { view.send(timer.PauseAll{}) })
	view.resetAll = widget.NewButton("Reset all", func() { view.send(timer.ResetAll{}) })

	header := container.NewVBox(
		container.NewHBox(view.global, view.auto, layout.NewSpacer(), widget.NewLabel("Alerts"), view.alertMode),
		container.NewGridWithColumns(3, view.startExercise, view.startSetRest, view.startExerciseRest),
	)
	footer := container.NewHBox(layout.NewSpacer(), view.pauseAll, view.resetAll)

	content := container.NewBorder(header, footer, nil, nil, container.NewVScroll(sections))
	window.SetContent(container.NewStack(view.background, container.NewPadded(content)))
	window.Resize(fyne.NewSize(520, 640))

	view.Update(timer.DefaultState())
	return view
}

func (view *Window) newCard(id model.SectionID) *sectionCard {
	card := &sectionCard{id: id}

	card.clock = canvas.NewText("00:00", clockColor)
	card.clock.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	card.clock.TextSize = 28

	card.status = widget.NewLabel("")
	card.progress = widget.NewProgressBar()
	card.progress.TextFormatter = func() string { return "" }

	card.enabled = widget.NewCheck("On", func(bool) { view.send(timer.ToggleSectionEnabled{ID: id}) })
	card.mode = widget.NewButton("", func() { view.send(timer.ToggleMode{ID: id}) })

	card.target = widget.NewEntry()
	card.target.SetPlaceHolder("seconds")
	card.target.OnSubmitted = func(value string) {
		if seconds, ok := parseSeconds(value); ok {
			view.send(timer.SetTarget{ID: id, Seconds: seconds})
		}
	}

	card.start = widget.NewButton("Start", func() { view.send(timer.StartSection{ID: id}) })
	card.pause = widget.NewButton("Pause", func() { view.send(timer.PauseSection{ID: id}) })
	card.reset = widget.NewButton("Reset", func() { view.send(timer.ResetSection{ID: id}) })
	return card
}

func (view *Window) cardLayout(card *sectionCard) fyne.CanvasObject {
	title := widget.NewLabelWithStyle(display.SectionLabel(card.id), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	top := container.NewHBox(title, layout.NewSpacer(), card.status, card.enabled)
	settings := container.NewHBox(card.mode, widget.NewLabel("Target"), card.target)
	controls := container.NewHBox(card.clock, layout.NewSpacer(), card.start, card.pause, card.reset)
	return widget.NewCard("", "", container.NewVBox(top, controls, card.progress, settings))
}

// Update renders state. Call it on the fyne goroutine.
func (view *Window) Update(state timer.State) {
	view.syncing = true
	defer func() { view.syncing = false }()

	view.global.SetChecked(state.GlobalEnabled)
	view.auto.SetChecked(state.AutoAdvance)
	view.alertMode.SetSelected(display.AlertModeLabel(state.AlertMode))

	for id, card := range view.cards {
		section := state.Section(id)
		card.clock.Text = display.Clock(section)
		card.clock.Refresh()
		card.status.SetText(display.StatusWord(section))
		card.progress.SetValue(display.Progress(section))
		card.enabled.SetChecked(section.Enabled)
		card.mode.SetText(display.ModeLabel(section.Mode))
		if card.shownTarget != section.TargetSeconds {
			card.shownTarget = section.TargetSeconds
			card.target.SetText(strconv.Itoa(section.TargetSeconds))
		}

		card.start.Disable()
		card.pause.Disable()
		if section.Enabled && !section.IsRunning {
			card.start.Enable()
		}
		if section.IsRunning {
			card.pause.Enable()
		}
	}
}

// SetHighlight tints the window; used to flash completion alerts.
func (view *Window) SetHighlight(on bool) {
	if on {
		view.background.FillColor = flashColor
	} else {
		view.background.FillColor = idleBackground
	}
	view.background.Refresh()
}

// SetOnClosed registers a handler for the window's close button.
func (view *Window) SetOnClosed(handler func()) {
	view.window.SetCloseIntercept(func() {
		if handler != nil {
			handler()
		}
	})
}

// Show displays the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Hide hides the window without closing the session.
func (view *Window) Hide() {
	view.window.Hide()
}

func (view *Window) send(action timer.Action) {
	if view.syncing || view.dispatch == nil {
		return
	}
	view.dispatch(action)
}

func parseSeconds(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, false
	}
	return parsed, true
}
