package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnTogglePause func()
	OnStartSet    func()
	OnSetRest     func()
	OnResetAll    func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	title       string
	statusItem  *fyne.MenuItem
	pauseItem   *fyne.MenuItem
	callbacks   Callbacks
	paused      bool
	statusLabel string
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, title string, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		title:     title,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: idle", nil)
	manager.statusItem.Disabled = true
	manager.pauseItem = fyne.NewMenuItem("Pause all", func() { call(manager.callbacks.OnTogglePause) })

	manager.refreshMenu()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	if status == manager.statusLabel {
		return
	}
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetPaused switches the pause item between pausing and resuming.
func (manager *Manager) SetPaused(paused bool) {
	if paused == manager.paused {
		return
	}
	manager.paused = paused
	if paused {
		manager.pauseItem.Label = "Resume workout"
	} else {
		manager.pauseItem.Label = "Pause all"
	}
	manager.refreshStatus()
}

// Status returns the current status item label.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

func (manager *Manager) refreshStatus() {
	status := manager.statusLabel
	if manager.paused {
		status = fmt.Sprintf("%s (paused)", status)
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(manager.title,
		manager.statusItem,
		fyne.NewMenuItem("Show timers", func() { call(manager.callbacks.OnShow) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Start set", func() { call(manager.callbacks.OnStartSet) }),
		fyne.NewMenuItem("Rest between sets", func() { call(manager.callbacks.OnSetRest) }),
		manager.pauseItem,
		fyne.NewMenuItem("Reset all", func() { call(manager.callbacks.OnResetAll) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { call(manager.callbacks.OnQuit) }),
	))
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}
