package main

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"go.uber.org/zap"

	"fitbuddy/internal/alert"
	"fitbuddy/internal/config"
	"fitbuddy/internal/core/model"
	"fitbuddy/internal/core/timer"
	"fitbuddy/internal/host"
	"fitbuddy/internal/platform"
	"fitbuddy/internal/safego"
	"fitbuddy/internal/storage"
	"fitbuddy/internal/ui/display"
	"fitbuddy/internal/ui/flash"
	"fitbuddy/internal/ui/session"
	"fitbuddy/internal/ui/tray"
	"fitbuddy/resources"
)

const appTitle = "FitBuddy"

func (app *cli) runDesktop(ctx context.Context) error {
	guard, err := platform.AcquireSingleInstance(config.AppName, app.cfg.DataDir)
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := fyneapp.NewWithID("io.fitbuddy.app")
	fyneApp.SetIcon(resources.AppIcon())

	store, err := app.openStore(storage.OpenOptions{Preferences: fyneApp.Preferences()})
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	var window *session.Window
	flasher := flash.New(nil, app.logger, func(on bool) {
		fyne.Do(func() {
			if window != nil {
				window.SetHighlight(on)
			}
		})
	})
	defer flasher.Stop()

	audio, player := app.newAudio()
	if audio != nil {
		defer audio.Close()
	}

	vibrators := alert.Vibrators{
		flasher,
		alert.NewNotificationVibrator(fyneApp, appTitle, "Rest is over", app.logger),
	}
	timers := app.newSession(ctx, store, alert.Combine(vibrators, player))
	defer timers.Close()

	window = session.New(fyneApp, func(action timer.Action) {
		timers.Dispatch(action)
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, appTitle, tray.Callbacks{
			OnShow:        window.Show,
			OnTogglePause: func() { timers.Dispatch(togglePause(timers.Snapshot())) },
			OnStartSet:    func() { timers.Dispatch(timer.StartSet{}) },
			OnSetRest:     func() { timers.Dispatch(timer.StartSetRest{}) },
			OnResetAll:    func() { timers.Dispatch(timer.ResetAll{}) },
			OnQuit:        fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(resources.AppIcon())
		window.SetOnClosed(window.Hide)
	} else {
		app.logger.Info("system tray unsupported on this platform")
		window.SetOnClosed(fyneApp.Quit)
	}

	render := func(state timer.State) {
		window.Update(state)
		if trayManager != nil {
			trayManager.SetStatus(display.Summary(state))
			trayManager.SetPaused(state.Section(model.SectionTotal).Status() == timer.StatusPaused)
		}
	}
	render(timers.Snapshot())

	bridge := host.NewBridge(host.Options{
		Session: timers,
		Store:   store,
		User:    app.cfg.User,
		Logger:  app.logger,
		Render: func(state timer.State) {
			fyne.Do(func() { render(state) })
		},
	})

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	safego.Go(app.logger, func() {
		_ = bridge.Run(runCtx)
	})
	safego.Go(app.logger, func() {
		select {
		case <-ctx.Done():
			app.logger.Info("shutdown signal received")
			fyne.Do(fyneApp.Quit)
		case <-runCtx.Done():
		}
	})

	window.Show()
	fyneApp.Run()
	app.logger.Info("desktop host stopped", zap.String("session", timers.ID()))
	return nil
}

// togglePause pauses everything while a timer runs and otherwise resumes the
// workout clock.
func togglePause(state timer.State) timer.Action {
	if state.Ticking() {
		return timer.PauseAll{}
	}
	return timer.StartSection{ID: model.SectionTotal}
}
