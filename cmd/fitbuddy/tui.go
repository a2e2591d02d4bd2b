package main

import (
	"context"

	"fitbuddy/internal/alert"
	"fitbuddy/internal/storage"
	"fitbuddy/internal/ui/terminal"
)

func (app *cli) runTerminal(ctx context.Context) error {
	store, err := app.openStore(storage.OpenOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = store.Close()
	}()

	audio, player := app.newAudio()
	if audio != nil {
		defer audio.Close()
	}

	timers := app.newSession(ctx, store, alert.Combine(nil, player))
	defer timers.Close()

	return terminal.Run(ctx, terminal.Options{
		Session: timers,
		Store:   store,
		User:    app.cfg.User,
		Logger:  app.logger,
	})
}
