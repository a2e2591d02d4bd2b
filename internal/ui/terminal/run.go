package terminal

import (
	"context"

	"github.com/rivo/tview"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"fitbuddy/internal/core/timer"
	"fitbuddy/internal/host"
)

// Options wires the terminal host.
type Options struct {
	Session *timer.Session
	Store   host.Persister
	User    string
	Logger  *zap.Logger
	OnAlert func([]timer.Alert)
}

// Run shows the session until the user quits or ctx is cancelled.
func Run(ctx context.Context, options Options) error {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app := tview.NewApplication()
	view := newView(app, func(action timer.Action) {
		options.Session.Dispatch(action)
	}, options.Session.Snapshot, cancel)

	bridge := host.NewBridge(host.Options{
		Session: options.Session,
		Store:   options.Store,
		User:    options.User,
		Logger:  logger,
		OnAlert: options.OnAlert,
		Render: func(state timer.State) {
			// Nothing drains the update queue once the app has stopped.
			if ctx.Err() != nil {
				return
			}
			app.QueueUpdateDraw(func() { view.Render(state) })
		},
	})

	view.Render(options.Session.Snapshot())
	app.SetRoot(view.root, true)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		defer cancel()
		return app.Run()
	})
	group.Go(func() error {
		<-groupCtx.Done()
		app.Stop()
		return nil
	})
	group.Go(func() error {
		return bridge.Run(groupCtx)
	})

	err := group.Wait()
	logger.Info("terminal host stopped")
	return err
}
