package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fitbuddy/internal/alert"
	"fitbuddy/internal/config"
	"fitbuddy/internal/core/timer"
	"fitbuddy/internal/logging"
	"fitbuddy/internal/storage"
)

// cli carries state shared by every subcommand.
type cli struct {
	cfg     config.AppConfig
	logger  *zap.Logger
	cleanup func()
}

func newRootCmd(app *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "fitbuddy",
		Short: "Workout timer with set and rest countdowns",
		Long: `FitBuddy tracks a workout with five timers: the whole workout, the current
exercise, the rest between exercises, the current set and the rest between sets.

Run without a subcommand to open the desktop window.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := app.cfg.Validate(); err != nil {
				return err
			}
			logger, cleanup, err := logging.New(logging.Config{
				Level: app.cfg.LogLevel,
				File:  app.cfg.LogFile,
				// The terminal host owns the screen.
				Quiet: cmd.Name() == "tui",
			})
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			app.logger = logger
			app.cleanup = cleanup
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.runDesktop(cmd.Context())
		},
	}
	app.cfg.BindFlags(root.PersistentFlags())

	root.AddCommand(
		&cobra.Command{
			Use:   "desktop",
			Short: "Open the desktop window and tray menu",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.runDesktop(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "tui",
			Short: "Run the timers in the terminal",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.runTerminal(cmd.Context())
			},
		},
		newPrefsCmd(app),
	)
	return root
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli{cfg: cfg}
	if err := app.execute(ctx, newRootCmd(app)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// execute runs the command tree. Cobra skips post-run hooks when a command
// fails, so the logger is flushed and closed here on every path.
func (app *cli) execute(ctx context.Context, root *cobra.Command) error {
	defer app.close()
	return root.ExecuteContext(ctx)
}

func (app *cli) close() {
	if app.cleanup != nil {
		app.cleanup()
		app.cleanup = nil
	}
}

func (app *cli) openStore(options storage.OpenOptions) (*storage.PreferenceStore, error) {
	options.Kind = storage.Kind(app.cfg.Store)
	options.DataDir = app.cfg.DataDir
	options.Logger = app.logger
	store, err := storage.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open preference store: %w", err)
	}
	return store, nil
}

// newSession builds a hydrated session delivering alerts through port.
func (app *cli) newSession(ctx context.Context, store *storage.PreferenceStore, port alert.Port) *timer.Session {
	session := timer.NewSession(timer.SessionOptions{
		TickInterval: app.cfg.TickInterval,
		Alerts:       alert.NewDispatcher(port, app.logger),
		Logger:       app.logger,
	})
	session.Hydrate(store.Load(ctx, app.cfg.User))
	app.logger.Info("session started",
		zap.String("session", session.ID()),
		zap.String("user", app.cfg.User),
		zap.String("store", app.cfg.Store),
		zap.String("data_dir", filepath.Clean(app.cfg.DataDir)),
	)
	return session
}

func (app *cli) newAudio() (*alert.AudioPort, alert.TonePlayer) {
	if !app.cfg.Audio {
		return nil, nil
	}
	audio := alert.NewAudioPort(app.logger)
	return audio, audio
}
