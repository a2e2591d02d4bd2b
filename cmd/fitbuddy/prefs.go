package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"fitbuddy/internal/core/model"
	"fitbuddy/internal/storage"
)

func newPrefsCmd(app *cli) *cobra.Command {
	prefs := &cobra.Command{
		Use:   "prefs",
		Short: "Inspect or edit the stored timer preferences",
	}

	prefs.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the preferences the next session will load",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := app.openPrefsStore()
				if err != nil {
					return err
				}
				defer func() {
					_ = store.Close()
				}()

				serialized, err := storage.MarshalConfig(storage.YAMLCodec{}, store.Load(cmd.Context(), app.cfg.User))
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(serialized)
				return err
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Forget stored preferences and return to defaults",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := app.openPrefsStore()
				if err != nil {
					return err
				}
				defer func() {
					_ = store.Close()
				}()

				if err := store.Clear(cmd.Context(), app.cfg.User); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "preferences for %q reset\n", app.cfg.User)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Change one preference",
			Long: `Change one preference. Keys:

  global                     true|false
  auto_advance               true|false
  alert_mode                 vibration|sound|both|none
  <section>.enabled          true|false
  <section>.seconds          target in seconds (minimum 5)
  <section>.mode             countdown|stopwatch

Sections: total, exercise, exerciseRest, set, setRest.`,
			Args: cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				store, err := app.openPrefsStore()
				if err != nil {
					return err
				}
				defer func() {
					_ = store.Close()
				}()

				config := store.Load(cmd.Context(), app.cfg.User)
				if err := applySetting(&config, args[0], args[1]); err != nil {
					return err
				}
				return store.Save(cmd.Context(), app.cfg.User, config)
			},
		},
	)
	return prefs
}

func (app *cli) openPrefsStore() (*storage.PreferenceStore, error) {
	if storage.Kind(app.cfg.Store) == storage.KindFyne {
		return nil, fmt.Errorf("prefs: fyne store is only reachable from the desktop host, use --store yaml or sqlite")
	}
	return app.openStore(storage.OpenOptions{})
}

// applySetting changes one field of config. Values are validated here rather
// than clamped silently, so typos are reported.
func applySetting(config *model.TimerConfig, key, value string) error {
	switch key {
	case "global":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		config.GlobalEnabled = enabled
		return nil
	case "auto_advance":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		config.AutoAdvance = enabled
		return nil
	case "alert_mode":
		mode := model.AlertMode(value)
		if !mode.Valid() {
			return fmt.Errorf("%s: unknown alert mode %q", key, value)
		}
		config.AlertMode = mode
		return nil
	}

	name, field, found := strings.Cut(key, ".")
	id := model.SectionID(name)
	if !found || !id.Valid() {
		return fmt.Errorf("unknown preference %q", key)
	}
	section := config.Sections[id]
	switch field {
	case "enabled":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		section.Enabled = enabled
	case "seconds":
		seconds, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		if seconds < model.MinTargetSeconds {
			return fmt.Errorf("%s: must be at least %d", key, model.MinTargetSeconds)
		}
		section.DefaultSeconds = seconds
	case "mode":
		mode := model.TimerMode(value)
		if !mode.Valid() {
			return fmt.Errorf("%s: unknown mode %q", key, value)
		}
		section.Mode = mode
	default:
		return fmt.Errorf("unknown preference %q", key)
	}
	config.Sections[id] = section
	return nil
}
