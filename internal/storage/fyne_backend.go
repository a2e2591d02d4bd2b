package storage

import (
	"context"

	"fyne.io/fyne/v2"
)

// FyneBackend stores payloads in the application's fyne preferences.
type FyneBackend struct {
	preferences fyne.Preferences
}

// NewFyneBackend wraps app preferences, usually fyne.App.Preferences().
func NewFyneBackend(preferences fyne.Preferences) *FyneBackend {
	return &FyneBackend{preferences: preferences}
}

func (backend *FyneBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	value := backend.preferences.String(key)
	if value == "" {
		return nil, false, nil
	}
	return []byte(value), true, nil
}

func (backend *FyneBackend) Put(_ context.Context, key string, payload []byte) error {
	backend.preferences.SetString(key, string(payload))
	return nil
}

func (backend *FyneBackend) Delete(_ context.Context, key string) error {
	backend.preferences.RemoveValue(key)
	return nil
}
