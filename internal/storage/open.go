package storage

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"go.uber.org/zap"
)

// Kind names a preference backend.
type Kind string

const (
	KindYAML   Kind = "yaml"
	KindSQLite Kind = "sqlite"
	KindFyne   Kind = "fyne"
	KindMemory Kind = "memory"
)

// OpenOptions selects and locates a backend.
type OpenOptions struct {
	Kind    Kind
	DataDir string
	// Preferences backs KindFyne; without it the store falls back to YAML.
	Preferences fyne.Preferences
	Logger      *zap.Logger
}

// Open builds a PreferenceStore for options.Kind.
func Open(options OpenOptions) (*PreferenceStore, error) {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	switch options.Kind {
	case KindSQLite:
		backend, err := OpenSQLite(filepath.Join(options.DataDir, "preferences.db"))
		if err != nil {
			return nil, err
		}
		return NewPreferenceStore(backend, JSONCodec{}, logger), nil
	case KindFyne:
		if options.Preferences != nil {
			return NewPreferenceStore(NewFyneBackend(options.Preferences), YAMLCodec{}, logger), nil
		}
		logger.Info("fyne preferences unavailable, using yaml files")
		fallthrough
	case KindYAML, "":
		return NewPreferenceStore(NewFileBackend(filepath.Join(options.DataDir, "users"), ".yaml"), YAMLCodec{}, logger), nil
	case KindMemory:
		return NewPreferenceStore(NewMemoryBackend(), YAMLCodec{}, logger), nil
	default:
		return nil, fmt.Errorf("unknown preference store %q", options.Kind)
	}
}
