package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fitbuddy/internal/core/model"
)

type backendCase struct {
	name  string
	codec Codec
	open  func(t *testing.T) Backend
}

func backendCases() []backendCase {
	return []backendCase{
		{"memory", YAMLCodec{}, func(*testing.T) Backend { return NewMemoryBackend() }},
		{"file", YAMLCodec{}, func(t *testing.T) Backend { return NewFileBackend(t.TempDir(), ".yaml") }},
		{"sqlite", JSONCodec{}, func(t *testing.T) Backend {
			backend, err := OpenSQLite(filepath.Join(t.TempDir(), "preferences.db"))
			require.NoError(t, err)
			t.Cleanup(func() { _ = backend.Close() })
			return backend
		}},
		{"fyne", YAMLCodec{}, func(t *testing.T) Backend { return NewFyneBackend(test.NewTempApp(t).Preferences()) }},
	}
}

func eachBackend(t *testing.T, fn func(t *testing.T, store *PreferenceStore, backend Backend, codec Codec)) {
	for _, tc := range backendCases() {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			backend := tc.open(t)
			fn(t, NewPreferenceStore(backend, tc.codec, zap.NewNop()), backend, tc.codec)
		})
	}
}

func TestLoadEmptyReturnsDefaults(t *testing.T) {
	eachBackend(t, func(t *testing.T, store *PreferenceStore, _ Backend, _ Codec) {
		config := store.Load(context.Background(), "alice")
		if diff := cmp.Diff(model.DefaultTimerConfig(), config); diff != "" {
			t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestSaveLoadRoundTrip(t *testing.T) {
	eachBackend(t, func(t *testing.T, store *PreferenceStore, _ Backend, _ Codec) {
		ctx := context.Background()
		config := model.DefaultTimerConfig()
		config.GlobalEnabled = false
		config.AlertMode = model.AlertSound
		config.Sections[model.SectionSetRest] = model.SectionConfig{Enabled: true, DefaultSeconds: 45, Mode: model.ModeCountdown}
		config.Sections[model.SectionSet] = model.SectionConfig{Enabled: false, DefaultSeconds: 30, Mode: model.ModeCountdown}

		require.NoError(t, store.Save(ctx, "alice", config))
		loaded := store.Load(ctx, "alice")
		if diff := cmp.Diff(config, loaded); diff != "" {
			t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
		}

		require.NoError(t, store.Save(ctx, "alice", model.DefaultTimerConfig()))
		assert.Empty(t, cmp.Diff(model.DefaultTimerConfig(), store.Load(ctx, "alice")))
	})
}

func TestUsersAreIsolated(t *testing.T) {
	eachBackend(t, func(t *testing.T, store *PreferenceStore, _ Backend, _ Codec) {
		ctx := context.Background()
		config := model.DefaultTimerConfig()
		config.AlertMode = model.AlertNone
		require.NoError(t, store.Save(ctx, "alice", config))

		assert.Equal(t, model.AlertNone, store.Load(ctx, "alice").AlertMode)
		assert.Equal(t, model.AlertBoth, store.Load(ctx, "bob").AlertMode)
	})
}

func TestClearRestoresDefaults(t *testing.T) {
	eachBackend(t, func(t *testing.T, store *PreferenceStore, _ Backend, _ Codec) {
		ctx := context.Background()
		config := model.DefaultTimerConfig()
		config.AutoAdvance = false
		require.NoError(t, store.Save(ctx, "alice", config))

		require.NoError(t, store.Clear(ctx, "alice"))
		assert.True(t, store.Load(ctx, "alice").AutoAdvance)
		require.NoError(t, store.Clear(ctx, "alice"))
	})
}

func TestCorruptRecordFallsBackToDefaults(t *testing.T) {
	eachBackend(t, func(t *testing.T, store *PreferenceStore, backend Backend, _ Codec) {
		ctx := context.Background()
		require.NoError(t, backend.Put(ctx, storageKey("alice"), []byte("{")))
		assert.Empty(t, cmp.Diff(model.DefaultTimerConfig(), store.Load(ctx, "alice")))
	})
}

func TestEmptyUserKey(t *testing.T) {
	store := NewPreferenceStore(NewMemoryBackend(), nil, nil)
	ctx := context.Background()

	assert.ErrorIs(t, store.Save(ctx, "", model.DefaultTimerConfig()), ErrEmptyUserKey)
	assert.ErrorIs(t, store.Save(ctx, "  ", model.DefaultTimerConfig()), ErrEmptyUserKey)
	assert.ErrorIs(t, store.Clear(ctx, ""), ErrEmptyUserKey)
	assert.Empty(t, cmp.Diff(model.DefaultTimerConfig(), store.Load(ctx, "")))
}

func TestPartialRecordMergesOntoDefaults(t *testing.T) {
	payloads := map[string]struct {
		codec   Codec
		payload string
	}{
		"yaml": {YAMLCodec{}, "sections:\n  total:\n    enabled: false\n"},
		"json": {JSONCodec{}, `{"sections":{"total":{"enabled":false}}}`},
	}
	for name, tc := range payloads {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			backend := NewMemoryBackend()
			require.NoError(t, backend.Put(ctx, storageKey("alice"), []byte(tc.payload)))

			config := NewPreferenceStore(backend, tc.codec, nil).Load(ctx, "alice")

			want := model.DefaultTimerConfig()
			want.Sections[model.SectionTotal] = model.SectionConfig{Enabled: false, DefaultSeconds: 3600, Mode: model.ModeStopwatch}
			if diff := cmp.Diff(want, config); diff != "" {
				t.Fatalf("partial merge mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestInvalidStoredValuesAreRepaired(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	payload := "alert_mode: loud\nsections:\n  setRest:\n    default_seconds: 2\n    mode: backwards\n  warmup:\n    enabled: true\n"
	require.NoError(t, backend.Put(ctx, storageKey("alice"), []byte(payload)))

	config := NewPreferenceStore(backend, YAMLCodec{}, nil).Load(ctx, "alice")
	assert.Equal(t, model.AlertBoth, config.AlertMode)
	assert.Equal(t, model.SectionConfig{Enabled: true, DefaultSeconds: 5, Mode: model.ModeCountdown}, config.Sections[model.SectionSetRest])
	assert.Len(t, config.Sections, len(model.SectionIDs))
}

func TestFileBackendWritesReadableYAML(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	backend := NewFileBackend(dir, ".yaml")
	store := NewPreferenceStore(backend, YAMLCodec{}, nil)

	require.NoError(t, store.Save(ctx, "alice/../bob", model.DefaultTimerConfig()))

	path := backend.Path(storageKey("alice/../bob"))
	assert.Equal(t, dir, filepath.Dir(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "alert_mode: both")
	assert.Contains(t, string(data), "setRest:")
}

func TestFilePathsIgnoreCaseOnlyDifferences(t *testing.T) {
	backend := NewFileBackend(t.TempDir(), ".yaml")
	seen := map[string]string{}
	for _, user := range []string{"aa", "aG", "Alice", "alice", "ALICE"} {
		name := strings.ToLower(filepath.Base(backend.Path(storageKey(user))))
		other, clash := seen[name]
		assert.False(t, clash, "%q and %q share %s", user, other, name)
		seen[name] = user
	}
}

func TestOpenKinds(t *testing.T) {
	dir := t.TempDir()
	for _, kind := range []Kind{KindYAML, KindSQLite, KindFyne, KindMemory} {
		store, err := Open(OpenOptions{Kind: kind, DataDir: dir})
		require.NoError(t, err, "kind %s", kind)
		require.NoError(t, store.Save(context.Background(), "alice", model.DefaultTimerConfig()))
		require.NoError(t, store.Close())
	}

	_, err := Open(OpenOptions{Kind: "etcd", DataDir: dir})
	assert.Error(t, err)
}
