package storage

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"fitbuddy/internal/core/model"
)

const keyPrefix = "timer_config."

// PreferenceStore loads and saves one timer configuration per user key.
type PreferenceStore struct {
	backend Backend
	codec   Codec
	logger  *zap.Logger
}

// NewPreferenceStore creates a store over backend. A nil codec means YAML.
func NewPreferenceStore(backend Backend, codec Codec, logger *zap.Logger) *PreferenceStore {
	if codec == nil {
		codec = YAMLCodec{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PreferenceStore{backend: backend, codec: codec, logger: logger}
}

// Load returns the stored configuration merged onto defaults. Missing,
// unreadable or corrupt records yield defaults; Load never fails.
func (store *PreferenceStore) Load(ctx context.Context, userKey string) model.TimerConfig {
	config := model.DefaultTimerConfig()
	if strings.TrimSpace(userKey) == "" {
		return config
	}

	payload, ok, err := store.backend.Get(ctx, storageKey(userKey))
	if err != nil {
		store.logger.Warn("load preferences failed, using defaults", zap.String("user", userKey), zap.Error(err))
		return config
	}
	if !ok {
		return config
	}

	var stored record
	if err := store.codec.unmarshal(payload, &stored); err != nil {
		store.logger.Warn("corrupt preferences, using defaults", zap.String("user", userKey), zap.Error(err))
		return config
	}
	applyRecord(&config, stored)
	return config.Normalized()
}

// Save writes the full configuration for userKey.
func (store *PreferenceStore) Save(ctx context.Context, userKey string, config model.TimerConfig) error {
	if strings.TrimSpace(userKey) == "" {
		return ErrEmptyUserKey
	}
	payload, err := store.codec.marshal(recordFromConfig(config))
	if err != nil {
		return err
	}
	if err := store.backend.Put(ctx, storageKey(userKey), payload); err != nil {
		return fmt.Errorf("save preferences for %q: %w", userKey, err)
	}
	store.logger.Debug("preferences saved", zap.String("user", userKey), zap.String("codec", store.codec.Name()))
	return nil
}

// Clear removes the record for userKey so the next Load yields defaults.
func (store *PreferenceStore) Clear(ctx context.Context, userKey string) error {
	if strings.TrimSpace(userKey) == "" {
		return ErrEmptyUserKey
	}
	if err := store.backend.Delete(ctx, storageKey(userKey)); err != nil {
		return fmt.Errorf("clear preferences for %q: %w", userKey, err)
	}
	return nil
}

// Close releases the backend when it holds resources.
func (store *PreferenceStore) Close() error {
	if closer, ok := store.backend.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func storageKey(userKey string) string {
	return keyPrefix + userKey
}
