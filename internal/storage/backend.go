package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrEmptyUserKey is returned when writing a record without a user key.
var ErrEmptyUserKey = errors.New("empty user key")

// Backend stores opaque preference payloads by key.
type Backend interface {
	// Get returns the payload and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, payload []byte) error
	// Delete removes the payload. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// MemoryBackend keeps payloads in process memory.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

func (backend *MemoryBackend) Get(_ context.Context, key string) ([]byte, bool, error) {
	backend.mu.RLock()
	defer backend.mu.RUnlock()
	payload, ok := backend.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), payload...), true, nil
}

func (backend *MemoryBackend) Put(_ context.Context, key string, payload []byte) error {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	backend.values[key] = append([]byte(nil), payload...)
	return nil
}

func (backend *MemoryBackend) Delete(_ context.Context, key string) error {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	delete(backend.values, key)
	return nil
}
