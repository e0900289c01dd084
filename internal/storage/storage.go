package storage

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"
)

// Keys of the persisted client state.
const (
	FavoritesKey   = "BND_favorites"
	UserKey        = "BND_user"
	AccessTokenKey = "bazeni.accessToken"

	probeKey = "localStorage"
)

// ErrNotFound is returned by a Backend when a key is absent
var ErrNotFound = errors.New("key not found")

// Backend is a persistent string key-value store
type Backend interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}

// Adapter stores JSON values in a Backend. When the backend fails the
// support probe at construction every operation is a no-op.
type Adapter struct {
	backend   Backend
	supported bool
	logger    zerolog.Logger
}

// New creates an adapter and probes the backend once with a write and a delete
func New(backend Backend, logger zerolog.Logger) *Adapter {
	a := &Adapter{
		backend: backend,
		logger:  logger,
	}
	a.supported = a.probe()
	if !a.supported {
		logger.Warn().Msg("Persistent storage is not supported, state will not survive restarts")
	}
	return a
}

func (a *Adapter) probe() bool {
	if a.backend == nil {
		return false
	}
	if err := a.backend.Set(probeKey, probeKey); err != nil {
		return false
	}
	if err := a.backend.Delete(probeKey); err != nil {
		return false
	}
	return true
}

// Supported reports whether the backing store passed the probe
func (a *Adapter) Supported() bool {
	return a.supported
}

// Get decodes the value stored under key into dst. Text that is not valid
// JSON is handed back verbatim when dst is a *string. It reports whether
// dst was filled.
func (a *Adapter) Get(key string, dst any) bool {
	if !a.supported {
		return false
	}

	raw, err := a.backend.Get(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			a.logger.Error().Err(err).Str("key", key).Msg("Failed to read from storage")
		}
		return false
	}

	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		if s, ok := dst.(*string); ok {
			*s = raw
			return true
		}
		a.logger.Warn().Err(err).Str("key", key).Msg("Stored value has unexpected shape")
		return false
	}
	return true
}

// Set encodes value as JSON and stores it under key. It reports whether the
// value reads back from the store.
func (a *Adapter) Set(key string, value any) bool {
	if !a.supported {
		return false
	}

	data, err := json.Marshal(value)
	if err != nil {
		a.logger.Error().Err(err).Str("key", key).Msg("Failed to encode value for storage")
		return false
	}

	if err := a.backend.Set(key, string(data)); err != nil {
		a.logger.Error().Err(err).Str("key", key).Msg("Failed to write to storage")
		return false
	}

	var stored json.RawMessage
	return a.Get(key, &stored)
}

// Remove deletes key
func (a *Adapter) Remove(key string) {
	if !a.supported {
		return
	}
	if err := a.backend.Delete(key); err != nil && !errors.Is(err, ErrNotFound) {
		a.logger.Error().Err(err).Str("key", key).Msg("Failed to remove from storage")
	}
}

// Close closes the backing store
func (a *Adapter) Close() error {
	if a.backend == nil {
		return nil
	}
	return a.backend.Close()
}
