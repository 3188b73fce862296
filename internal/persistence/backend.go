// Package persistence saves the store's collections as independently keyed
// blobs in a key-value backend and loads them back at startup.
package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/therealutkarshpriyadarshi/nexus/internal/config"
)

// ErrKeyNotFound is returned by a Backend when a key has never been written
var ErrKeyNotFound = errors.New("key not found")

// Backend is a key-value byte store. Writes replace the whole value.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Backend names accepted in configuration
const (
	BackendRedis  = "redis"
	BackendBadger = "badger"
)

// NewBackend creates the backend selected by cfg.Persistence.Backend
func NewBackend(cfg *config.Config) (Backend, error) {
	switch cfg.Persistence.Backend {
	case BackendRedis:
		return NewRedisBackend(cfg.Redis, cfg.Persistence.KeyPrefix)
	case BackendBadger, "":
		return NewBadgerBackend(cfg.Badger, cfg.Persistence.KeyPrefix)
	default:
		return nil, fmt.Errorf("unknown persistence backend %q", cfg.Persistence.Backend)
	}
}
