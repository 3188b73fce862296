package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/therealutkarshpriyadarshi/nexus/internal/config"
)

// BadgerBackend stores blobs in an embedded BadgerDB, the local
// counterpart of browser storage.
type BadgerBackend struct {
	db     *badger.DB
	prefix string
}

// NewBadgerBackend opens (or creates) the database at cfg.Path, or an
// in-memory database when cfg.InMemory is set.
func NewBadgerBackend(cfg config.BadgerConfig, prefix string) (*BadgerBackend, error) {
	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}

	return &BadgerBackend{db: db, prefix: prefix}, nil
}

func (b *BadgerBackend) key(key string) []byte {
	return []byte(b.prefix + key)
}

// Get retrieves a blob
func (b *BadgerBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(b.key(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrKeyNotFound
		}
		if err != nil {
			return fmt.Errorf("get %s: %w", key, err)
		}

		data, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Set replaces a blob
func (b *BadgerBackend) Set(ctx context.Context, key string, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(b.key(key), value); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
		return nil
	})
}

// Delete removes a blob
func (b *BadgerBackend) Delete(ctx context.Context, key string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(b.key(key))
	})
}

// Ping reports whether the database is open
func (b *BadgerBackend) Ping(ctx context.Context) error {
	if b.db.IsClosed() {
		return errors.New("badger database is closed")
	}
	return nil
}

// Close closes the database
func (b *BadgerBackend) Close() error {
	return b.db.Close()
}
