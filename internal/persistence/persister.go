package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/therealutkarshpriyadarshi/nexus/internal/logging"
	"github.com/therealutkarshpriyadarshi/nexus/internal/metrics"
)

// Persister encodes collections and moves them to and from a Backend
type Persister struct {
	backend Backend
	logger  *logging.Logger
}

// NewPersister creates a persister over backend
func NewPersister(backend Backend, logger *logging.Logger) *Persister {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Persister{backend: backend, logger: logger}
}

// Load decodes the blob stored under key into dst. found is false when
// the key was never written, in which case dst is left untouched.
func (p *Persister) Load(ctx context.Context, key string, dst interface{}) (found bool, err error) {
	start := time.Now()
	raw, err := p.backend.Get(ctx, key)
	size := len(raw)
	defer func() {
		p.observe("load", key, size, start, err)
	}()

	if errors.Is(err, ErrKeyNotFound) {
		err = nil
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err = Decode(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

// Save encodes value and replaces the blob stored under key
func (p *Persister) Save(ctx context.Context, key string, value interface{}) (err error) {
	start := time.Now()
	size := 0
	defer func() {
		p.observe("save", key, size, start, err)
	}()

	data, err := Encode(value)
	if err != nil {
		return err
	}
	size = len(data)

	return p.backend.Set(ctx, key, data)
}

// Close closes the underlying backend
func (p *Persister) Close() error {
	return p.backend.Close()
}

func (p *Persister) observe(operation, key string, size int, start time.Time, err error) {
	duration := time.Since(start)
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}

	metrics.RecordPersistOperation(operation, key, status, duration.Seconds(), size)
	p.logger.LogPersistOperation(operation, key, size, duration, err)
}
