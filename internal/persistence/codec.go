package persistence

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// SchemaVersion is the version tag written with every blob
const SchemaVersion = 1

var (
	// ErrUnsupportedVersion is returned for blobs written by a newer schema
	ErrUnsupportedVersion = errors.New("unsupported schema version")
	// ErrMalformed is returned for blobs that cannot be decoded
	ErrMalformed = errors.New("malformed blob")
)

type envelope struct {
	Version int             `json:"v"`
	Data    json.RawMessage `json:"data"`
}

// Encode wraps value in a versioned envelope
func Encode(value interface{}) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal value: %w", err)
	}

	return json.Marshal(envelope{Version: SchemaVersion, Data: data})
}

// Decode unwraps a versioned envelope into dst. Blobs without a version
// tag are legacy payloads and are decoded as-is.
func Decode(raw []byte, dst interface{}) error {
	trimmed := bytes.TrimSpace(raw)

	if len(trimmed) > 0 && trimmed[0] == '{' {
		var env envelope
		if err := json.Unmarshal(trimmed, &env); err == nil && env.Version > 0 {
			if env.Version > SchemaVersion {
				return fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
			}
			if err := json.Unmarshal(env.Data, dst); err != nil {
				return fmt.Errorf("%w: %v", ErrMalformed, err)
			}
			return nil
		}
	}

	if err := json.Unmarshal(trimmed, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}
