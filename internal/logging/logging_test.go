package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "JSON format to stdout",
			config: Config{
				Level:  "info",
				Format: "json",
				Output: "stdout",
			},
			wantErr: false,
		},
		{
			name: "Console format to stderr",
			config: Config{
				Level:  "debug",
				Format: "console",
				Output: "stderr",
			},
			wantErr: false,
		},
		{
			name: "Invalid log level defaults to info",
			config: Config{
				Level:  "invalid",
				Format: "json",
				Output: "stdout",
			},
			wantErr: false,
		},
		{
			name: "Unwritable file path",
			config: Config{
				Level:  "info",
				Format: "json",
				Output: "/nonexistent-dir/nexus.log",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewLogger() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && logger == nil {
				t.Error("Expected non-nil logger")
			}
		})
	}
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to decode log line %q: %v", buf.String(), err)
	}
	return entry
}

func TestLogStoreEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, Config{Level: "debug", Format: "json"})

	logger.WithUserID("u1").LogStoreEvent("toggle_like", "rate_limited", map[string]interface{}{
		"video_id": "v1",
	})

	entry := decodeLine(t, &buf)
	if entry["level"] != "info" {
		t.Errorf("Expected rejected operation at info, got %v", entry["level"])
	}
	if entry["operation"] != "toggle_like" || entry["status"] != "rate_limited" {
		t.Errorf("Unexpected fields: %v", entry)
	}
	if entry["user_id"] != "u1" || entry["video_id"] != "v1" {
		t.Errorf("Expected user and video ids, got %v", entry)
	}
}

func TestLogStoreEventSuccessIsDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, Config{Level: "info", Format: "json"})

	logger.LogStoreEvent("add_video", "success", nil)

	if buf.Len() != 0 {
		t.Errorf("Expected debug event to be filtered at info level, got %q", buf.String())
	}
}

func TestLogPersistOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, Config{Level: "info", Format: "json"})

	logger.LogPersistOperation("save", "nexus_videos", 512, 3*time.Millisecond, errors.New("connection refused"))

	entry := decodeLine(t, &buf)
	if entry["level"] != "error" {
		t.Errorf("Expected error level, got %v", entry["level"])
	}
	if entry["key"] != "nexus_videos" {
		t.Errorf("Expected key field, got %v", entry["key"])
	}
	if entry["error"] != "connection refused" {
		t.Errorf("Expected error field, got %v", entry["error"])
	}
}

func TestLogGeneration(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, Config{Level: "info", Format: "json"})

	logger.LogGeneration("thumbnail", 2*time.Second, nil)

	entry := decodeLine(t, &buf)
	if entry["kind"] != "thumbnail" || entry["level"] != "info" {
		t.Errorf("Unexpected entry: %v", entry)
	}
}

func TestLoggerWithFields(t *testing.T) {
	logger, err := NewLogger(Config{
		Level:  "info",
		Format: "json",
		Output: "stdout",
	})
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}

	// Test WithField
	fieldLogger := logger.WithField("key", "value")
	if fieldLogger == nil {
		t.Error("Expected non-nil logger from WithField")
	}

	// Test WithFields
	fieldsLogger := logger.WithFields(map[string]interface{}{
		"key1": "value1",
		"key2": 123,
	})
	if fieldsLogger == nil {
		t.Error("Expected non-nil logger from WithFields")
	}

	if logger.WithVideoID("video-789") == nil {
		t.Error("Expected non-nil logger from WithVideoID")
	}

	if logger.WithKey("nexus_user") == nil {
		t.Error("Expected non-nil logger from WithKey")
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Info("discarded")
	logger.LogStoreEvent("login", "invalid_credentials", nil)
	// Should not panic
}

func BenchmarkLogStoreEvent(b *testing.B) {
	var buf bytes.Buffer
	logger := NewWriterLogger(&buf, Config{Level: "info", Format: "json"})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buf.Reset()
		logger.LogStoreEvent("toggle_like", "rate_limited", map[string]interface{}{
			"video_id": "v1",
		})
	}
}
