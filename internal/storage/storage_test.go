package storage

import (
	"errors"
	"testing"
)

func TestGetContentType(t *testing.T) {
	tests := []struct {
		filePath string
		wantType string
	}{
		{"thumbnails/abc.png", "image/png"},
		{"thumbnails/abc.JPG", "image/jpeg"},
		{"thumbnails/abc.jpeg", "image/jpeg"},
		{"thumbnails/abc.webp", "image/webp"},
		{"clip.gif", "image/gif"},
		{"video.mp4", "video/mp4"},
		{"video.mov", "video/quicktime"},
		{"video.webm", "video/webm"},
		{"unknown.xyz", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.filePath, func(t *testing.T) {
			contentType := getContentType(tt.filePath)
			if contentType != tt.wantType {
				t.Errorf("getContentType(%q) = %q, want %q", tt.filePath, contentType, tt.wantType)
			}
		})
	}
}

func TestDecodeDataURI(t *testing.T) {
	contentType, payload, err := decodeDataURI("data:image/png;base64,aGVsbG8=")
	if err != nil {
		t.Fatalf("decodeDataURI() error = %v", err)
	}
	if contentType != "image/png" {
		t.Errorf("contentType = %q, want image/png", contentType)
	}
	if string(payload) != "hello" {
		t.Errorf("payload = %q, want hello", payload)
	}

	contentType, _, err = decodeDataURI("data:;base64,aGVsbG8=")
	if err != nil || contentType != "application/octet-stream" {
		t.Errorf("untyped data URI: contentType = %q, err = %v", contentType, err)
	}
}

func TestDecodeDataURIRejects(t *testing.T) {
	tests := map[string]string{
		"plain URL":    "https://picsum.photos/seed/1/800/450",
		"no payload":   "data:image/png;base64",
		"not base64":   "data:text/plain,hello",
		"bad encoding": "data:image/png;base64,!!!",
		"empty":        "data:image/png;base64,",
	}

	for name, uri := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := decodeDataURI(uri)
			if !errors.Is(err, ErrInvalidDataURI) {
				t.Errorf("decodeDataURI(%q) error = %v, want ErrInvalidDataURI", uri, err)
			}
		})
	}
}

func TestExtensionFor(t *testing.T) {
	if got := extensionFor("image/png"); got != ".png" {
		t.Errorf("extensionFor(image/png) = %q", got)
	}
	if got := extensionFor("application/zip"); got != "" {
		t.Errorf("extensionFor(application/zip) = %q, want empty", got)
	}
}
