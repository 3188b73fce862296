package generator

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/therealutkarshpriyadarshi/nexus/internal/config"
	"github.com/therealutkarshpriyadarshi/nexus/pkg/models"
)

type fakeModel struct {
	reply    string
	err      error
	calls    int
	messages []llms.MessageContent
}

func (m *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.calls++
	m.messages = messages
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: m.reply}}}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func humanPrompt(t *testing.T, messages []llms.MessageContent) string {
	t.Helper()
	require.Len(t, messages, 2)
	part, ok := messages[1].Parts[0].(llms.TextContent)
	require.True(t, ok)
	return part.Text
}

func TestGenerateMetadata(t *testing.T) {
	model := &fakeModel{reply: "```json\n{\"title\":\" Go in 60s \",\"description\":\"Fast tour\",\"tags\":[\"go\",\" \",\"golang\"]}\n```"}
	gen := NewMetadataGenerator(model, config.GeneratorConfig{}, nil)

	meta := gen.GenerateMetadata(context.Background(), "golang basics", true)
	require.NotNil(t, meta)
	assert.Equal(t, "Go in 60s", meta.Title)
	assert.Equal(t, "Fast tour", meta.Description)
	assert.Equal(t, []string{"go", "golang"}, meta.Tags)

	prompt := humanPrompt(t, model.messages)
	assert.Contains(t, prompt, "golang basics")
	assert.Contains(t, prompt, "Short-form Reel")
}

func TestGenerateMetadataLongForm(t *testing.T) {
	model := &fakeModel{reply: `{"title":"T","description":"D","tags":[]}`}
	gen := NewMetadataGenerator(model, config.GeneratorConfig{TextModel: "gpt-4o-mini"}, nil)

	require.NotNil(t, gen.GenerateMetadata(context.Background(), "cooking", false))
	prompt := humanPrompt(t, model.messages)
	assert.Contains(t, prompt, "Standard YouTube Video")
	assert.NotContains(t, prompt, "Reels")
}

func TestGenerateMetadataFailures(t *testing.T) {
	tests := []struct {
		name  string
		model *fakeModel
	}{
		{"model error", &fakeModel{err: errors.New("quota exceeded")}},
		{"empty reply", &fakeModel{reply: "  "}},
		{"not json", &fakeModel{reply: "Sure! Here is your title: Go"}},
		{"missing title", &fakeModel{reply: `{"description":"D","tags":["a"]}`}},
		{"blank description", &fakeModel{reply: `{"title":"T","description":"  "}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewMetadataGenerator(tt.model, config.GeneratorConfig{}, nil)
			assert.Nil(t, gen.GenerateMetadata(context.Background(), "topic", false))
		})
	}
}

func TestMetadataBreakerOpens(t *testing.T) {
	model := &fakeModel{err: errors.New("service unavailable")}
	gen := NewMetadataGenerator(model, config.GeneratorConfig{}, nil)

	for i := 0; i < breakerFailureThreshold+3; i++ {
		assert.Nil(t, gen.GenerateMetadata(context.Background(), "topic", false))
	}
	assert.Equal(t, breakerFailureThreshold, model.calls)
}

func pngPayload() string {
	return base64.StdEncoding.EncodeToString([]byte("\x89PNG\r\n\x1a\nfake"))
}

type imageServer struct {
	*httptest.Server
	calls   atomic.Int32
	prompts chan string
}

// newImageServer answers every request with an image unless the prompt
// contains failOn
func newImageServer(t *testing.T, failOn string) *imageServer {
	t.Helper()
	s := &imageServer{prompts: make(chan string, 16)}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		assert.Equal(t, "/images/generations", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req imageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.prompts <- req.Prompt

		w.Header().Set("Content-Type", "application/json")
		if failOn != "" && strings.Contains(req.Prompt, failOn) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"safety system rejected prompt"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"data":[{"b64_json":"` + pngPayload() + `"}]}`))
	}))
	t.Cleanup(s.Close)
	return s
}

func newTestThumbnailGenerator(url string) *ThumbnailGenerator {
	return NewThumbnailGenerator(config.GeneratorConfig{
		ImageURL:   url,
		ImageToken: "secret",
		Timeout:    5 * time.Second,
	}, nil)
}

func TestGenerateThumbnail(t *testing.T) {
	server := newImageServer(t, "")
	gen := newTestThumbnailGenerator(server.URL)

	uri := gen.GenerateThumbnail(context.Background(), "neon city", models.AspectRatioPortrait)
	assert.Equal(t, "data:image/png;base64,"+pngPayload(), uri)

	prompt := <-server.prompts
	assert.Contains(t, prompt, "vertical portrait")
	assert.Contains(t, prompt, "neon city")
}

func TestGenerateThumbnailFailures(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		server := newImageServer(t, "neon")
		gen := newTestThumbnailGenerator(server.URL)
		assert.Empty(t, gen.GenerateThumbnail(context.Background(), "neon city", models.AspectRatioLandscape))
	})

	t.Run("no image in response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"data":[]}`))
		}))
		defer server.Close()

		gen := newTestThumbnailGenerator(server.URL)
		assert.Empty(t, gen.GenerateThumbnail(context.Background(), "x", models.AspectRatioLandscape))
	})

	t.Run("unreachable service", func(t *testing.T) {
		gen := newTestThumbnailGenerator("http://127.0.0.1:1")
		assert.Empty(t, gen.GenerateThumbnail(context.Background(), "x", models.AspectRatioLandscape))
	})
}

func TestGenerateThumbnailVariants(t *testing.T) {
	server := newImageServer(t, "Minimalist")
	gen := newTestThumbnailGenerator(server.URL)

	variants := gen.GenerateThumbnailVariants(context.Background(), "rocket launch", models.AspectRatioLandscape)

	require.Len(t, variants, 3)
	assert.NotEmpty(t, variants[0])
	assert.Empty(t, variants[1])
	assert.NotEmpty(t, variants[2])
	assert.Equal(t, int32(3), server.calls.Load())
	assert.Len(t, Successful(variants), 2)
}

func TestThumbnailBreakerOpens(t *testing.T) {
	server := newImageServer(t, "neon")
	gen := newTestThumbnailGenerator(server.URL)

	for i := 0; i < breakerFailureThreshold+3; i++ {
		assert.Empty(t, gen.GenerateThumbnail(context.Background(), "neon city", models.AspectRatioLandscape))
	}
	assert.Equal(t, int32(breakerFailureThreshold), server.calls.Load())
}

func TestImageSize(t *testing.T) {
	assert.Equal(t, "1024x1792", imageSize(models.AspectRatioPortrait))
	assert.Equal(t, "1792x1024", imageSize(models.AspectRatioLandscape))
	assert.Equal(t, "1024x1024", imageSize("1:1"))
}
