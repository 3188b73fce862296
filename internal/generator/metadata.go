// Package generator calls external AI services for video metadata and
// thumbnails. Failures never surface as errors: callers receive an empty
// result and may offer a retry.
package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"golang.org/x/sync/semaphore"

	"github.com/therealutkarshpriyadarshi/nexus/internal/config"
	"github.com/therealutkarshpriyadarshi/nexus/internal/logging"
	"github.com/therealutkarshpriyadarshi/nexus/internal/metrics"
	"github.com/therealutkarshpriyadarshi/nexus/internal/tracing"
)

const (
	kindMetadata  = "metadata"
	kindThumbnail = "thumbnail"
)

const (
	breakerFailureThreshold = 5
	breakerOpenTimeout      = 30 * time.Second
)

var errEmptyResponse = errors.New("empty model response")

// newBreaker trips after breakerFailureThreshold consecutive failures
func newBreaker[T any](name string, logger *logging.Logger) *gobreaker.CircuitBreaker[T] {
	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:    name,
		Timeout: breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(map[string]interface{}{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Generator circuit breaker changed state")
		},
	})
}

// Metadata is a generated title, description and tag set
type Metadata struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// NewTextModel creates the OpenAI-compatible chat model used for metadata
func NewTextModel(cfg config.GeneratorConfig) (llms.Model, error) {
	opts := []openai.Option{
		openai.WithModel(cfg.TextModel),
		openai.WithToken(cfg.Token),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}

	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create text model: %w", err)
	}
	return model, nil
}

// MetadataGenerator asks a language model for video metadata
type MetadataGenerator struct {
	model     llms.Model
	textModel string
	timeout   time.Duration
	sem       *semaphore.Weighted
	breaker   *gobreaker.CircuitBreaker[*Metadata]
	logger    *logging.Logger
}

// NewMetadataGenerator creates a generator over model
func NewMetadataGenerator(model llms.Model, cfg config.GeneratorConfig, logger *logging.Logger) *MetadataGenerator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &MetadataGenerator{
		model:     model,
		textModel: cfg.TextModel,
		timeout:   cfg.Timeout,
		sem:       semaphore.NewWeighted(maxConcurrent(cfg)),
		breaker:   newBreaker[*Metadata](kindMetadata, logger),
		logger:    logger,
	}
}

const metadataSystemPrompt = `You write metadata for a video platform. Reply with a single JSON object ` +
	`{"title": string, "description": string, "tags": [string]} and nothing else.`

func metadataPrompt(topic string, isShortForm bool) string {
	format := "Standard YouTube Video"
	hook := ""
	if isShortForm {
		format = "Short-form Reel/Short (under 60s)"
		hook = " For Reels, prioritize high-energy, vertical-friendly language and viral hooks."
	}
	return fmt.Sprintf("Generate a catchy %s title, a detailed SEO description, and a list of 10-15 "+
		"highly relevant SEO tags for a video about: %s. Focus on trending keywords that increase discoverability.%s",
		format, topic, hook)
}

// GenerateMetadata returns generated metadata for topic, or nil when the
// model fails or replies with something unusable
func (g *MetadataGenerator) GenerateMetadata(ctx context.Context, topic string, isShortForm bool) *Metadata {
	span, ctx := tracing.StartSpan(ctx, "generator.metadata")
	defer tracing.FinishSpan(span)
	tracing.SetTag(span, "short_form", isShortForm)

	start := time.Now()
	meta, err := g.breaker.Execute(func() (*Metadata, error) {
		return g.generate(ctx, topic, isShortForm)
	})
	observe(g.logger, kindMetadata, start, err)
	if err != nil {
		tracing.LogError(span, err)
		return nil
	}
	return meta
}

func (g *MetadataGenerator) generate(ctx context.Context, topic string, isShortForm bool) (*Metadata, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	if err := g.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer g.sem.Release(1)

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, metadataSystemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, metadataPrompt(topic, isShortForm)),
	}

	opts := []llms.CallOption{llms.WithJSONMode()}
	if g.textModel != "" {
		opts = append(opts, llms.WithModel(g.textModel))
	}

	resp, err := g.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		return nil, errEmptyResponse
	}

	return parseMetadata(resp.Choices[0].Content)
}

// parseMetadata decodes a model reply, tolerating markdown code fences
func parseMetadata(content string) (*Metadata, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errEmptyResponse
	}

	var meta Metadata
	if err := json.Unmarshal([]byte(content), &meta); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}

	meta.Title = strings.TrimSpace(meta.Title)
	meta.Description = strings.TrimSpace(meta.Description)
	if meta.Title == "" || meta.Description == "" {
		return nil, errors.New("metadata is missing title or description")
	}

	tags := make([]string, 0, len(meta.Tags))
	for _, tag := range meta.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	meta.Tags = tags

	return &meta, nil
}

func maxConcurrent(cfg config.GeneratorConfig) int64 {
	if cfg.MaxConcurrent > 0 {
		return int64(cfg.MaxConcurrent)
	}
	return 3
}

func observe(logger *logging.Logger, kind string, start time.Time, err error) {
	duration := time.Since(start)
	status := metrics.StatusSuccess
	if err != nil {
		status = metrics.StatusError
	}
	metrics.RecordGeneration(kind, status, duration.Seconds())
	logger.LogGeneration(kind, duration, err)
}
