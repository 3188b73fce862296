package generator

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/therealutkarshpriyadarshi/nexus/internal/config"
	"github.com/therealutkarshpriyadarshi/nexus/internal/logging"
	"github.com/therealutkarshpriyadarshi/nexus/internal/tracing"
	"github.com/therealutkarshpriyadarshi/nexus/pkg/models"
)

// variantStyles are appended to the subject to produce distinct thumbnails
var variantStyles = []string{
	"Action shot, high contrast",
	"Minimalist, clean design",
	"Dramatic lighting, epic close up",
}

type imageRequest struct {
	Model          string `json:"model,omitempty"`
	Prompt         string `json:"prompt"`
	Size           string `json:"size"`
	ResponseFormat string `json:"response_format"`
}

type imageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ThumbnailGenerator requests images from an OpenAI-compatible image
// endpoint and returns them as data URIs
type ThumbnailGenerator struct {
	client  *resty.Client
	sem     *semaphore.Weighted
	breaker *gobreaker.CircuitBreaker[string]
	logger  *logging.Logger
}

// NewThumbnailGenerator creates a generator posting to cfg.ImageURL
func NewThumbnailGenerator(cfg config.GeneratorConfig, logger *logging.Logger) *ThumbnailGenerator {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	client := resty.New().
		SetBaseURL(cfg.ImageURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
	if cfg.ImageToken != "" {
		client.SetAuthToken(cfg.ImageToken)
	}

	return &ThumbnailGenerator{
		client:  client,
		sem:     semaphore.NewWeighted(maxConcurrent(cfg)),
		breaker: newBreaker[string](kindThumbnail, logger),
		logger:  logger,
	}
}

func thumbnailPrompt(prompt, aspectRatio string) string {
	framing := "horizontal cinematic"
	if aspectRatio == models.AspectRatioPortrait {
		framing = "vertical portrait"
	}
	return fmt.Sprintf("High quality %s video thumbnail for: %s. Cinematic lighting, vibrant colors, 4k, "+
		"professional photography style.", framing, prompt)
}

func imageSize(aspectRatio string) string {
	switch aspectRatio {
	case models.AspectRatioPortrait:
		return "1024x1792"
	case "1:1":
		return "1024x1024"
	default:
		return "1792x1024"
	}
}

// GenerateThumbnail returns a data URI for a generated image, or "" when
// the call fails
func (g *ThumbnailGenerator) GenerateThumbnail(ctx context.Context, prompt, aspectRatio string) string {
	span, ctx := tracing.StartSpan(ctx, "generator.thumbnail")
	defer tracing.FinishSpan(span)
	tracing.SetTag(span, "aspect_ratio", aspectRatio)

	start := time.Now()
	uri, err := g.breaker.Execute(func() (string, error) {
		return g.generate(ctx, prompt, aspectRatio)
	})
	observe(g.logger, kindThumbnail, start, err)
	if err != nil {
		tracing.LogError(span, err)
		return ""
	}
	return uri
}

func (g *ThumbnailGenerator) generate(ctx context.Context, prompt, aspectRatio string) (string, error) {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer g.sem.Release(1)

	var result imageResponse
	var apiErr apiError
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(imageRequest{
			Prompt:         thumbnailPrompt(prompt, aspectRatio),
			Size:           imageSize(aspectRatio),
			ResponseFormat: "b64_json",
		}).
		SetResult(&result).
		SetError(&apiErr).
		Post("/images/generations")
	if err != nil {
		return "", fmt.Errorf("image request failed: %w", err)
	}
	if resp.IsError() {
		if apiErr.Error.Message != "" {
			return "", fmt.Errorf("image service returned %d: %s", resp.StatusCode(), apiErr.Error.Message)
		}
		return "", fmt.Errorf("image service returned %d", resp.StatusCode())
	}

	for _, item := range result.Data {
		data := strings.TrimSpace(item.B64JSON)
		if data == "" {
			continue
		}
		if _, err := base64.StdEncoding.DecodeString(data); err != nil {
			return "", fmt.Errorf("image payload is not base64: %w", err)
		}
		return "data:image/png;base64," + data, nil
	}
	return "", errors.New("image service returned no image")
}

// GenerateThumbnailVariants generates one thumbnail per style concurrently.
// A failed call leaves "" in its slot and does not cancel the others; the
// result always has one entry per style, in style order.
func (g *ThumbnailGenerator) GenerateThumbnailVariants(ctx context.Context, subject, aspectRatio string) []string {
	results := make([]string, len(variantStyles))

	var group errgroup.Group
	for i, style := range variantStyles {
		i, style := i, style
		group.Go(func() error {
			results[i] = g.GenerateThumbnail(ctx, fmt.Sprintf("%s - %s", subject, style), aspectRatio)
			return nil
		})
	}
	_ = group.Wait()

	return results
}

// Successful drops the empty slots of a variants result
func Successful(thumbnails []string) []string {
	out := make([]string, 0, len(thumbnails))
	for _, t := range thumbnails {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
