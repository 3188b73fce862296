package studio

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/therealutkarshpriyadarshi/nexus/internal/generator"
	"github.com/therealutkarshpriyadarshi/nexus/internal/store"
	"github.com/therealutkarshpriyadarshi/nexus/pkg/models"
)

type stubMetadata struct {
	meta *generator.Metadata
	got  struct {
		topic string
		short bool
	}
}

func (s *stubMetadata) GenerateMetadata(ctx context.Context, topic string, isShortForm bool) *generator.Metadata {
	s.got.topic = topic
	s.got.short = isShortForm
	return s.meta
}

type stubThumbnails struct {
	variants    []string
	subject     string
	aspectRatio string
}

func (s *stubThumbnails) GenerateThumbnailVariants(ctx context.Context, subject, aspectRatio string) []string {
	s.subject = subject
	s.aspectRatio = aspectRatio
	return s.variants
}

type stubObjects struct {
	err       error
	deleteErr error
	uploads   map[string]string
	deleted   []string
}

func (s *stubObjects) Delete(ctx context.Context, objectName string) error {
	s.deleted = append(s.deleted, objectName)
	return s.deleteErr
}

func (s *stubObjects) UploadDataURI(ctx context.Context, objectName, dataURI string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.uploads == nil {
		s.uploads = map[string]string{}
	}
	s.uploads[objectName] = dataURI
	return "https://cdn.example/" + objectName + ".png", nil
}

func signedInStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(context.Background(), nil)
	require.NoError(t, err)
	_, err = s.Login("shams@gmail.com", "1234567")
	require.NoError(t, err)
	return s
}

func validDraft() Draft {
	return Draft{
		Title:       "  Rocket Launch  ",
		Description: "Liftoff",
		Tags:        []string{"space", " ", "rockets"},
		Type:        models.VideoTypeVideo,
		VideoURL:    "https://cdn.example/rocket.mp4",
		Size:        1024,
	}
}

func TestDraftValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Draft)
		valid  bool
	}{
		{"valid", func(d *Draft) {}, true},
		{"missing title", func(d *Draft) { d.Title = "" }, false},
		{"missing video", func(d *Draft) { d.VideoURL = "" }, false},
		{"video is not a URL", func(d *Draft) { d.VideoURL = "rocket.mp4" }, false},
		{"unknown type", func(d *Draft) { d.Type = "clip" }, false},
		{"negative size", func(d *Draft) { d.Size = -1 }, false},
		{"reel", func(d *Draft) { d.Type = models.VideoTypeReel }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.mutate(&d)
			d.normalize()

			err := d.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, store.ErrValidationFailed)
			}
		})
	}
}

func TestPublish(t *testing.T) {
	s := signedInStore(t)
	u := NewUploader(s, nil, nil, nil, nil)

	video, err := u.Publish(context.Background(), validDraft())
	require.NoError(t, err)

	assert.NotEmpty(t, video.ID)
	assert.Equal(t, "Rocket Launch", video.Title)
	assert.Equal(t, []string{"space", "rockets"}, video.Tags)
	assert.Equal(t, "admin_1", video.AuthorID)
	assert.Equal(t, "Shams", video.AuthorName)
	assert.Zero(t, video.Views)
	assert.Zero(t, video.Likes)
	assert.Equal(t, "https://picsum.photos/seed/Rocket%20Launch/800/450", video.Thumbnail)

	videos := s.Snapshot().Videos
	require.Len(t, videos, 3)
	assert.Equal(t, video.ID, videos[0].ID)
}

func TestPublishReelPlaceholder(t *testing.T) {
	u := NewUploader(signedInStore(t), nil, nil, nil, nil)

	draft := validDraft()
	draft.Type = models.VideoTypeReel
	video, err := u.Publish(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, "https://picsum.photos/seed/Rocket%20Launch/450/800", video.Thumbnail)
}

func TestPublishRejections(t *testing.T) {
	s, err := store.New(context.Background(), nil)
	require.NoError(t, err)
	u := NewUploader(s, nil, nil, nil, nil)

	_, err = u.Publish(context.Background(), validDraft())
	assert.ErrorIs(t, err, store.ErrNoSession)

	draft := validDraft()
	draft.Title = "   "
	_, err = u.Publish(context.Background(), draft)
	assert.ErrorIs(t, err, store.ErrValidationFailed)

	assert.Len(t, s.Snapshot().Videos, 2)
}

func TestPublishStoresGeneratedThumbnail(t *testing.T) {
	objects := &stubObjects{}
	u := NewUploader(signedInStore(t), nil, nil, objects, nil)
	u.newID = func() string { return "vid-1" }

	draft := validDraft()
	draft.Thumbnail = "data:image/png;base64,aGVsbG8="
	video, err := u.Publish(context.Background(), draft)
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example/thumbnails/vid-1.png", video.Thumbnail)
	assert.Equal(t, draft.Thumbnail, objects.uploads["thumbnails/vid-1"])
}

func TestPublishKeepsInlineThumbnailWhenUploadFails(t *testing.T) {
	u := NewUploader(signedInStore(t), nil, nil, &stubObjects{err: errors.New("bucket unavailable")}, nil)

	draft := validDraft()
	draft.Thumbnail = "data:image/png;base64,aGVsbG8="
	video, err := u.Publish(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, draft.Thumbnail, video.Thumbnail)
}

func TestRemoveOwnVideoDeletesStoredThumbnail(t *testing.T) {
	s := signedInStore(t)
	objects := &stubObjects{}
	u := NewUploader(s, nil, nil, objects, nil)
	u.newID = func() string { return "vid-1" }

	draft := validDraft()
	draft.Thumbnail = "data:image/png;base64,aGVsbG8="
	_, err := u.Publish(context.Background(), draft)
	require.NoError(t, err)

	require.NoError(t, u.Remove(context.Background(), "vid-1"))

	_, ok := s.Video("vid-1")
	assert.False(t, ok)
	assert.Equal(t, []string{"thumbnails/vid-1.png"}, objects.deleted)
	for _, entry := range s.Snapshot().Logs {
		assert.NotEqual(t, "Video Removed", entry.Action)
	}
}

func TestRemoveOtherVideoIsModerated(t *testing.T) {
	s := signedInStore(t)
	s.AddVideo(models.Video{
		ID:        "other-1",
		AuthorID:  "creator_9",
		Title:     "Someone else's upload",
		Thumbnail: "https://picsum.photos/seed/other/800/450",
	})
	objects := &stubObjects{}
	u := NewUploader(s, nil, nil, objects, nil)

	require.NoError(t, u.Remove(context.Background(), "other-1"))

	logs := s.Snapshot().Logs
	require.NotEmpty(t, logs)
	assert.Equal(t, "Video Removed", logs[0].Action)
	assert.Empty(t, objects.deleted)
}

func TestRemoveRejections(t *testing.T) {
	s := signedInStore(t)
	u := NewUploader(s, nil, nil, nil, nil)

	assert.ErrorIs(t, u.Remove(context.Background(), "missing"), store.ErrNotFound)

	s.Logout()
	assert.ErrorIs(t, u.Remove(context.Background(), "start_1"), store.ErrNoSession)
	_, ok := s.Video("start_1")
	assert.True(t, ok)
}

func TestRemoveIgnoresThumbnailDeleteFailure(t *testing.T) {
	s := signedInStore(t)
	s.AddVideo(models.Video{
		ID:        "vid-2",
		AuthorID:  "admin_1",
		Thumbnail: "https://minio.local/nexus/thumbnails/vid-2.jpg?X-Amz-Signature=abc",
	})
	objects := &stubObjects{deleteErr: errors.New("bucket unavailable")}
	u := NewUploader(s, nil, nil, objects, nil)

	require.NoError(t, u.Remove(context.Background(), "vid-2"))
	assert.Equal(t, []string{"thumbnails/vid-2.jpg"}, objects.deleted)
}

func TestStoredThumbnail(t *testing.T) {
	tests := []struct {
		thumbnail string
		want      string
		ok        bool
	}{
		{"https://cdn.example/thumbnails/vid-1.png", "thumbnails/vid-1.png", true},
		{"http://localhost:9000/nexus/thumbnails/vid-1.webp?X-Amz-Expires=604800", "thumbnails/vid-1.webp", true},
		{"https://cdn.example/thumbnails/other-vid-1.png", "", false},
		{"data:image/png;base64,aGVsbG8=", "", false},
		{"https://picsum.photos/seed/vid-1/800/450", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.thumbnail, func(t *testing.T) {
			name, ok := storedThumbnail("vid-1", tt.thumbnail)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, name)
		})
	}
}

func TestSuggest(t *testing.T) {
	meta := &stubMetadata{meta: &generator.Metadata{Title: "Neon Nights", Description: "City at night", Tags: []string{"neon"}}}
	thumbs := &stubThumbnails{variants: []string{"data:a", "", "data:c"}}
	u := NewUploader(signedInStore(t), meta, thumbs, nil, nil)

	suggestion, err := u.Suggest(context.Background(), " tokyo at night ", models.VideoTypeReel)
	require.NoError(t, err)

	assert.Equal(t, "tokyo at night", meta.got.topic)
	assert.True(t, meta.got.short)
	assert.Equal(t, "Neon Nights", thumbs.subject)
	assert.Equal(t, models.AspectRatioPortrait, thumbs.aspectRatio)
	assert.Equal(t, "Neon Nights", suggestion.Metadata.Title)
	assert.Equal(t, []string{"data:a", "data:c"}, suggestion.Thumbnails)
}

func TestSuggestFailures(t *testing.T) {
	u := NewUploader(signedInStore(t), &stubMetadata{}, nil, nil, nil)

	_, err := u.Suggest(context.Background(), "  ", models.VideoTypeVideo)
	assert.ErrorIs(t, err, store.ErrValidationFailed)

	_, err = u.Suggest(context.Background(), "go", models.VideoTypeVideo)
	assert.ErrorIs(t, err, ErrExternalServiceFailure)

	noGen := NewUploader(signedInStore(t), nil, nil, nil, nil)
	_, err = noGen.Suggest(context.Background(), "go", models.VideoTypeVideo)
	assert.ErrorIs(t, err, ErrExternalServiceFailure)
}
