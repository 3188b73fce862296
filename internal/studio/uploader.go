// Package studio turns creator drafts into published videos, with optional
// AI-generated metadata and thumbnails.
package studio

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/therealutkarshpriyadarshi/nexus/internal/generator"
	"github.com/therealutkarshpriyadarshi/nexus/internal/logging"
	"github.com/therealutkarshpriyadarshi/nexus/internal/store"
	"github.com/therealutkarshpriyadarshi/nexus/pkg/models"
)

// ErrExternalServiceFailure is returned when generation produced nothing
// usable. The caller may retry.
var ErrExternalServiceFailure = errors.New("external service failure")

// MetadataSource generates titles, descriptions and tags
type MetadataSource interface {
	GenerateMetadata(ctx context.Context, topic string, isShortForm bool) *generator.Metadata
}

// ThumbnailSource generates thumbnail variants as data URIs
type ThumbnailSource interface {
	GenerateThumbnailVariants(ctx context.Context, subject, aspectRatio string) []string
}

// ObjectStore persists data URI thumbnails and returns a URL for them
type ObjectStore interface {
	UploadDataURI(ctx context.Context, objectName, dataURI string) (string, error)
	Delete(ctx context.Context, objectName string) error
}

// Suggestion is generated draft content
type Suggestion struct {
	Metadata   generator.Metadata
	Thumbnails []string
}

// Uploader publishes drafts for the signed-in creator
type Uploader struct {
	store      *store.Store
	metadata   MetadataSource
	thumbnails ThumbnailSource
	objects    ObjectStore
	logger     *logging.Logger
	newID      func() string
}

// NewUploader creates an uploader. metadata, thumbnails and objects may be
// nil to disable generation and thumbnail uploads.
func NewUploader(s *store.Store, metadata MetadataSource, thumbnails ThumbnailSource, objects ObjectStore, logger *logging.Logger) *Uploader {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Uploader{
		store:      s,
		metadata:   metadata,
		thumbnails: thumbnails,
		objects:    objects,
		logger:     logger,
		newID:      func() string { return uuid.New().String() },
	}
}

// Suggest generates metadata for topic and, from the generated title,
// thumbnail options in the frame shape of videoType. Thumbnail failures
// only shrink the option list.
func (u *Uploader) Suggest(ctx context.Context, topic string, videoType models.VideoType) (*Suggestion, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" || !videoType.Valid() {
		return nil, store.ErrValidationFailed
	}
	if u.metadata == nil {
		return nil, ErrExternalServiceFailure
	}

	meta := u.metadata.GenerateMetadata(ctx, topic, videoType == models.VideoTypeReel)
	if meta == nil {
		return nil, ErrExternalServiceFailure
	}

	suggestion := &Suggestion{Metadata: *meta, Thumbnails: []string{}}
	if u.thumbnails != nil {
		variants := u.thumbnails.GenerateThumbnailVariants(ctx, meta.Title, models.AspectRatioFor(videoType))
		suggestion.Thumbnails = generator.Successful(variants)
	}
	return suggestion, nil
}

// Publish validates the draft and adds it to the video directory as the
// signed-in user's upload
func (u *Uploader) Publish(ctx context.Context, draft Draft) (models.Video, error) {
	draft.normalize()
	if err := draft.Validate(); err != nil {
		return models.Video{}, err
	}

	author, ok := u.store.CurrentUser()
	if !ok {
		return models.Video{}, store.ErrNoSession
	}

	id := u.newID()
	video := models.Video{
		ID:          id,
		Title:       draft.Title,
		Description: draft.Description,
		Tags:        draft.Tags,
		Thumbnail:   u.thumbnailFor(ctx, id, draft),
		VideoURL:    draft.VideoURL,
		AuthorID:    author.ID,
		AuthorName:  author.Name,
		Type:        draft.Type,
		ViewHistory: []models.ViewBucket{},
		Size:        draft.Size,
	}

	u.store.AddVideo(video)
	published, _ := u.store.Video(id)
	return published, nil
}

// thumbnailFor moves a generated thumbnail to object storage when one is
// configured, and falls back to a placeholder image when there is none
func (u *Uploader) thumbnailFor(ctx context.Context, videoID string, draft Draft) string {
	thumb := strings.TrimSpace(draft.Thumbnail)
	if thumb == "" {
		return placeholderThumbnail(draft.Title, draft.Type)
	}

	if u.objects != nil && strings.HasPrefix(thumb, "data:") {
		stored, err := u.objects.UploadDataURI(ctx, thumbnailObjectName(videoID), thumb)
		if err != nil {
			u.logger.WithVideoID(videoID).WithError(err).Warn("Failed to store thumbnail, keeping inline image")
			return thumb
		}
		return stored
	}
	return thumb
}

// Remove deletes a video. Authors remove their own uploads directly; any
// other video goes through moderation, which requires the admin role. A
// thumbnail kept in object storage is deleted along with the video.
func (u *Uploader) Remove(ctx context.Context, videoID string) error {
	user, ok := u.store.CurrentUser()
	if !ok {
		return store.ErrNoSession
	}
	video, ok := u.store.Video(videoID)
	if !ok {
		return store.ErrNotFound
	}

	var err error
	if video.AuthorID == user.ID {
		err = u.store.DeleteVideo(videoID)
	} else {
		err = u.store.ModerateDeleteVideo(videoID)
	}
	if err != nil {
		return err
	}

	if u.objects == nil {
		return nil
	}
	if name, ok := storedThumbnail(videoID, video.Thumbnail); ok {
		if err := u.objects.Delete(ctx, name); err != nil {
			u.logger.WithVideoID(videoID).WithError(err).Warn("Failed to delete stored thumbnail")
		}
	}
	return nil
}

func thumbnailObjectName(videoID string) string {
	return "thumbnails/" + videoID
}

// storedThumbnail returns the object name behind a thumbnail URL issued by
// object storage for videoID. Inline data URIs and external images report
// false.
func storedThumbnail(videoID, thumbnail string) (string, bool) {
	u, err := url.Parse(thumbnail)
	if err != nil || u.Path == "" {
		return "", false
	}

	ext := path.Ext(u.Path)
	name := thumbnailObjectName(videoID)
	if !strings.HasSuffix(strings.TrimSuffix(u.Path, ext), "/"+name) {
		return "", false
	}
	return name + ext, true
}

func placeholderThumbnail(title string, videoType models.VideoType) string {
	width, height := 800, 450
	if videoType == models.VideoTypeReel {
		width, height = 450, 800
	}
	return fmt.Sprintf("https://picsum.photos/seed/%s/%d/%d", url.PathEscape(title), width, height)
}
