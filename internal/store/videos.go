package store

import (
	"slices"

	"github.com/therealutkarshpriyadarshi/nexus/internal/persistence"
	"github.com/therealutkarshpriyadarshi/nexus/pkg/models"
)

// AddVideo prepends a video to the directory
func (s *Store) AddVideo(video models.Video) {
	if video.ID == "" {
		video.ID = s.newID()
	}
	if video.CreatedAt.IsZero() {
		video.CreatedAt = s.now()
	}
	if video.ViewHistory == nil {
		video.ViewHistory = []models.ViewBucket{}
	}

	s.videos = prepend(s.videos, video)
	s.persist(persistence.KeyVideos)
	s.record("add_video", nil, map[string]interface{}{"video_id": video.ID, "type": string(video.Type)})
}

// DeleteVideo removes a video. Comments and reports that reference it are
// left in place.
func (s *Store) DeleteVideo(id string) error {
	idx := s.videoIndex(id)
	if idx < 0 {
		s.record("delete_video", ErrNotFound, map[string]interface{}{"video_id": id})
		return ErrNotFound
	}

	s.videos = slices.Delete(s.videos, idx, idx+1)
	s.persist(persistence.KeyVideos)
	s.record("delete_video", nil, map[string]interface{}{"video_id": id})
	return nil
}

// IncrementView adds one view to a video. Unknown ids are ignored.
func (s *Store) IncrementView(id string) {
	idx := s.videoIndex(id)
	if idx < 0 {
		return
	}

	s.videos[idx].Views++
	s.persist(persistence.KeyVideos)
}

// AppendViewBucket appends a view-count bucket to a video's history.
// Buckets are never rewritten once appended.
func (s *Store) AppendViewBucket(id string, bucket models.ViewBucket) error {
	idx := s.videoIndex(id)
	if idx < 0 {
		s.record("append_view_bucket", ErrNotFound, map[string]interface{}{"video_id": id})
		return ErrNotFound
	}
	if bucket.Count <= 0 {
		s.record("append_view_bucket", ErrValidationFailed, map[string]interface{}{"video_id": id})
		return ErrValidationFailed
	}
	if bucket.Timestamp.IsZero() {
		bucket.Timestamp = s.now()
	}

	s.videos[idx].ViewHistory = append(s.videos[idx].ViewHistory, bucket)
	s.persist(persistence.KeyVideos)
	s.record("append_view_bucket", nil, map[string]interface{}{"video_id": id, "count": bucket.Count})
	return nil
}
