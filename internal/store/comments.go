package store

import (
	"strings"

	"github.com/therealutkarshpriyadarshi/nexus/internal/persistence"
	"github.com/therealutkarshpriyadarshi/nexus/pkg/models"
)

// AddComment prepends a comment by the session user. The author's name and
// avatar are captured now and never refreshed.
func (s *Store) AddComment(videoID, text string) (comment models.Comment, err error) {
	defer func() {
		s.record("add_comment", err, map[string]interface{}{"video_id": videoID})
	}()

	user := s.currentUser()
	if user == nil {
		return models.Comment{}, ErrNoSession
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Comment{}, ErrValidationFailed
	}
	if s.videoIndex(videoID) < 0 {
		return models.Comment{}, ErrNotFound
	}

	comment = models.Comment{
		ID:         s.newID(),
		VideoID:    videoID,
		UserID:     user.ID,
		UserName:   user.Name,
		UserAvatar: user.Avatar,
		Text:       text,
		CreatedAt:  s.now(),
	}

	s.comments = prepend(s.comments, comment)
	s.persist(persistence.KeyComments)
	return comment, nil
}

func (s *Store) commentIndex(id string) int {
	for i := range s.comments {
		if s.comments[i].ID == id {
			return i
		}
	}
	return -1
}
