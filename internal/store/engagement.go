package store

import (
	"slices"
	"time"

	"github.com/therealutkarshpriyadarshi/nexus/internal/metrics"
	"github.com/therealutkarshpriyadarshi/nexus/internal/persistence"
)

// AddToHistory moves id to the front of the session user's watch history,
// dropping any earlier occurrence and truncating to the history limit.
// It does nothing when nobody is signed in.
func (s *Store) AddToHistory(id string) {
	user := s.currentUser()
	if user == nil {
		return
	}

	history := make([]string, 0, len(user.WatchHistory)+1)
	history = append(history, id)
	for _, existing := range user.WatchHistory {
		if existing != id {
			history = append(history, existing)
		}
	}
	if len(history) > s.limits.HistoryLimit {
		history = history[:s.limits.HistoryLimit]
	}

	user.WatchHistory = history
	s.persist(persistence.KeyUsers, persistence.KeyCurrentUser)
}

// ClearHistory empties the session user's watch history
func (s *Store) ClearHistory() error {
	user := s.currentUser()
	if user == nil {
		s.record("clear_history", ErrNoSession, nil)
		return ErrNoSession
	}

	user.WatchHistory = []string{}
	s.persist(persistence.KeyUsers, persistence.KeyCurrentUser)
	s.record("clear_history", nil, nil)
	return nil
}

// ToggleLike flips videoID in the session user's liked videos and moves
// the video's like counter by one in the same direction. Toggles share a
// single cooldown for the running instance regardless of which video or
// user they involve; only successful toggles start a new cooldown.
func (s *Store) ToggleLike(videoID string) (liked bool, err error) {
	details := map[string]interface{}{"video_id": videoID}
	defer func() {
		s.record("toggle_like", err, details)
	}()

	user := s.currentUser()
	if user == nil {
		return false, ErrNoSession
	}

	now := s.now()
	if tokens := s.likeLimiter.TokensAt(now); tokens < 1 {
		wait := s.limits.LikeCooldown - time.Duration(tokens*float64(s.limits.LikeCooldown))
		metrics.RecordLikeRateLimited()
		return false, &RateLimitedError{Wait: wait}
	}

	idx := s.videoIndex(videoID)
	i := slices.Index(user.LikedVideos, videoID)
	if idx < 0 && i < 0 {
		return false, ErrNotFound
	}

	s.likeLimiter.AllowN(now, 1)

	// A deleted video can still be un-liked; there is no counter to move.
	if i >= 0 {
		user.LikedVideos = slices.Delete(slices.Clone(user.LikedVideos), i, i+1)
		if idx >= 0 {
			s.videos[idx].Likes--
		}
		liked = false
	} else {
		user.LikedVideos = append(slices.Clone(user.LikedVideos), videoID)
		s.videos[idx].Likes++
		liked = true
	}

	details["liked"] = liked
	keys := []string{persistence.KeyUsers, persistence.KeyCurrentUser}
	if idx >= 0 {
		keys = append(keys, persistence.KeyVideos)
	}
	s.persist(keys...)
	return liked, nil
}

// ToggleSubscribe flips authorID in the session user's subscriptions and
// moves the author's follower counter by one in the same direction. The
// two changes are applied together or not at all.
func (s *Store) ToggleSubscribe(authorID string) (subscribed bool, err error) {
	details := map[string]interface{}{"author_id": authorID}
	defer func() {
		s.record("toggle_subscribe", err, details)
	}()

	user := s.currentUser()
	if user == nil {
		return false, ErrNoSession
	}
	if user.ID == authorID {
		return false, ErrSelfSubscribe
	}

	authorIdx := s.userIndex(authorID)
	if authorIdx < 0 {
		return false, ErrNotFound
	}
	author := &s.users[authorIdx]

	if i := slices.Index(user.Subscriptions, authorID); i >= 0 {
		user.Subscriptions = slices.Delete(slices.Clone(user.Subscriptions), i, i+1)
		author.Followers--
		subscribed = false
	} else {
		user.Subscriptions = append(slices.Clone(user.Subscriptions), authorID)
		author.Followers++
		subscribed = true
	}

	details["subscribed"] = subscribed
	s.persist(persistence.KeyUsers, persistence.KeyCurrentUser)
	return subscribed, nil
}
