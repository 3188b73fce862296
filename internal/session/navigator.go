// Package session tracks what the signed-in viewer is looking at and
// routes navigation through the store.
package session

import (
	"fmt"

	"github.com/therealutkarshpriyadarshi/nexus/internal/discovery"
	"github.com/therealutkarshpriyadarshi/nexus/internal/store"
	"github.com/therealutkarshpriyadarshi/nexus/pkg/models"
)

// View identifies the active screen
type View string

const (
	ViewHome    View = "home"
	ViewShorts  View = "shorts"
	ViewStudio  View = "studio"
	ViewAdmin   View = "admin"
	ViewChannel View = "channel"
	ViewHistory View = "history"
)

// Valid reports whether v is a known view
func (v View) Valid() bool {
	switch v {
	case ViewHome, ViewShorts, ViewStudio, ViewAdmin, ViewChannel, ViewHistory:
		return true
	default:
		return false
	}
}

const siteName = "NexusVideo"

// State is the navigation state. Search and category are independent of
// the selected video.
type State struct {
	View             View
	SelectedVideoID  string
	ViewingChannelID string
	SearchQuery      string
	Category         string
}

// Navigator applies navigation actions to a State
type Navigator struct {
	store *store.Store
	state State
}

// NewNavigator starts on the home view
func NewNavigator(s *store.Store) *Navigator {
	return &Navigator{
		store: s,
		state: State{View: ViewHome, Category: discovery.CategoryAll},
	}
}

// State returns the current navigation state
func (n *Navigator) State() State {
	return n.state
}

// SetView switches the active screen. Unknown views are ignored.
func (n *Navigator) SetView(v View) bool {
	if !v.Valid() {
		return false
	}
	n.state.View = v
	return true
}

// SetSearch updates the search query without touching the selection
func (n *Navigator) SetSearch(query string) {
	n.state.SearchQuery = query
}

// SetCategory updates the category chip without touching the selection
func (n *Navigator) SetCategory(category string) {
	n.state.Category = category
}

// OpenChannel shows a creator's channel
func (n *Navigator) OpenChannel(authorID string) error {
	if _, ok := n.store.User(authorID); !ok {
		return store.ErrNotFound
	}
	n.state.ViewingChannelID = authorID
	n.state.View = ViewChannel
	return nil
}

// SelectVideo opens a video: it counts a view, records it in the viewer's
// history and returns to the home view.
func (n *Navigator) SelectVideo(id string) (models.Video, error) {
	if _, ok := n.store.Video(id); !ok {
		return models.Video{}, store.ErrNotFound
	}

	n.store.IncrementView(id)
	n.store.AddToHistory(id)
	n.state.SelectedVideoID = id
	n.state.View = ViewHome

	video, _ := n.store.Video(id)
	return video, nil
}

// Back closes the open video and clears the search query
func (n *Navigator) Back() {
	n.state.SelectedVideoID = ""
	n.state.SearchQuery = ""
}

// ApplyDeepLink selects the content a share link points at. A video link
// opens the video; a reel link switches to the shorts feed but only for
// reels. Links to unknown content leave the state unchanged.
func (n *Navigator) ApplyDeepLink(link DeepLink) bool {
	if link.VideoID != "" {
		_, err := n.SelectVideo(link.VideoID)
		return err == nil
	}

	if link.ReelID != "" {
		video, ok := n.store.Video(link.ReelID)
		if !ok || !video.IsReel() {
			return false
		}
		n.state.View = ViewShorts
		return true
	}
	return false
}

// Feed returns the videos of the active feed under the current search
// and category
func (n *Navigator) Feed() []models.Video {
	return discovery.FilterFeed(n.store.Snapshot().Videos, discovery.FeedQuery{
		Query:    n.state.SearchQuery,
		Category: n.state.Category,
		Shorts:   n.state.View == ViewShorts,
	})
}

// Title returns the document title for the current state
func (n *Navigator) Title() string {
	if n.state.SelectedVideoID != "" {
		if video, ok := n.store.Video(n.state.SelectedVideoID); ok {
			return fmt.Sprintf("%s - %s", video.Title, siteName)
		}
	}
	if n.state.View == ViewShorts {
		return "Reels - " + siteName
	}
	return siteName + " - Premium Video Platform"
}
