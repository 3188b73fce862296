package models

import "time"

// Comment is a text reply attached to a single video. Author display
// fields are copied at creation time and never refreshed.
type Comment struct {
	ID         string    `json:"id"`
	VideoID    string    `json:"videoId"`
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName"`
	UserAvatar string    `json:"userAvatar"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}
