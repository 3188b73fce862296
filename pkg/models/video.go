package models

import (
	"time"
)

// Video represents an uploaded video or reel
type Video struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Tags        []string     `json:"tags"`
	Thumbnail   string       `json:"thumbnail"`
	VideoURL    string       `json:"videoUrl"`
	AuthorID    string       `json:"authorId"`
	AuthorName  string       `json:"authorName"` // denormalized at upload time
	Views       int64        `json:"views"`
	Likes       int64        `json:"likes"`
	CreatedAt   time.Time    `json:"createdAt"`
	Type        VideoType    `json:"type"`
	ViewHistory []ViewBucket `json:"viewHistory"`
	Size        int64        `json:"size,omitempty"`
}

// ViewBucket is an append-only view counter for one point in time
type ViewBucket struct {
	Timestamp time.Time `json:"timestamp"`
	Count     int64     `json:"count"`
}

// VideoType distinguishes long-form videos from short-form reels
type VideoType string

// VideoType constants
const (
	VideoTypeVideo VideoType = "video"
	VideoTypeReel  VideoType = "reel"
)

// Aspect ratios used for thumbnails
const (
	AspectRatioLandscape = "16:9"
	AspectRatioPortrait  = "9:16"
)

// IsReel reports whether the video belongs to the short-form feed
func (v *Video) IsReel() bool {
	return v.Type == VideoTypeReel
}

// AspectRatio returns the frame shape implied by the video type
func (v *Video) AspectRatio() string {
	return AspectRatioFor(v.Type)
}

// AspectRatioFor returns the frame shape for a video type
func AspectRatioFor(t VideoType) string {
	if t == VideoTypeReel {
		return AspectRatioPortrait
	}
	return AspectRatioLandscape
}

// Valid reports whether t is a known video type
func (t VideoType) Valid() bool {
	return t == VideoTypeVideo || t == VideoTypeReel
}
