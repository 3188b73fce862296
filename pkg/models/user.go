package models

import (
	"slices"
	"time"
)

// User represents a platform account
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Password     string    `json:"password,omitempty"` // compared in plaintext, not a security boundary
	Avatar       string    `json:"avatar"`
	Followers    int64     `json:"followers"`
	JoinedAt     time.Time `json:"joinedAt"`
	Role         UserRole  `json:"role"`
	IsBlocked    bool      `json:"isBlocked"`
	Monetized    bool      `json:"monetized"`
	IsVerified   bool      `json:"isVerified,omitempty"`
	IsSuspended  bool      `json:"isSuspended,omitempty"`
	WarningCount int       `json:"warningCount,omitempty"`
	// Membership sets, kept as ordered id sequences.
	Subscriptions []string `json:"subscriptions,omitempty"`
	LikedVideos   []string `json:"likedVideos,omitempty"`
	WatchHistory  []string `json:"watchHistory,omitempty"` // most recent first
	StorageUsed   int64    `json:"storageUsed,omitempty"`
}

// UserRole represents user roles
type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == UserRoleAdmin
}

// IsSubscribedTo reports whether authorID is in the user's subscriptions
func (u *User) IsSubscribedTo(authorID string) bool {
	return slices.Contains(u.Subscriptions, authorID)
}

// HasLiked reports whether videoID is in the user's liked videos
func (u *User) HasLiked(videoID string) bool {
	return slices.Contains(u.LikedVideos, videoID)
}
