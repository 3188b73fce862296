package discovery

import (
	"math"
	"time"

	"github.com/therealutkarshpriyadarshi/nexus/internal/config"
	"github.com/therealutkarshpriyadarshi/nexus/pkg/models"
)

// Criteria are the thresholds a creator must reach to be monetized
type Criteria struct {
	ViewsThreshold     int64
	FollowersThreshold int64
	Window             time.Duration
}

// DefaultCriteria returns the platform thresholds
func DefaultCriteria() Criteria {
	return Criteria{
		ViewsThreshold:     10000,
		FollowersThreshold: 1000,
		Window:             30 * 24 * time.Hour,
	}
}

// CriteriaFromConfig builds criteria from configuration, keeping defaults
// for unset values
func CriteriaFromConfig(cfg config.MonetizationConfig) Criteria {
	c := DefaultCriteria()
	if cfg.ViewsThreshold > 0 {
		c.ViewsThreshold = cfg.ViewsThreshold
	}
	if cfg.FollowersThreshold > 0 {
		c.FollowersThreshold = cfg.FollowersThreshold
	}
	if cfg.Window > 0 {
		c.Window = cfg.Window
	}
	return c
}

// MonetizationStatus is a creator's progress towards monetization
type MonetizationStatus struct {
	TotalViews        int64
	TotalLikes        int64
	ViewsInWindow     int64
	ViewsProgress     float64 // percent, capped at 100
	FollowersProgress float64 // percent, capped at 100
	IsEligible        bool
}

// Monetization computes the user's status over their authored videos.
// Windowed views sum the view buckets stamped at or after now-Window.
// Both thresholds must hold independently for eligibility.
func Monetization(user models.User, videos []models.Video, now time.Time, criteria Criteria) MonetizationStatus {
	var status MonetizationStatus
	since := now.Add(-criteria.Window)

	for _, v := range videos {
		if v.AuthorID != user.ID {
			continue
		}
		status.TotalViews += v.Views
		status.TotalLikes += v.Likes
		for _, bucket := range v.ViewHistory {
			if !bucket.Timestamp.Before(since) {
				status.ViewsInWindow += bucket.Count
			}
		}
	}

	status.ViewsProgress = progress(status.ViewsInWindow, criteria.ViewsThreshold)
	status.FollowersProgress = progress(user.Followers, criteria.FollowersThreshold)
	status.IsEligible = status.ViewsInWindow >= criteria.ViewsThreshold &&
		user.Followers >= criteria.FollowersThreshold

	return status
}

func progress(value, threshold int64) float64 {
	if threshold <= 0 {
		return 100
	}
	return math.Min(float64(value)/float64(threshold), 1) * 100
}
