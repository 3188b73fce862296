// Package discovery holds the read-side computations over store snapshots:
// ranking, feed filtering, monetization progress and admin dashboards.
// Every function is pure and never mutates its inputs.
package discovery

import (
	"slices"
	"sort"

	"github.com/therealutkarshpriyadarshi/nexus/pkg/models"
)

const (
	relatedLimit      = 4
	sameAuthorScore   = 10
	sharedTagScore    = 2
	topEngagedLimit   = 3
	likeEngagementMul = 2
)

// RelatedVideos ranks pool against source: ten points for the same author
// and two per shared tag. Unrelated videos and source itself are dropped.
// Ties are broken by views.
func RelatedVideos(source models.Video, pool []models.Video) []models.Video {
	type scored struct {
		video models.Video
		score int
	}

	candidates := make([]scored, 0, len(pool))
	for _, v := range pool {
		if v.ID == source.ID {
			continue
		}

		score := 0
		if v.AuthorID == source.AuthorID {
			score += sameAuthorScore
		}
		for _, tag := range v.Tags {
			if slices.Contains(source.Tags, tag) {
				score += sharedTagScore
			}
		}
		if score > 0 {
			candidates = append(candidates, scored{video: v, score: score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].video.Views > candidates[j].video.Views
	})

	if len(candidates) > relatedLimit {
		candidates = candidates[:relatedLimit]
	}

	related := make([]models.Video, len(candidates))
	for i, c := range candidates {
		related[i] = c.video
	}
	return related
}

// TopEngaged returns the author's three videos with the highest
// likes*2 + views
func TopEngaged(authorID string, videos []models.Video) []models.Video {
	own := ChannelVideos(authorID, videos)
	sort.SliceStable(own, func(i, j int) bool {
		return engagementScore(own[i]) > engagementScore(own[j])
	})
	if len(own) > topEngagedLimit {
		own = own[:topEngagedLimit]
	}
	return own
}

func engagementScore(v models.Video) int64 {
	return v.Likes*likeEngagementMul + v.Views
}

// EngagementRate returns likes as a percentage of views. Videos without
// views are treated as having one.
func EngagementRate(v models.Video) float64 {
	views := v.Views
	if views < 1 {
		views = 1
	}
	return float64(v.Likes) / float64(views) * 100
}

// ChannelVideos returns the author's videos in directory order
func ChannelVideos(authorID string, videos []models.Video) []models.Video {
	out := make([]models.Video, 0)
	for _, v := range videos {
		if v.AuthorID == authorID {
			out = append(out, v)
		}
	}
	return out
}

// HistoryVideos resolves the user's watch history, most recent first.
// Ids that no longer exist are skipped.
func HistoryVideos(user models.User, videos []models.Video) []models.Video {
	byID := make(map[string]models.Video, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}

	out := make([]models.Video, 0, len(user.WatchHistory))
	for _, id := range user.WatchHistory {
		if v, ok := byID[id]; ok {
			out = append(out, v)
		}
	}
	return out
}

// VideoComments returns the comments on one video, most recent first
func VideoComments(videoID string, comments []models.Comment) []models.Comment {
	out := make([]models.Comment, 0)
	for _, c := range comments {
		if c.VideoID == videoID {
			out = append(out, c)
		}
	}
	return out
}
