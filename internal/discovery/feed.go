package discovery

import (
	"strings"

	"github.com/therealutkarshpriyadarshi/nexus/pkg/models"
)

// CategoryAll disables category filtering
const CategoryAll = "All"

// Categories are the chips offered above the main feed
var Categories = []string{CategoryAll, "Gaming", "Music", "Tech", "AI", "Coding", "Cinematic", "Nature", "Education"}

// FeedQuery selects the videos of one feed
type FeedQuery struct {
	Query    string
	Category string
	Shorts   bool
}

// FilterFeed returns the videos matching q in directory order. The shorts
// feed holds only reels and ignores the category; the main feed holds only
// long-form videos.
func FilterFeed(videos []models.Video, q FeedQuery) []models.Video {
	query := strings.ToLower(q.Query)
	category := strings.ToLower(q.Category)
	anyCategory := q.Category == "" || q.Category == CategoryAll

	out := make([]models.Video, 0)
	for _, v := range videos {
		title := strings.ToLower(v.Title)
		if !strings.Contains(title, query) {
			continue
		}

		if q.Shorts {
			if v.Type == models.VideoTypeReel {
				out = append(out, v)
			}
			continue
		}

		if v.Type != models.VideoTypeVideo {
			continue
		}
		if anyCategory || strings.Contains(title, category) {
			out = append(out, v)
		}
	}
	return out
}

// SearchUsers returns users whose name or email contains term, ignoring case
func SearchUsers(users []models.User, term string) []models.User {
	term = strings.ToLower(term)

	out := make([]models.User, 0)
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.Name), term) || strings.Contains(strings.ToLower(u.Email), term) {
			out = append(out, u)
		}
	}
	return out
}

// UnreadCount counts the unread notifications addressed to userID
func UnreadCount(userID string, notifications []models.SystemNotification) int {
	n := 0
	for i := range notifications {
		if notifications[i].IsFor(userID) && !notifications[i].Read {
			n++
		}
	}
	return n
}
