package store

import (
	"time"

	"github.com/therealutkarshpriyadarshi/nexus/pkg/models"
)

// seedUsers is the directory used when nothing has been persisted yet
func seedUsers() []models.User {
	return []models.User{
		{
			ID:            "admin_1",
			Name:          "Shams",
			Email:         "shams@gmail.com",
			Password:      "1234567",
			Avatar:        "https://api.dicebear.com/7.x/avataaars/svg?seed=Shams",
			Followers:     1200000,
			JoinedAt:      time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			Role:          models.UserRoleAdmin,
			Monetized:     true,
			IsVerified:    true,
			Subscriptions: []string{},
			LikedVideos:   []string{},
			WatchHistory:  []string{},
			StorageUsed:   450,
		},
	}
}

// starterVideos fills an empty video directory
func starterVideos(now time.Time) []models.Video {
	return []models.Video{
		{
			ID:          "start_1",
			Title:       "Nexus: The Future of AI Architecture",
			Description: "Exploring the nexus of human design and machine intelligence.",
			Tags:        []string{"AI", "Tech", "Nexus", "Future"},
			Thumbnail:   "https://images.unsplash.com/photo-1677442136019-21780ecad995?q=80&w=2000&auto=format&fit=crop",
			VideoURL:    "https://storage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4",
			AuthorID:    "admin_1",
			AuthorName:  "Shams",
			Views:       12500,
			Likes:       890,
			CreatedAt:   now,
			Type:        models.VideoTypeVideo,
			ViewHistory: []models.ViewBucket{},
		},
		{
			ID:          "start_2",
			Title:       "Cyberpunk Tokyo Reel",
			Description: "A neon journey through the future. #Neon #Cyberpunk",
			Tags:        []string{"Cyberpunk", "Neon", "Cinematic", "Tokyo"},
			Thumbnail:   "https://images.unsplash.com/photo-1605142859862-978be7eba909?q=80&w=2000&auto=format&fit=crop",
			VideoURL:    "https://storage.googleapis.com/gtv-videos-bucket/sample/ElephantsDream.mp4",
			AuthorID:    "admin_1",
			AuthorName:  "Shams",
			Views:       54000,
			Likes:       4200,
			CreatedAt:   now,
			Type:        models.VideoTypeReel,
			ViewHistory: []models.ViewBucket{},
		},
	}
}
