package persistence

// Keys of the persisted collections. Each is read once at startup and
// rewritten in full whenever its collection changes.
const (
	KeyCurrentUser   = "nexus_user"
	KeyUsers         = "nexus_all_users"
	KeyVideos        = "nexus_videos"
	KeyComments      = "nexus_comments"
	KeyLogs          = "nexus_logs"
	KeyReports       = "nexus_reports"
	KeyNotifications = "nexus_notifications"
)

// AllKeys lists every persisted key
var AllKeys = []string{
	KeyCurrentUser,
	KeyUsers,
	KeyVideos,
	KeyComments,
	KeyLogs,
	KeyReports,
	KeyNotifications,
}
