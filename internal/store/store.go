// Package store owns every collection of the platform and exposes the
// mutation operations that keep them consistent.
//
// A Store has a single logical writer: operations run to completion one at
// a time and must not be called from several goroutines at once. Callers
// that await slow collaborators (AI generation, uploads) do so outside the
// store and then invoke ordinary synchronous operations with the result.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/therealutkarshpriyadarshi/nexus/internal/config"
	"github.com/therealutkarshpriyadarshi/nexus/internal/logging"
	"github.com/therealutkarshpriyadarshi/nexus/internal/metrics"
	"github.com/therealutkarshpriyadarshi/nexus/internal/persistence"
	"github.com/therealutkarshpriyadarshi/nexus/pkg/models"
	"golang.org/x/time/rate"
)

// Limits holds the store's tunable bounds
type Limits struct {
	LikeCooldown   time.Duration
	HistoryLimit   int
	LogRetention   int
	PersistTimeout time.Duration
}

// DefaultLimits returns the platform defaults
func DefaultLimits() Limits {
	return Limits{
		LikeCooldown:   10 * time.Second,
		HistoryLimit:   50,
		LogRetention:   100,
		PersistTimeout: 5 * time.Second,
	}
}

// LimitsFromConfig builds limits from configuration, keeping defaults for
// unset values
func LimitsFromConfig(cfg config.StoreConfig) Limits {
	limits := DefaultLimits()
	if cfg.LikeCooldown > 0 {
		limits.LikeCooldown = cfg.LikeCooldown
	}
	if cfg.HistoryLimit > 0 {
		limits.HistoryLimit = cfg.HistoryLimit
	}
	if cfg.LogRetention > 0 {
		limits.LogRetention = cfg.LogRetention
	}
	return limits
}

// Store is the in-memory state of one running instance
type Store struct {
	persister *persistence.Persister
	logger    *logging.Logger
	clock     func() time.Time
	newID     func() string
	limits    Limits

	currentUserID string
	users         []models.User
	videos        []models.Video // most recent first
	comments      []models.Comment
	logs          []models.SystemLog // ring buffer, most recent first
	reports       []models.Report
	notifications []models.SystemNotification

	// likeLimiter enforces one like cooldown for the running instance,
	// shared across sign-ins
	likeLimiter *rate.Limiter
}

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source
func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithLimits overrides the default limits
func WithLimits(limits Limits) Option {
	return func(s *Store) { s.limits = limits }
}

// WithIDGenerator overrides entity ID generation
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New creates a store and loads every collection through persister. Keys
// that were never written fall back to seed data. A nil persister keeps
// the store purely in memory.
func New(ctx context.Context, persister *persistence.Persister, opts ...Option) (*Store, error) {
	s := &Store{
		persister: persister,
		logger:    logging.NewNopLogger(),
		clock:     time.Now,
		newID:     func() string { return uuid.New().String() },
		limits:    DefaultLimits(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.likeLimiter = rate.NewLimiter(rate.Every(s.limits.LikeCooldown), 1)

	if err := s.load(ctx); err != nil {
		return nil, err
	}

	metrics.UpdateAuditLogSize(len(s.logs))
	return s, nil
}

func (s *Store) load(ctx context.Context) error {
	s.users = seedUsers()
	s.videos = starterVideos(s.clock())
	s.comments = []models.Comment{}
	s.logs = []models.SystemLog{}
	s.reports = []models.Report{}
	s.notifications = []models.SystemNotification{}

	if s.persister == nil {
		return nil
	}

	var users []models.User
	if ok, err := s.loadKey(ctx, persistence.KeyUsers, &users); err != nil {
		return err
	} else if ok && users != nil {
		s.users = users
	}

	var videos []models.Video
	if ok, err := s.loadKey(ctx, persistence.KeyVideos, &videos); err != nil {
		return err
	} else if ok && len(videos) > 0 {
		s.videos = videos
	}

	var comments []models.Comment
	if ok, err := s.loadKey(ctx, persistence.KeyComments, &comments); err != nil {
		return err
	} else if ok && comments != nil {
		s.comments = comments
	}

	var logs []models.SystemLog
	if ok, err := s.loadKey(ctx, persistence.KeyLogs, &logs); err != nil {
		return err
	} else if ok && logs != nil {
		if len(logs) > s.limits.LogRetention {
			logs = logs[:s.limits.LogRetention]
		}
		s.logs = logs
	}

	var reports []models.Report
	if ok, err := s.loadKey(ctx, persistence.KeyReports, &reports); err != nil {
		return err
	} else if ok && reports != nil {
		s.reports = reports
	}

	var notifications []models.SystemNotification
	if ok, err := s.loadKey(ctx, persistence.KeyNotifications, &notifications); err != nil {
		return err
	} else if ok && notifications != nil {
		s.notifications = notifications
	}

	var current *models.User
	if ok, err := s.loadKey(ctx, persistence.KeyCurrentUser, &current); err != nil {
		return err
	} else if ok && current != nil {
		// The directory entry is the source of truth for the session user.
		if s.userIndex(current.ID) >= 0 {
			s.currentUserID = current.ID
		} else {
			s.logger.WithUserID(current.ID).Warn("Persisted session user is not in the directory, signing out")
		}
	}

	return nil
}

// loadKey decodes one key. Malformed blobs are logged and ignored so the
// default applies; backend failures and newer schema versions abort.
func (s *Store) loadKey(ctx context.Context, key string, dst interface{}) (bool, error) {
	found, err := s.persister.Load(ctx, key, dst)
	if err != nil {
		if errors.Is(err, persistence.ErrMalformed) {
			s.logger.WithKey(key).WithError(err).Error("Discarding malformed persisted collection")
			return false, nil
		}
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return found, nil
}

// persist rewrites the given keys. Failures are logged and never surface
// to the caller of the mutation.
func (s *Store) persist(keys ...string) {
	if s.persister == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.limits.PersistTimeout)
	defer cancel()

	for _, key := range keys {
		if err := s.persister.Save(ctx, key, s.valueFor(key)); err != nil {
			s.logger.WithKey(key).WithError(err).Error("Failed to persist collection")
		}
	}
}

func (s *Store) valueFor(key string) interface{} {
	switch key {
	case persistence.KeyCurrentUser:
		return s.currentUser()
	case persistence.KeyUsers:
		return s.users
	case persistence.KeyVideos:
		return s.videos
	case persistence.KeyComments:
		return s.comments
	case persistence.KeyLogs:
		return s.logs
	case persistence.KeyReports:
		return s.reports
	case persistence.KeyNotifications:
		return s.notifications
	default:
		return nil
	}
}

// record reports the outcome of an operation to metrics and the log
func (s *Store) record(operation string, err error, details map[string]interface{}) {
	status := outcome(err)
	metrics.RecordStoreOperation(operation, status)

	logger := s.logger
	if s.currentUserID != "" {
		logger = logger.WithUserID(s.currentUserID)
	}
	if err != nil {
		if details == nil {
			details = map[string]interface{}{}
		}
		details["error"] = err.Error()
	}
	logger.LogStoreEvent(operation, status, details)
}

func (s *Store) now() time.Time {
	return s.clock()
}

// appendLog prepends an audit entry and evicts the oldest beyond retention
func (s *Store) appendLog(action, target string, logType models.LogType) {
	entry := models.SystemLog{
		ID:        s.newID(),
		Action:    action,
		Target:    target,
		Timestamp: s.now(),
		Type:      logType,
	}

	s.logs = prepend(s.logs, entry)
	if len(s.logs) > s.limits.LogRetention {
		s.logs = s.logs[:s.limits.LogRetention]
	}

	metrics.UpdateAuditLogSize(len(s.logs))
	s.persist(persistence.KeyLogs)
}

func prepend[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, item)
	return append(out, items...)
}

func (s *Store) userIndex(id string) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) videoIndex(id string) int {
	for i := range s.videos {
		if s.videos[i].ID == id {
			return i
		}
	}
	return -1
}

// currentUser returns the directory entry of the session user, or nil
func (s *Store) currentUser() *models.User {
	if s.currentUserID == "" {
		return nil
	}
	idx := s.userIndex(s.currentUserID)
	if idx < 0 {
		return nil
	}
	return &s.users[idx]
}

// requireAdmin returns the session user when it holds the admin role
func (s *Store) requireAdmin() (*models.User, error) {
	user := s.currentUser()
	if user == nil {
		return nil, ErrNoSession
	}
	if !user.IsAdmin() {
		return nil, ErrForbidden
	}
	return user, nil
}

// Snapshot is a deep copy of every collection, safe to read and modify
// without affecting the store
type Snapshot struct {
	CurrentUser   *models.User
	Users         []models.User
	Videos        []models.Video
	Comments      []models.Comment
	Logs          []models.SystemLog
	Reports       []models.Report
	Notifications []models.SystemNotification
}

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() Snapshot {
	return deepCopy(s.logger, Snapshot{
		CurrentUser:   s.currentUser(),
		Users:         s.users,
		Videos:        s.videos,
		Comments:      s.comments,
		Logs:          s.logs,
		Reports:       s.reports,
		Notifications: s.notifications,
	})
}

// CurrentUser returns a copy of the session user
func (s *Store) CurrentUser() (models.User, bool) {
	user := s.currentUser()
	if user == nil {
		return models.User{}, false
	}
	return deepCopy(s.logger, *user), true
}

// User returns a copy of a directory user
func (s *Store) User(id string) (models.User, bool) {
	idx := s.userIndex(id)
	if idx < 0 {
		return models.User{}, false
	}
	return deepCopy(s.logger, s.users[idx]), true
}

// Video returns a copy of a video
func (s *Store) Video(id string) (models.Video, bool) {
	idx := s.videoIndex(id)
	if idx < 0 {
		return models.Video{}, false
	}
	return deepCopy(s.logger, s.videos[idx]), true
}

func deepCopy[T any](logger *logging.Logger, src T) T {
	var dst T
	if err := copier.CopyWithOption(&dst, &src, copier.Option{DeepCopy: true}); err != nil {
		logger.ErrorWithErr("Failed to copy store state", err)
	}
	return dst
}
