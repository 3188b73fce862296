package store

import (
	"fmt"
	"slices"
	"strings"

	"github.com/therealutkarshpriyadarshi/nexus/internal/persistence"
	"github.com/therealutkarshpriyadarshi/nexus/pkg/models"
)

// ReportAction is the moderator's decision on a pending report
type ReportAction string

const (
	ReportActionResolve ReportAction = "resolve"
	ReportActionDismiss ReportAction = "dismiss"
)

func (a ReportAction) status() (models.ReportStatus, bool) {
	switch a {
	case ReportActionResolve:
		return models.ReportStatusResolved, true
	case ReportActionDismiss:
		return models.ReportStatusDismissed, true
	default:
		return "", false
	}
}

// SubmitReport files a pending report by the session user against a video
// or another user.
func (s *Store) SubmitReport(reportType models.ReportType, targetID, reason string) (report models.Report, err error) {
	defer func() {
		s.record("submit_report", err, map[string]interface{}{"type": string(reportType), "target_id": targetID})
	}()

	user := s.currentUser()
	if user == nil {
		return models.Report{}, ErrNoSession
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return models.Report{}, ErrValidationFailed
	}

	var targetName string
	switch reportType {
	case models.ReportTypeVideo:
		idx := s.videoIndex(targetID)
		if idx < 0 {
			return models.Report{}, ErrNotFound
		}
		targetName = s.videos[idx].Title
	case models.ReportTypeUser:
		idx := s.userIndex(targetID)
		if idx < 0 {
			return models.Report{}, ErrNotFound
		}
		targetName = s.users[idx].Name
	default:
		return models.Report{}, ErrValidationFailed
	}

	report = models.Report{
		ID:           s.newID(),
		Type:         reportType,
		TargetID:     targetID,
		TargetName:   targetName,
		ReporterID:   user.ID,
		ReporterName: user.Name,
		Reason:       reason,
		Status:       models.ReportStatusPending,
		CreatedAt:    s.now(),
	}

	s.reports = prepend(s.reports, report)
	s.persist(persistence.KeyReports)
	s.appendLog("Report Filed", targetName, models.LogTypeWarning)
	return report, nil
}

// HandleReport moves a pending report to resolved or dismissed. Terminal
// reports are never reopened or re-transitioned.
func (s *Store) HandleReport(id string, action ReportAction) (err error) {
	defer func() {
		s.record("handle_report", err, map[string]interface{}{"report_id": id, "action": string(action)})
	}()

	if _, err := s.requireAdmin(); err != nil {
		return err
	}
	status, ok := action.status()
	if !ok {
		return ErrValidationFailed
	}

	idx := slices.IndexFunc(s.reports, func(r models.Report) bool { return r.ID == id })
	if idx < 0 {
		return ErrNotFound
	}
	report := &s.reports[idx]
	if !report.IsPending() {
		return ErrReportNotPending
	}

	report.Status = status
	s.persist(persistence.KeyReports)
	s.appendLog(fmt.Sprintf("Report %s", status), report.TargetName, models.LogTypeInfo)
	return nil
}

// BlockUser toggles the blocked flag of a user. Admins cannot block their
// own account.
func (s *Store) BlockUser(id string) (blocked bool, err error) {
	defer func() {
		s.record("block_user", err, map[string]interface{}{"target_id": id, "blocked": blocked})
	}()

	admin, err := s.requireAdmin()
	if err != nil {
		return false, err
	}
	if admin.ID == id {
		return false, ErrForbidden
	}

	target, err := s.targetUser(id)
	if err != nil {
		return false, err
	}

	target.IsBlocked = !target.IsBlocked
	blocked = target.IsBlocked
	s.persist(persistence.KeyUsers)

	if blocked {
		s.appendLog("User Blocked", target.Email, models.LogTypeDanger)
	} else {
		s.appendLog("User Unblocked", target.Email, models.LogTypeInfo)
	}
	return blocked, nil
}

// ToggleMonetization flips a user's monetized flag
func (s *Store) ToggleMonetization(id string) (monetized bool, err error) {
	defer func() {
		s.record("toggle_monetization", err, map[string]interface{}{"target_id": id, "monetized": monetized})
	}()

	if _, err := s.requireAdmin(); err != nil {
		return false, err
	}
	target, err := s.targetUser(id)
	if err != nil {
		return false, err
	}

	target.Monetized = !target.Monetized
	monetized = target.Monetized
	s.persist(persistence.KeyUsers, persistence.KeyCurrentUser)

	if monetized {
		s.appendLog("Monetization Enabled", target.Email, models.LogTypeSuccess)
	} else {
		s.appendLog("Monetization Disabled", target.Email, models.LogTypeWarning)
	}
	return monetized, nil
}

// ToggleVerification flips a user's verified badge
func (s *Store) ToggleVerification(id string) (verified bool, err error) {
	defer func() {
		s.record("toggle_verification", err, map[string]interface{}{"target_id": id, "verified": verified})
	}()

	if _, err := s.requireAdmin(); err != nil {
		return false, err
	}
	target, err := s.targetUser(id)
	if err != nil {
		return false, err
	}

	target.IsVerified = !target.IsVerified
	verified = target.IsVerified
	s.persist(persistence.KeyUsers, persistence.KeyCurrentUser)

	action := "Verification Revoked"
	if verified {
		action = "Verification Granted"
	}
	s.appendLog(action, target.Email, models.LogTypeInfo)
	return verified, nil
}

// WarnUser increments a user's warning count and notifies them
func (s *Store) WarnUser(id, reason string) (err error) {
	defer func() {
		s.record("warn_user", err, map[string]interface{}{"target_id": id})
	}()

	if _, err := s.requireAdmin(); err != nil {
		return err
	}
	target, err := s.targetUser(id)
	if err != nil {
		return err
	}

	target.WarningCount++
	s.persist(persistence.KeyUsers, persistence.KeyCurrentUser)
	s.appendLog("User Warned", target.Email, models.LogTypeWarning)

	message := "Your account received a warning from the moderation team."
	if reason = strings.TrimSpace(reason); reason != "" {
		message = fmt.Sprintf("Your account received a warning: %s", reason)
	}
	s.pushNotification(target.ID, "Community Guidelines Warning", message, models.NotificationTypeWarning)
	return nil
}

// ModerateDeleteVideo removes a video as a moderation action
func (s *Store) ModerateDeleteVideo(id string) (err error) {
	defer func() {
		s.record("moderate_delete_video", err, map[string]interface{}{"video_id": id})
	}()

	if _, err := s.requireAdmin(); err != nil {
		return err
	}
	idx := s.videoIndex(id)
	if idx < 0 {
		return ErrNotFound
	}

	title := s.videos[idx].Title
	s.videos = slices.Delete(s.videos, idx, idx+1)
	s.persist(persistence.KeyVideos)
	s.appendLog("Video Removed", title, models.LogTypeDanger)
	return nil
}

// ModerateDeleteComment removes a comment as a moderation action
func (s *Store) ModerateDeleteComment(id string) (err error) {
	defer func() {
		s.record("moderate_delete_comment", err, map[string]interface{}{"comment_id": id})
	}()

	if _, err := s.requireAdmin(); err != nil {
		return err
	}
	idx := s.commentIndex(id)
	if idx < 0 {
		return ErrNotFound
	}

	author := s.comments[idx].UserName
	s.comments = slices.Delete(s.comments, idx, idx+1)
	s.persist(persistence.KeyComments)
	s.appendLog("Comment Removed", author, models.LogTypeWarning)
	return nil
}

func (s *Store) targetUser(id string) (*models.User, error) {
	idx := s.userIndex(id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	return &s.users[idx], nil
}
