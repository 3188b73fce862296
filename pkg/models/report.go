package models

import "time"

// Report is a moderation request filed against a video or a user
type Report struct {
	ID           string       `json:"id"`
	Type         ReportType   `json:"type"`
	TargetID     string       `json:"targetId"`
	TargetName   string       `json:"targetName"`
	ReporterID   string       `json:"reporterId"`
	ReporterName string       `json:"reporterName"`
	Reason       string       `json:"reason"`
	Status       ReportStatus `json:"status"`
	CreatedAt    time.Time    `json:"createdAt"`
}

// ReportType identifies what a report targets
type ReportType string

const (
	ReportTypeVideo ReportType = "video"
	ReportTypeUser  ReportType = "user"
)

// ReportStatus is the moderation lifecycle state
type ReportStatus string

// ReportStatus constants. pending moves to resolved or dismissed, never back.
const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

// IsTerminal reports whether the status can no longer change
func (s ReportStatus) IsTerminal() bool {
	return s == ReportStatusResolved || s == ReportStatusDismissed
}

// IsPending reports whether the report awaits moderation
func (r *Report) IsPending() bool {
	return r.Status == ReportStatusPending
}
