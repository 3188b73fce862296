package discovery

import (
	"fmt"
	"sort"
	"time"

	"github.com/therealutkarshpriyadarshi/nexus/pkg/models"
)

// AdminStats are the headline counters of the admin console
type AdminStats struct {
	TotalViews     int64
	MonetizedUsers int
	VerifiedUsers  int
	PendingReports int
	CriticalLogs   int
}

// ComputeAdminStats aggregates the admin counters
func ComputeAdminStats(users []models.User, videos []models.Video, reports []models.Report, logs []models.SystemLog) AdminStats {
	var stats AdminStats
	for _, v := range videos {
		stats.TotalViews += v.Views
	}
	for _, u := range users {
		if u.Monetized {
			stats.MonetizedUsers++
		}
		if u.IsVerified {
			stats.VerifiedUsers++
		}
	}
	for i := range reports {
		if reports[i].IsPending() {
			stats.PendingReports++
		}
	}
	for i := range logs {
		if logs[i].IsCritical() {
			stats.CriticalLogs++
		}
	}
	return stats
}

// AlertAction is the follow-up an alert suggests
type AlertAction string

const (
	AlertActionModeration AlertAction = "moderation"
	AlertActionAudit      AlertAction = "audit"
)

// AlertSeverity grades an alert
type AlertSeverity string

const (
	AlertSeverityInfo    AlertSeverity = "info"
	AlertSeverityWarning AlertSeverity = "warning"
	AlertSeverityAlert   AlertSeverity = "alert"
)

// Alert is one entry of the admin alert feed
type Alert struct {
	ID        string
	Title     string
	Message   string
	Timestamp time.Time
	Severity  AlertSeverity
	Action    AlertAction
}

// AdminAlerts builds one alert per pending report and one per warning or
// danger log, newest first
func AdminAlerts(reports []models.Report, logs []models.SystemLog) []Alert {
	alerts := make([]Alert, 0)

	for i := range reports {
		r := &reports[i]
		if !r.IsPending() {
			continue
		}
		alerts = append(alerts, Alert{
			ID:        "alert-rep-" + r.ID,
			Title:     fmt.Sprintf("Pending Report: %s", r.Type),
			Message:   fmt.Sprintf("%s reported %s for \"%s\"", r.ReporterName, r.TargetName, r.Reason),
			Timestamp: r.CreatedAt,
			Severity:  AlertSeverityWarning,
			Action:    AlertActionModeration,
		})
	}

	for i := range logs {
		l := &logs[i]
		if !l.IsCritical() {
			continue
		}
		severity := AlertSeverityInfo
		if l.Type == models.LogTypeDanger {
			severity = AlertSeverityAlert
		}
		alerts = append(alerts, Alert{
			ID:        "alert-log-" + l.ID,
			Title:     fmt.Sprintf("System Alert: %s", l.Action),
			Message:   fmt.Sprintf("Activity detected on %s", l.Target),
			Timestamp: l.Timestamp,
			Severity:  severity,
			Action:    AlertActionAudit,
		})
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Timestamp.After(alerts[j].Timestamp)
	})
	return alerts
}
