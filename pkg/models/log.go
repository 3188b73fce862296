package models

import "time"

// SystemLog is an audit trail entry
type SystemLog struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Target    string    `json:"target"`
	Timestamp time.Time `json:"timestamp"`
	Type      LogType   `json:"type"`
}

// LogType is the severity tag of an audit entry
type LogType string

const (
	LogTypeInfo    LogType = "info"
	LogTypeWarning LogType = "warning"
	LogTypeDanger  LogType = "danger"
	LogTypeSuccess LogType = "success"
)

// IsCritical reports whether the entry should raise an admin alert
func (l *SystemLog) IsCritical() bool {
	return l.Type == LogTypeWarning || l.Type == LogTypeDanger
}
