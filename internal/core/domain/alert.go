package domain

import "time"

// AlertType classifies a system notification.
type AlertType string

const (
	AlertWarning AlertType = "warning"
	AlertInfo    AlertType = "info"
	AlertSuccess AlertType = "success"
)

// Valid reports whether t is a known alert type.
func (t AlertType) Valid() bool {
	switch t {
	case AlertWarning, AlertInfo, AlertSuccess:
		return true
	}
	return false
}

// Alert is a system-wide notification. Alerts are append-only; the read flag is
// the only field that changes after creation, and only from false to true.
type Alert struct {
	ID        string
	Type      AlertType
	Title     string
	Message   string
	IsRead    bool
	CreatedAt time.Time
}
