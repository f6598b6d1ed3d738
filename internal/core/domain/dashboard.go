package domain

// Presentation constants shown on the dashboard. They are not derived from
// stored analyses or alerts.
const (
	TotalModules = 135
	ActiveUsers  = 847
	AIRatio      = "98.5%"
	SystemStatus = "Çevrimiçi"
	Uptime       = "99.9%"
)

// DashboardStats is the read model behind the dashboard header.
type DashboardStats struct {
	TotalModules   int
	ActiveModules  int
	ActiveUsers    int
	AIRatio        string
	SystemStatus   string
	Uptime         string
	TotalAnalyses  int64
	PendingCount   int64
	CompletedCount int64
}
