package models

// DailySummaryConfig drives the fixed daily sales digest. A single row
// with ID 1 is kept in the database. The query text is expected to
// produce twelve result sets in a fixed order; see the summary package.
type DailySummaryConfig struct {
	ID           uint   `gorm:"primarykey" json:"-"`
	IsEnabled    bool   `gorm:"default:false" json:"is_enabled"`
	ConnectionID *uint  `json:"connection_id"`
	Subject      string `json:"subject"`
	Recipients   string `json:"recipients"`
	ScheduleTime string `json:"schedule_time"`
	SQLQuery     string `gorm:"type:text" json:"sql_query"`
}
