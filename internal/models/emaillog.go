package models

import "time"

// Audit statuses keep the values the settings database has always
// stored: sent, failed and skipped.
const (
	StatusSent    = "Enviado"
	StatusFailed  = "Fallido"
	StatusSkipped = "Omitido"
)

// EmailLog is an append-only audit row. Every attempted send produces
// exactly one row; rows are never updated or deleted.
type EmailLog struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Timestamp    time.Time `gorm:"autoCreateTime" json:"timestamp"`
	ReportName   string    `gorm:"not null" json:"report_name"`
	Recipients   string    `gorm:"not null" json:"recipients"`
	Status       string    `gorm:"not null" json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
}
