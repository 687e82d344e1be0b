package store

import "github.com/reportpilot/internal/models"

// LogEmail appends one audit row. Unknown statuses are recorded as
// failed rather than rejected; the audit trail must never lose a send
// attempt.
func (s *Store) LogEmail(reportName, recipients, status, errorMessage string) error {
	switch status {
	case models.StatusSent, models.StatusFailed, models.StatusSkipped:
	default:
		status = models.StatusFailed
	}
	row := models.EmailLog{
		ReportName:   reportName,
		Recipients:   recipients,
		Status:       status,
		ErrorMessage: errorMessage,
	}
	return s.db.Create(&row).Error
}

func (s *Store) ListEmailLogs(limit int) ([]models.EmailLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var rows []models.EmailLog
	err := s.db.Order("timestamp DESC").Limit(limit).Find(&rows).Error
	return rows, err
}
