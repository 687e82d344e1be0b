package models

// Settings holds the SMTP transport configuration. A single row with
// ID 1 is kept in the database.
type Settings struct {
	ID           uint   `gorm:"primarykey" json:"-"`
	SMTPServer   string `json:"smtp_server"`
	SMTPPort     int    `json:"smtp_port"`
	SMTPUser     string `json:"smtp_user"`
	SMTPPassword string `json:"smtp_password"`
}

func (s *Settings) Configured() bool {
	return s.SMTPServer != "" && s.SMTPUser != ""
}
