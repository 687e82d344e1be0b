package models

import "gorm.io/gorm"

const (
	DriverSQLServer = "sqlserver"
	DriverMySQL     = "mysql"
	DriverPostgres  = "postgres"
)

// Connection is an external report data source. Repositories and the
// daily summary reference connections by id; a referenced connection
// cannot be deleted.
type Connection struct {
	gorm.Model
	Name     string `gorm:"not null" json:"name"`
	Server   string `gorm:"not null" json:"server"`
	Database string `gorm:"not null" json:"database"`
	Username string `gorm:"not null" json:"username"`
	Password string `gorm:"not null" json:"-"`
	Driver   string `gorm:"default:sqlserver" json:"driver"`
}
