package models

import "gorm.io/gorm"

// Repository is a named parameterized SQL query bound to one
// connection. Placeholders in the query text are matched positionally
// to the filter values of the designs built on top of it.
type Repository struct {
	gorm.Model
	Name         string `gorm:"not null" json:"name"`
	Description  string `json:"description"`
	SQLQuery     string `gorm:"type:text;not null" json:"sql_query"`
	ConnectionID uint   `gorm:"not null" json:"connection_id"`

	Connection Connection `json:"-"`
}
