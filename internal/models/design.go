package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

type OutputFormat string

const (
	FormatPDF       OutputFormat = "pdf"
	FormatHTMLEmail OutputFormat = "html_email"
)

// FieldConfig describes one column of a repository result. The slice
// order in DesignConfig.Fields is the display order; visibility is a
// separate axis and is applied at render time.
type FieldConfig struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Visible bool   `json:"visible"`
}

type ChartConfig struct {
	Type  string `json:"type"` // bar, pie or line
	XAxis string `json:"x_axis"`
	YAxis string `json:"y_axis"`
}

type BrandingConfig struct {
	HeaderText   string `json:"header_text"`
	LogoFilename string `json:"logo_filename,omitempty"`
}

// FilterConfig describes one user-suppliable query parameter. Filters
// are matched positionally to the repository query placeholders.
type FilterConfig struct {
	Label string `json:"label"`
	Name  string `json:"name"`
	Type  string `json:"type"`
}

// DesignConfig is the structured document stored in Design.ConfigJSON.
// Fields is a slice, not a map, so the declared order survives a
// serialize/deserialize round trip.
type DesignConfig struct {
	Fields      []FieldConfig   `json:"fields"`
	GroupBy     string          `json:"group_by_field,omitempty"`
	TotalFields []string        `json:"total_fields,omitempty"`
	Chart       *ChartConfig    `json:"chart,omitempty"`
	Branding    *BrandingConfig `json:"branding,omitempty"`
	Filters     []FilterConfig  `json:"filters,omitempty"`
}

// Design is a saved report definition. ScheduleDays holds a JSON array
// of lowercase day names ("mon".."sun") and ScheduleTime an "HH:MM"
// string; a design with both non-empty must have a scheduler job.
type Design struct {
	gorm.Model
	Name         string       `gorm:"not null" json:"name"`
	RepositoryID uint         `gorm:"not null" json:"repository_id"`
	OutputFormat OutputFormat `gorm:"default:pdf" json:"output_format"`
	ConfigJSON   string       `gorm:"type:text;not null" json:"-"`
	EmailTo      string       `json:"email_to"`
	EmailCC      string       `json:"email_cc"`
	ScheduleDays string       `json:"schedule_days"`
	ScheduleTime string       `json:"schedule_time"`

	Repository Repository `json:"-"`
}

func (d *Design) Config() (DesignConfig, error) {
	var cfg DesignConfig
	if d.ConfigJSON == "" {
		return cfg, nil
	}
	err := json.Unmarshal([]byte(d.ConfigJSON), &cfg)
	return cfg, err
}

func (d *Design) SetConfig(cfg DesignConfig) error {
	raw, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	d.ConfigJSON = string(raw)
	return nil
}

// ScheduleDayList decodes ScheduleDays; malformed or empty JSON yields
// an empty list, which the scheduler treats as "not scheduled".
func (d *Design) ScheduleDayList() []string {
	if d.ScheduleDays == "" {
		return nil
	}
	var days []string
	if err := json.Unmarshal([]byte(d.ScheduleDays), &days); err != nil {
		return nil
	}
	return days
}

func (d *Design) SetScheduleDays(days []string) error {
	raw, err := json.Marshal(days)
	if err != nil {
		return err
	}
	d.ScheduleDays = string(raw)
	return nil
}
