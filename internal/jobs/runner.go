package jobs

import (
	"fmt"
	"html/template"
	"path/filepath"

	"github.com/reportpilot/internal/logger"
	"github.com/reportpilot/internal/mailer"
	"github.com/reportpilot/internal/query"
	"github.com/reportpilot/internal/report"
	"github.com/reportpilot/internal/store"
)

// Runner executes triggered jobs: scheduled report sends and the daily
// summary digest. Each run opens its own database and SMTP
// connections; nothing is shared between runs.
type Runner struct {
	store       *store.Store
	pipeline    *report.Pipeline
	executor    *query.Executor
	mailer      *mailer.Mailer
	summaryTmpl *template.Template
	log         *logger.Logger
}

func NewRunner(st *store.Store, pipeline *report.Pipeline, executor *query.Executor, m *mailer.Mailer, templatesDir string, log *logger.Logger) (*Runner, error) {
	path := filepath.Join(templatesDir, "daily_summary", "email_body.html")
	tmpl, err := template.ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load daily summary template: %v", err)
	}
	return &Runner{
		store:       st,
		pipeline:    pipeline,
		executor:    executor,
		mailer:      m,
		summaryTmpl: tmpl,
		log:         log,
	}, nil
}
