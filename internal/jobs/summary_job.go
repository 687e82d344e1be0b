package jobs

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/reportpilot/internal/mailer"
	"github.com/reportpilot/internal/models"
	"github.com/reportpilot/internal/summary"
)

const defaultSummaryName = "Resumen Diario Ventas"

// RunDailySummaryJob is the cron entry point for the daily digest.
func (r *Runner) RunDailySummaryJob() {
	if err := r.RunDailySummary(context.Background()); err != nil {
		r.log.Error("daily summary failed", "error", err)
	}
}

// RunDailySummary executes the summary query, renders the digest with
// its two trend charts embedded by content-id, and emails it. One
// audit row is written per attempted send.
func (r *Runner) RunDailySummary(ctx context.Context) error {
	cfg, err := r.store.GetDailySummaryConfig()
	if err != nil {
		return fmt.Errorf("failed to load daily summary config: %w", err)
	}
	if !cfg.IsEnabled {
		r.log.Info("daily summary disabled, skipping")
		return nil
	}

	reportName := defaultSummaryName
	recipients := cfg.Recipients

	run := func() error {
		if cfg.ConnectionID == nil {
			return fmt.Errorf("daily summary connection is not configured")
		}
		if recipients == "" {
			return fmt.Errorf("daily summary recipients are not configured")
		}
		if cfg.SQLQuery == "" {
			return fmt.Errorf("daily summary query is not configured")
		}
		settings, err := r.store.GetSettings()
		if err != nil || !settings.Configured() {
			return fmt.Errorf("SMTP server is not configured")
		}

		db, cleanup, err := r.executor.OpenConnection(ctx, *cfg.ConnectionID)
		if err != nil {
			return err
		}
		defer cleanup()

		rows, err := db.QueryContext(ctx, cfg.SQLQuery)
		if err != nil {
			return fmt.Errorf("daily summary query: %w", err)
		}
		defer rows.Close()

		data, err := summary.Read(rows)
		if err != nil {
			return err
		}

		// Chart failures degrade to a digest without that chart.
		var images []mailer.InlineImage
		if png, err := summary.Chart30Days(data.Daily30); err != nil {
			r.log.Warn("30-day chart failed", "error", err)
		} else {
			images = append(images, mailer.InlineImage{CID: summary.CIDChart30Days, Content: png})
		}
		if png, err := summary.Chart12Months(data.Monthly12); err != nil {
			r.log.Warn("12-month chart failed", "error", err)
		} else {
			images = append(images, mailer.InlineImage{CID: summary.CIDChart12Months, Content: png})
		}

		var body bytes.Buffer
		err = r.summaryTmpl.Execute(&body, map[string]interface{}{
			"Data":       data,
			"TodayDate":  time.Now().Format("02/01/2006"),
			"CIDChart30": summary.CIDChart30Days,
			"CIDChart12": summary.CIDChart12Months,
		})
		if err != nil {
			return fmt.Errorf("failed to render daily summary: %v", err)
		}

		subject := cfg.Subject
		if subject == "" {
			subject = "Cierre de Ventas Diario Empresa: %empresa%"
		}
		if data.CompanyName != "" {
			subject = strings.ReplaceAll(subject, "%empresa%", data.CompanyName)
			reportName = "Resumen Diario " + data.CompanyName
		}

		sent, err := r.mailer.Send(settings, mailer.SplitAddressList(recipients), nil,
			subject, body.String(), true, nil, images)
		if err != nil {
			return err
		}
		if !sent {
			return fmt.Errorf("no valid recipients")
		}
		return nil
	}

	if err := run(); err != nil {
		logRecipients := recipients
		if logRecipients == "" {
			logRecipients = "N/A"
		}
		if logErr := r.store.LogEmail(reportName, logRecipients, models.StatusFailed, err.Error()); logErr != nil {
			r.log.Error("failed to write audit row", "error", logErr)
		}
		return err
	}

	if err := r.store.LogEmail(reportName, recipients, models.StatusSent, ""); err != nil {
		r.log.Error("failed to write audit row", "error", err)
	}
	r.log.Info("daily summary sent", "report", reportName)
	return nil
}
