package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/reportpilot/internal/mailer"
	"github.com/reportpilot/internal/models"
)

// RunScheduledReport is the cron entry point for one design. Failures
// are logged to the process log and the audit table; they never
// propagate into the scheduler.
func (r *Runner) RunScheduledReport(designID uint) {
	r.log.Info("starting scheduled report", "design", designID)
	if err := r.SendDesign(context.Background(), designID, nil); err != nil {
		r.log.Error("scheduled report failed", "design", designID, "error", err)
	}
}

// SendDesign generates a design and emails it to its configured
// recipients. Every attempted send produces exactly one audit row.
func (r *Runner) SendDesign(ctx context.Context, designID uint, filterValues map[string]string) error {
	design, err := r.store.GetDesign(designID)
	if err != nil {
		// The design is gone; the job outlived its row. Nothing to
		// audit.
		r.log.Info("design no longer exists, skipping", "design", designID)
		return nil
	}

	reportName := design.Name
	recipientsDesc := fmt.Sprintf("A: %s | CC: %s", design.EmailTo, design.EmailCC)

	if design.EmailTo == "" {
		r.log.Info("report has no recipients, skipping", "design", designID)
		if err := r.store.LogEmail(reportName, recipientsDesc, models.StatusSkipped, "Sin destinatarios"); err != nil {
			r.log.Error("failed to write audit row", "error", err)
		}
		return nil
	}

	settings, err := r.store.GetSettings()
	if err != nil || !settings.Configured() {
		return r.fail(reportName, recipientsDesc, fmt.Errorf("SMTP server is not configured"))
	}

	output, err := r.pipeline.Build(ctx, design, filterValues)
	if err != nil {
		return r.fail(reportName, recipientsDesc, err)
	}

	subject := fmt.Sprintf("Reporte Programado: %s - %s", reportName, time.Now().Format("2006-01-02"))
	body := "Hola,\n\nSe adjunta el reporte generado automaticamente.\n\nSaludos."
	isHTML := false
	var attachment *mailer.Attachment

	if design.OutputFormat == models.FormatHTMLEmail {
		body = string(output.Bytes)
		isHTML = true
	} else {
		attachment = &mailer.Attachment{
			Filename: output.Filename,
			MIMEType: output.MIMEType,
			Content:  output.Bytes,
		}
	}

	sent, err := r.mailer.Send(settings,
		mailer.SplitAddressList(design.EmailTo),
		mailer.SplitAddressList(design.EmailCC),
		subject, body, isHTML, attachment, nil)
	if err != nil {
		return r.fail(reportName, recipientsDesc, err)
	}
	if !sent {
		if err := r.store.LogEmail(reportName, recipientsDesc, models.StatusSkipped, "Sin destinatarios validos"); err != nil {
			r.log.Error("failed to write audit row", "error", err)
		}
		return nil
	}

	if err := r.store.LogEmail(reportName, recipientsDesc, models.StatusSent, ""); err != nil {
		r.log.Error("failed to write audit row", "error", err)
	}
	r.log.Info("report sent", "design", designID, "report", reportName)
	return nil
}

func (r *Runner) fail(reportName, recipients string, cause error) error {
	if err := r.store.LogEmail(reportName, recipients, models.StatusFailed, cause.Error()); err != nil {
		r.log.Error("failed to write audit row", "error", err)
	}
	return cause
}
