package scheduler

import (
	"fmt"
	"strings"

	"github.com/reportpilot/internal/logger"
	"github.com/reportpilot/internal/models"
	"github.com/reportpilot/internal/store"
)

// DailySummaryJobID is the singleton job for the daily summary digest.
const DailySummaryJobID = "daily_summary_job"

// DesignJobID derives the deterministic job identity of a design, so
// reconciliation is idempotent across restarts.
func DesignJobID(designID uint) string {
	return fmt.Sprintf("report_job_%d", designID)
}

var validDays = map[string]bool{
	"mon": true, "tue": true, "wed": true, "thu": true,
	"fri": true, "sat": true, "sun": true,
}

// Reconciler keeps the job table consistent with the design rows and
// the daily-summary config. Each entity is either Scheduled or has no
// job; the transition runs on every save and once for the full set at
// startup.
type Reconciler struct {
	jobs       JobStore
	store      *store.Store
	log        *logger.Logger
	runReport  func(designID uint)
	runSummary func()
}

func NewReconciler(jobs JobStore, st *store.Store, log *logger.Logger, runReport func(uint), runSummary func()) *Reconciler {
	return &Reconciler{
		jobs:       jobs,
		store:      st,
		log:        log,
		runReport:  runReport,
		runSummary: runSummary,
	}
}

// SyncAll rebuilds the whole job table from the source-of-truth rows.
// Called once at startup; no persisted job state is trusted.
func (r *Reconciler) SyncAll() error {
	designs, err := r.store.ListDesigns()
	if err != nil {
		return fmt.Errorf("failed to list designs: %v", err)
	}
	for i := range designs {
		r.SyncDesign(&designs[i])
	}

	summary, err := r.store.GetDailySummaryConfig()
	if err != nil {
		return fmt.Errorf("failed to load daily summary config: %v", err)
	}
	r.SyncDailySummary(summary)
	return nil
}

// SyncDesign applies the design's target state to the job table. A
// malformed schedule time is logged and leaves the design unscheduled;
// it never propagates.
func (r *Reconciler) SyncDesign(design *models.Design) {
	jobID := DesignJobID(design.ID)
	days := design.ScheduleDayList()

	if design.ScheduleTime == "" || len(days) == 0 {
		r.jobs.Remove(jobID)
		return
	}

	spec, err := cronSpec(design.ScheduleTime, days)
	if err != nil {
		r.log.Warn("invalid schedule, leaving design unscheduled",
			"design", design.ID, "time", design.ScheduleTime, "error", err)
		r.jobs.Remove(jobID)
		return
	}

	designID := design.ID
	r.apply(jobID, spec, func() { r.runReport(designID) })
}

// RemoveDesign drops the design's job, if any.
func (r *Reconciler) RemoveDesign(designID uint) {
	r.jobs.Remove(DesignJobID(designID))
}

// SyncDailySummary applies the daily-summary target state: scheduled
// every day at the configured time while enabled.
func (r *Reconciler) SyncDailySummary(cfg *models.DailySummaryConfig) {
	if !cfg.IsEnabled || cfg.ScheduleTime == "" {
		r.jobs.Remove(DailySummaryJobID)
		return
	}
	spec, err := cronSpec(cfg.ScheduleTime, nil)
	if err != nil {
		r.log.Warn("invalid daily summary schedule, leaving unscheduled",
			"time", cfg.ScheduleTime, "error", err)
		r.jobs.Remove(DailySummaryJobID)
		return
	}
	r.apply(DailySummaryJobID, spec, r.runSummary)
}

// apply is the Scheduled-state transition: identical spec is a no-op,
// a different spec updates in place, a missing job is created.
func (r *Reconciler) apply(jobID, spec string, cmd func()) {
	current, exists := r.jobs.Get(jobID)
	switch {
	case exists && current == spec:
		return
	case exists:
		if err := r.jobs.Modify(jobID, spec, cmd); err != nil {
			r.log.Error("failed to update job", "job", jobID, "spec", spec, "error", err)
		}
	default:
		if err := r.jobs.Add(jobID, spec, cmd); err != nil {
			r.log.Error("failed to create job", "job", jobID, "spec", spec, "error", err)
		}
	}
}

// cronSpec builds a five-field cron spec from an "HH:MM" time and a
// day-of-week list. An empty day list means every day.
func cronSpec(timeStr string, days []string) (string, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(strings.TrimSpace(timeStr), "%d:%d", &hour, &minute); err != nil {
		return "", fmt.Errorf("cannot parse time %q: %v", timeStr, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", fmt.Errorf("time %q out of range", timeStr)
	}

	dow := "*"
	if len(days) > 0 {
		cleaned := make([]string, 0, len(days))
		for _, d := range days {
			d = strings.ToLower(strings.TrimSpace(d))
			if !validDays[d] {
				return "", fmt.Errorf("unknown day %q", d)
			}
			cleaned = append(cleaned, d)
		}
		dow = strings.Join(cleaned, ",")
	}
	return fmt.Sprintf("%d %d * * %s", minute, hour, dow), nil
}
