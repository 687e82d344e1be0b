package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reportpilot/internal/api"
	"github.com/reportpilot/internal/config"
	"github.com/reportpilot/internal/database"
	"github.com/reportpilot/internal/jobs"
	"github.com/reportpilot/internal/logger"
	"github.com/reportpilot/internal/mailer"
	"github.com/reportpilot/internal/query"
	"github.com/reportpilot/internal/report"
	"github.com/reportpilot/internal/scheduler"
	"github.com/reportpilot/internal/store"
)

func main() {
	root := &cobra.Command{
		Use:   "reportpilot",
		Short: "Scheduled business report server",
	}
	root.AddCommand(serveCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server and job scheduler",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	cfg := config.LoadConfig()

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if err := database.Initialize(cfg.Database.Path); err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer database.Close()

	st := store.New(database.GetDB(), cfg.Uploads.Dir, log)
	executor := query.NewExecutor(st, log)

	pipeline, err := report.NewPipeline(st, executor, report.NewPDFConverter(cfg.PDF.WkhtmltopdfPath), cfg.Templates.Dir, log)
	if err != nil {
		return fmt.Errorf("init report pipeline: %w", err)
	}

	m := mailer.New(log)
	runner, err := jobs.NewRunner(st, pipeline, executor, m, cfg.Templates.Dir, log)
	if err != nil {
		return fmt.Errorf("init job runner: %w", err)
	}

	cronStore := scheduler.NewCronJobStore()
	reconciler := scheduler.NewReconciler(cronStore, st, log, runner.RunScheduledReport, runner.RunDailySummaryJob)
	if err := reconciler.SyncAll(); err != nil {
		log.Warn("schedule sync failed on startup", "error", err)
	}
	cronStore.Start()
	defer cronStore.Stop()

	server := api.NewServer(st, executor, pipeline, runner, reconciler, cfg.Auth.JWTSecret, log)
	log.Info("server starting", "port", cfg.Server.Port)
	return server.Start(cfg.Server.Port)
}
