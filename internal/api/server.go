package api

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/reportpilot/internal/auth"
	"github.com/reportpilot/internal/jobs"
	"github.com/reportpilot/internal/logger"
	"github.com/reportpilot/internal/query"
	"github.com/reportpilot/internal/report"
	"github.com/reportpilot/internal/scheduler"
	"github.com/reportpilot/internal/store"
)

type Server struct {
	store      *store.Store
	executor   *query.Executor
	pipeline   *report.Pipeline
	runner     *jobs.Runner
	reconciler *scheduler.Reconciler
	jwtSecret  []byte
	log        *logger.Logger
	router     *gin.Engine
}

func NewServer(st *store.Store, executor *query.Executor, pipeline *report.Pipeline, runner *jobs.Runner, reconciler *scheduler.Reconciler, jwtSecret string, log *logger.Logger) *Server {
	server := &Server{
		store:      st,
		executor:   executor,
		pipeline:   pipeline,
		runner:     runner,
		reconciler: reconciler,
		jwtSecret:  []byte(jwtSecret),
		log:        log,
		router:     gin.Default(),
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	// Public routes
	s.router.POST("/api/v1/auth/login", s.login)

	// Protected routes (require authentication)
	api := s.router.Group("/api/v1")
	api.Use(auth.AuthMiddleware(s.jwtSecret, s.store))

	api.PUT("/auth/password", s.changePassword)

	api.GET("/settings", s.getSettings)
	api.PUT("/settings", s.updateSettings)

	connections := api.Group("/connections")
	{
		connections.GET("", s.listConnections)
		connections.POST("", s.createConnection)
		connections.PUT("/:id", s.updateConnection)
		connections.DELETE("/:id", s.deleteConnection)
		connections.POST("/test", s.testConnection)
	}

	repositories := api.Group("/repositories")
	{
		repositories.GET("", s.listRepositories)
		repositories.POST("", s.createRepository)
		repositories.PUT("/:id", s.updateRepository)
		repositories.DELETE("/:id", s.deleteRepository)
		repositories.GET("/:id/columns", s.repositoryColumns)
	}

	designs := api.Group("/designs")
	{
		designs.GET("", s.listDesigns)
		designs.GET("/:id", s.getDesign)
		designs.POST("", s.createDesign)
		designs.PUT("/:id", s.updateDesign)
		designs.DELETE("/:id", s.deleteDesign)
		designs.POST("/:id/logo", s.uploadLogo)
		designs.POST("/:id/run", s.runDesign)
		designs.POST("/:id/send", s.sendDesign)
	}

	api.GET("/email-logs", s.listEmailLogs)

	api.GET("/daily-summary", s.getDailySummary)
	api.PUT("/daily-summary", s.updateDailySummary)
	api.POST("/daily-summary/run", s.runDailySummary)
}

func (s *Server) Start(port int) error {
	return s.router.Run(fmt.Sprintf(":%d", port))
}
