package api

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reportpilot/internal/models"
)

type designRequest struct {
	Name         string              `json:"name" binding:"required"`
	RepositoryID uint                `json:"repository_id" binding:"required"`
	OutputFormat models.OutputFormat `json:"output_format"`
	Config       models.DesignConfig `json:"config"`
	EmailTo      string              `json:"email_to"`
	EmailCC      string              `json:"email_cc"`
	ScheduleDays []string            `json:"schedule_days"`
	ScheduleTime string              `json:"schedule_time"`
}

type designResponse struct {
	ID           uint                `json:"id"`
	Name         string              `json:"name"`
	RepositoryID uint                `json:"repository_id"`
	OutputFormat models.OutputFormat `json:"output_format"`
	Config       models.DesignConfig `json:"config"`
	EmailTo      string              `json:"email_to"`
	EmailCC      string              `json:"email_cc"`
	ScheduleDays []string            `json:"schedule_days"`
	ScheduleTime string              `json:"schedule_time"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

func designView(d *models.Design) designResponse {
	cfg, _ := d.Config()
	return designResponse{
		ID:           d.ID,
		Name:         d.Name,
		RepositoryID: d.RepositoryID,
		OutputFormat: d.OutputFormat,
		Config:       cfg,
		EmailTo:      d.EmailTo,
		EmailCC:      d.EmailCC,
		ScheduleDays: d.ScheduleDayList(),
		ScheduleTime: d.ScheduleTime,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (r designRequest) apply(design *models.Design) error {
	design.Name = r.Name
	design.RepositoryID = r.RepositoryID
	design.OutputFormat = r.OutputFormat
	if design.OutputFormat == "" {
		design.OutputFormat = models.FormatPDF
	}
	design.EmailTo = r.EmailTo
	design.EmailCC = r.EmailCC
	design.ScheduleTime = r.ScheduleTime
	if err := design.SetScheduleDays(r.ScheduleDays); err != nil {
		return err
	}
	return design.SetConfig(r.Config)
}

func (s *Server) listDesigns(c *gin.Context) {
	designs, err := s.store.ListDesigns()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	views := make([]designResponse, 0, len(designs))
	for i := range designs {
		views = append(views, designView(&designs[i]))
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) getDesign(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	design, err := s.store.GetDesign(id)
	if err != nil {
		statusForStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, designView(design))
}

func (s *Server) createDesign(c *gin.Context) {
	var req designRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var design models.Design
	if err := req.apply(&design); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.store.SaveDesign(&design); err != nil {
		statusForStoreError(c, err)
		return
	}
	s.reconciler.SyncDesign(&design)
	c.JSON(http.StatusCreated, designView(&design))
}

func (s *Server) updateDesign(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	design, err := s.store.GetDesign(id)
	if err != nil {
		statusForStoreError(c, err)
		return
	}
	var req designRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// A logo uploaded earlier is kept unless the request names a new one.
	if req.Config.Branding == nil || req.Config.Branding.LogoFilename == "" {
		if cfg, cfgErr := design.Config(); cfgErr == nil && cfg.Branding != nil && cfg.Branding.LogoFilename != "" {
			if req.Config.Branding == nil {
				req.Config.Branding = &models.BrandingConfig{}
			}
			req.Config.Branding.LogoFilename = cfg.Branding.LogoFilename
		}
	}
	if err := req.apply(design); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.store.SaveDesign(design); err != nil {
		statusForStoreError(c, err)
		return
	}
	s.reconciler.SyncDesign(design)
	c.JSON(http.StatusOK, designView(design))
}

func (s *Server) deleteDesign(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := s.store.DeleteDesign(id); err != nil {
		statusForStoreError(c, err)
		return
	}
	s.reconciler.RemoveDesign(id)
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) uploadLogo(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	design, err := s.store.GetDesign(id)
	if err != nil {
		statusForStoreError(c, err)
		return
	}

	file, header, err := c.Request.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing logo file"})
		return
	}
	defer file.Close()
	content, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cfg, err := design.Config()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	previous := ""
	if cfg.Branding != nil {
		previous = cfg.Branding.LogoFilename
	}

	stored, err := s.store.SaveLogo(previous, header.Filename, content)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if cfg.Branding == nil {
		cfg.Branding = &models.BrandingConfig{}
	}
	cfg.Branding.LogoFilename = stored
	if err := design.SetConfig(cfg); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if err := s.store.SaveDesign(design); err != nil {
		statusForStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logo_filename": stored})
}

func (s *Server) runDesign(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	design, err := s.store.GetDesign(id)
	if err != nil {
		statusForStoreError(c, err)
		return
	}

	var req struct {
		Filters map[string]string `json:"filters"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	output, err := s.pipeline.Build(c.Request.Context(), design, req.Filters)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.Filename))
	c.Data(http.StatusOK, output.MIMEType, output.Bytes)
}

func (s *Server) sendDesign(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req struct {
		Filters map[string]string `json:"filters"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	if err := s.runner.SendDesign(c.Request.Context(), id, req.Filters); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}

func (s *Server) getDailySummary(c *gin.Context) {
	cfg, err := s.store.GetDailySummaryConfig()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

func (s *Server) updateDailySummary(c *gin.Context) {
	var cfg models.DailySummaryConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.store.UpdateDailySummaryConfig(&cfg); err != nil {
		statusForStoreError(c, err)
		return
	}
	s.reconciler.SyncDailySummary(&cfg)
	c.JSON(http.StatusOK, cfg)
}

func (s *Server) runDailySummary(c *gin.Context) {
	if err := s.runner.RunDailySummary(c.Request.Context()); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "sent"})
}
