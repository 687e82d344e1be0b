package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/reportpilot/internal/auth"
	"github.com/reportpilot/internal/models"
	"github.com/reportpilot/internal/query"
	"github.com/reportpilot/internal/store"
)

func (s *Server) login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := s.store.VerifyUser(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(s.jwtSecret, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (s *Server) changePassword(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	username := c.GetString("username")
	if err := s.store.UpdatePassword(username, req.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "password updated"})
}

func (s *Server) getSettings(c *gin.Context) {
	settings, err := s.store.GetSettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) updateSettings(c *gin.Context) {
	var settings models.Settings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.store.UpdateSettings(&settings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) listConnections(c *gin.Context) {
	connections, err := s.store.ListConnections()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, connections)
}

func (s *Server) createConnection(c *gin.Context) {
	var conn connectionRequest
	if err := c.ShouldBindJSON(&conn); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	model := conn.model()
	if err := s.store.SaveConnection(model); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, model)
}

func (s *Server) updateConnection(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var conn connectionRequest
	if err := c.ShouldBindJSON(&conn); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	model := conn.model()
	model.ID = id
	if err := s.store.SaveConnection(model); err != nil {
		statusForStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, model)
}

func (s *Server) deleteConnection(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := s.store.DeleteConnection(id); err != nil {
		statusForStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) testConnection(c *gin.Context) {
	var conn connectionRequest
	if err := c.ShouldBindJSON(&conn); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	model := conn.model()
	// Testing a saved connection without re-typing the password uses
	// the stored one.
	if model.Password == "" && model.ID != 0 {
		saved, err := s.store.GetConnection(model.ID)
		if err == nil {
			model.Password = saved.Password
		}
	}
	if err := s.executor.TestConnection(c.Request.Context(), model); err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type connectionRequest struct {
	ID       uint   `json:"id"`
	Name     string `json:"name" binding:"required"`
	Server   string `json:"server" binding:"required"`
	Database string `json:"database" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password"`
	Driver   string `json:"driver"`
}

func (r connectionRequest) model() *models.Connection {
	conn := &models.Connection{
		Name:     r.Name,
		Server:   r.Server,
		Database: r.Database,
		Username: r.Username,
		Password: r.Password,
		Driver:   r.Driver,
	}
	conn.ID = r.ID
	return conn
}

func (s *Server) listRepositories(c *gin.Context) {
	repos, err := s.store.ListRepositories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, repos)
}

func (s *Server) createRepository(c *gin.Context) {
	var repo models.Repository
	if err := c.ShouldBindJSON(&repo); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.store.SaveRepository(&repo); err != nil {
		statusForStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, repo)
}

func (s *Server) updateRepository(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var repo models.Repository
	if err := c.ShouldBindJSON(&repo); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	repo.ID = id
	if err := s.store.SaveRepository(&repo); err != nil {
		statusForStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, repo)
}

func (s *Server) deleteRepository(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := s.store.DeleteRepository(id); err != nil {
		statusForStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *Server) repositoryColumns(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	columns, err := s.executor.DescribeColumns(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, query.ErrColumnsUnavailable) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		statusForStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"columns": columns})
}

func (s *Server) listEmailLogs(c *gin.Context) {
	limit := 100
	if l := c.Query("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil {
			limit = n
		}
	}
	logs, err := s.store.ListEmailLogs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

func statusForStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrInUse):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
