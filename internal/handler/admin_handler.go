package handler

import (
	"errors"
	"strconv"

	"github.com/eggjam/eggjam-go/internal/model"
	"github.com/eggjam/eggjam-go/internal/service"
	"github.com/eggjam/eggjam-go/internal/store"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves platform administration: config documents, schools,
// student lists, and dashboard stats.
type AdminHandler struct {
	platform *service.PlatformService
	logger   *zap.Logger
}

// NewAdminHandler creates the admin handler.
func NewAdminHandler(platform *service.PlatformService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{platform: platform, logger: logger}
}

// Configs lists configurations, optionally filtered by ?category=.
func (h *AdminHandler) Configs(c *gin.Context) {
	configs, err := h.platform.Configs(c.Request.Context(), c.Query("category"))
	if err != nil {
		h.logger.Error("config list failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "config list failed"})
		return
	}
	c.JSON(200, gin.H{"configs": configs})
}

// Config loads one configuration.
func (h *AdminHandler) Config(c *gin.Context) {
	cfg, err := h.platform.Config(c.Request.Context(), c.Param("key"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(404, gin.H{"error": "config not found"})
		return
	}
	if err != nil {
		h.logger.Error("config load failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "config load failed"})
		return
	}
	c.JSON(200, cfg)
}

// CreateConfig inserts a new configuration document.
func (h *AdminHandler) CreateConfig(c *gin.Context) {
	var cfg model.PlatformConfig
	if err := c.ShouldBindJSON(&cfg); err != nil || cfg.Key == "" || len(cfg.Value) == 0 {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}

	err := h.platform.CreateConfig(c.Request.Context(), &cfg, c.ClientIP())
	if errors.Is(err, store.ErrConfigExists) {
		c.JSON(400, gin.H{"error": "config key already exists"})
		return
	}
	if err != nil {
		h.logger.Error("config create failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "config create failed"})
		return
	}
	c.JSON(200, cfg)
}

// UpdateConfig replaces a configuration value.
func (h *AdminHandler) UpdateConfig(c *gin.Context) {
	var update model.ConfigUpdateRequest
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}

	cfg, err := h.platform.UpdateConfig(c.Request.Context(), c.Param("key"), &update, c.ClientIP())
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(404, gin.H{"error": "config not found"})
		return
	}
	if err != nil {
		h.logger.Error("config update failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "config update failed"})
		return
	}
	c.JSON(200, cfg)
}

// Stats returns the dashboard counters.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.platform.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("stats load failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "stats load failed"})
		return
	}
	c.JSON(200, stats)
}

// CreateSchool registers a licensed school.
func (h *AdminHandler) CreateSchool(c *gin.Context) {
	var school model.School
	if err := c.ShouldBindJSON(&school); err != nil || school.Name == "" {
		c.JSON(400, gin.H{"error": "invalid request"})
		return
	}

	if err := h.platform.CreateSchool(c.Request.Context(), &school, c.GetString("user_id"), c.ClientIP()); err != nil {
		h.logger.Error("school create failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "school create failed"})
		return
	}
	c.JSON(200, school)
}

// Schools lists all schools.
func (h *AdminHandler) Schools(c *gin.Context) {
	schools, err := h.platform.Schools(c.Request.Context())
	if err != nil {
		h.logger.Error("school list failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "school list failed"})
		return
	}
	c.JSON(200, gin.H{"schools": schools})
}

// School loads one school.
func (h *AdminHandler) School(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("school_id"), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid school id"})
		return
	}

	school, err := h.platform.School(c.Request.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(404, gin.H{"error": "school not found"})
		return
	}
	if err != nil {
		h.logger.Error("school load failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "school load failed"})
		return
	}
	c.JSON(200, school)
}

// SchoolStudents lists accounts enrolled at a school.
func (h *AdminHandler) SchoolStudents(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("school_id"), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid school id"})
		return
	}

	students, err := h.platform.SchoolStudents(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("student list failed", zap.Error(err))
		c.JSON(500, gin.H{"error": "student list failed"})
		return
	}
	c.JSON(200, gin.H{"students": students})
}
