package compliance

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for compliance operations.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new compliance handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers compliance endpoints.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/compliance")
	{
		group.GET("/summary", h.fleetSummary)
		group.GET("/summary/export", h.exportFleetSummary)
		group.GET("/:shipId", h.status)
		group.POST("/:shipId/recompute", h.recompute)
	}
}

// recompute handles POST /api/v1/compliance/:shipId/recompute
func (h *Handler) recompute(c *gin.Context) {
	shipID := c.Param("shipId")
	year, ok := h.yearParam(c)
	if !ok {
		return
	}

	record, err := h.service.Recompute(c.Request.Context(), shipID, year)
	if err != nil {
		h.logger.Error("Failed to recompute compliance record",
			zap.String("ship_id", shipID), zap.Int("year", year), zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, record)
}

// status handles GET /api/v1/compliance/:shipId
func (h *Handler) status(c *gin.Context) {
	shipID := c.Param("shipId")
	year, ok := h.yearParam(c)
	if !ok {
		return
	}

	status, err := h.service.Status(c.Request.Context(), shipID, year)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to get compliance status", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, status)
}

// fleetSummary handles GET /api/v1/compliance/summary
func (h *Handler) fleetSummary(c *gin.Context) {
	year, ok := h.yearParam(c)
	if !ok {
		return
	}

	summary, err := h.service.FleetSummary(c.Request.Context(), year)
	if err != nil {
		h.logger.Error("Failed to build fleet summary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"year": year, "ships": summary})
}

// exportFleetSummary handles GET /api/v1/compliance/summary/export
func (h *Handler) exportFleetSummary(c *gin.Context) {
	year, ok := h.yearParam(c)
	if !ok {
		return
	}

	filename := fmt.Sprintf("fleet-compliance-%d-%s.xlsx", year, time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := h.service.ExportFleetSummary(c.Request.Context(), c.Writer, year); err != nil {
		h.logger.Error("Failed to export fleet summary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
}

func (h *Handler) yearParam(c *gin.Context) (int, bool) {
	value := c.Query("year")
	if value == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year query parameter is required"})
		return 0, false
	}

	year, err := strconv.Atoi(value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
		return 0, false
	}

	return year, true
}
