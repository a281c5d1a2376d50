package routes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for route records.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new routes handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers route endpoints.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	routes := router.Group("/routes")
	{
		routes.POST("", h.createRoute)
		routes.GET("", h.listRoutes)
		routes.GET("/comparison", h.compareToBaseline)
		routes.GET("/:id", h.getRoute)
		routes.DELETE("/:id", h.deleteRoute)
		routes.POST("/:id/baseline", h.setBaseline)
	}
}

// createRoute handles POST /api/v1/routes
func (h *Handler) createRoute(c *gin.Context) {
	var req CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	route, err := h.service.CreateRoute(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("Failed to create route", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, route)
}

// listRoutes handles GET /api/v1/routes
func (h *Handler) listRoutes(c *gin.Context) {
	filters := &RouteFilters{}
	if shipID := c.Query("ship_id"); shipID != "" {
		filters.ShipID = &shipID
	}
	if year, ok := h.getIntQuery(c, "year"); ok {
		filters.Year = &year
	}

	result, err := h.service.ListRoutes(c.Request.Context(), filters)
	if err != nil {
		h.logger.Error("Failed to list routes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"routes": result})
}

// getRoute handles GET /api/v1/routes/:id
func (h *Handler) getRoute(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid route ID"})
		return
	}

	route, err := h.service.GetRoute(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to get route", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, route)
}

// deleteRoute handles DELETE /api/v1/routes/:id
func (h *Handler) deleteRoute(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid route ID"})
		return
	}

	if err := h.service.DeleteRoute(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to delete route", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// setBaseline handles POST /api/v1/routes/:id/baseline
func (h *Handler) setBaseline(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid route ID"})
		return
	}

	if err := h.service.SetBaseline(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to set baseline", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"baseline": id})
}

// compareToBaseline handles GET /api/v1/routes/comparison
func (h *Handler) compareToBaseline(c *gin.Context) {
	comparisons, err := h.service.CompareToBaseline(c.Request.Context())
	if err != nil {
		if errors.Is(err, ErrNoBaseline) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to compare routes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comparisons": comparisons})
}

func (h *Handler) getIntQuery(c *gin.Context, name string) (int, bool) {
	value := c.Query(name)
	if value == "" {
		return 0, false
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}
	return n, true
}
