package pooling

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for compliance pools.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new pooling handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers pool endpoints.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	pools := router.Group("/pools")
	{
		pools.POST("", h.createPool)
		pools.GET("", h.listPools)
		pools.GET("/:id", h.getPool)
		pools.DELETE("/:id", h.deletePool)
	}
}

// createPool handles POST /api/v1/pools
func (h *Handler) createPool(c *gin.Context) {
	var req CreatePoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pool, err := h.service.CreatePool(c.Request.Context(), &req)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"valid":  false,
				"errors": verr.Violations,
			})
			return
		}
		h.logger.Error("Failed to create pool", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, pool)
}

// listPools handles GET /api/v1/pools
func (h *Handler) listPools(c *gin.Context) {
	var year *int
	if value := c.Query("year"); value != "" {
		y, err := strconv.Atoi(value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		year = &y
	}

	pools, err := h.service.ListPools(c.Request.Context(), year)
	if err != nil {
		h.logger.Error("Failed to list pools", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"pools": pools})
}

// getPool handles GET /api/v1/pools/:id
func (h *Handler) getPool(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pool ID"})
		return
	}

	pool, err := h.service.GetPool(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to get pool", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, pool)
}

// deletePool handles DELETE /api/v1/pools/:id
func (h *Handler) deletePool(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid pool ID"})
		return
	}

	if err := h.service.DeletePool(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to delete pool", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
