package banking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the surplus bank.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new banking handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers banking endpoints.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/banking")
	{
		group.POST("/:shipId/bank", h.bank)
		group.POST("/:shipId/apply", h.apply)
		group.GET("/:shipId", h.balance)
		group.GET("/:shipId/history", h.history)
	}
}

// bank handles POST /api/v1/banking/:shipId/bank
func (h *Handler) bank(c *gin.Context) {
	var req MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.service.Bank(c.Request.Context(), c.Param("shipId"), req.Year, req.Amount)
	if err != nil {
		if errors.Is(err, ErrInsufficientSurplus) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to bank surplus", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// apply handles POST /api/v1/banking/:shipId/apply
func (h *Handler) apply(c *gin.Context) {
	var req MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.service.Apply(c.Request.Context(), c.Param("shipId"), req.Year, req.Amount)
	if err != nil {
		if errors.Is(err, ErrInsufficientBanked) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to apply banked surplus", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// balance handles GET /api/v1/banking/:shipId
func (h *Handler) balance(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year query parameter is required"})
		return
	}

	total, err := h.service.Balance(c.Request.Context(), c.Param("shipId"), year)
	if err != nil {
		h.logger.Error("Failed to get banked balance", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ship_id": c.Param("shipId"),
		"year":    year,
		"banked":  total,
	})
}

// history handles GET /api/v1/banking/:shipId/history
func (h *Handler) history(c *gin.Context) {
	entries, err := h.service.History(c.Request.Context(), c.Param("shipId"))
	if err != nil {
		h.logger.Error("Failed to list bank history", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
