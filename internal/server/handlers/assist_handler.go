package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tacovision/backend/internal/service/assist"
	"github.com/tacovision/backend/pkg/clients/anthropic"
)

// AssistHandler exposes the AI text-generation tools.
type AssistHandler struct {
	svc    *assist.Service
	logger *zap.Logger
}

// NewAssistHandler constructs the HTTP handler adapter.
func NewAssistHandler(svc *assist.Service, logger *zap.Logger) *AssistHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistHandler{svc: svc, logger: logger}
}

type forecastRequest struct {
	HistoricalData string `json:"historicalData" binding:"required"`
	DayOfWeek      string `json:"dayOfWeek" binding:"required"`
	SalesPatterns  string `json:"salesPatterns" binding:"required"`
}

// Forecast runs the inventory forecasting tool.
func (h *AssistHandler) Forecast(c *gin.Context) {
	var req forecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.svc.Forecast(c.Request.Context(), anthropic.ForecastInput{
		HistoricalData: req.HistoricalData,
		DayOfWeek:      req.DayOfWeek,
		SalesPatterns:  req.SalesPatterns,
	})
	if errors.Is(err, assist.ErrAssistDisabled) {
		c.JSON(http.StatusConflict, gin.H{"error": "ai assistance is not configured"})
		return
	}
	if err != nil {
		h.logger.Error("forecast failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to generate forecast"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ShipmentReport renders the model's formatted reorder report.
func (h *AssistHandler) ShipmentReport(c *gin.Context) {
	report, err := h.svc.ShipmentReport(c.Request.Context())
	if errors.Is(err, assist.ErrAssistDisabled) {
		c.JSON(http.StatusConflict, gin.H{"error": "ai assistance is not configured"})
		return
	}
	if err != nil {
		h.logger.Error("shipment report failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to generate shipment report"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shipmentList": report})
}
