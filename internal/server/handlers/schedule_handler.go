package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tacovision/backend/internal/service/schedule"
)

// ScheduleHandler handles schedule upload and the derived schedule views.
type ScheduleHandler struct {
	svc    *schedule.Service
	logger *zap.Logger
}

// NewScheduleHandler constructs the HTTP handler adapter.
func NewScheduleHandler(svc *schedule.Service, logger *zap.Logger) *ScheduleHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleHandler{svc: svc, logger: logger}
}

type uploadRequest struct {
	PDFDataURI string `json:"pdfDataUri" binding:"required"`
}

// Upload runs AI extraction over a schedule PDF and stores the result under
// the current week's key.
func (h *ScheduleHandler) Upload(c *gin.Context) {
	var req uploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.svc.Upload(c.Request.Context(), CurrentUser(c), req.PDFDataURI)
	switch {
	case errors.Is(err, schedule.ErrUnrecognizedDocument):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, schedule.ErrExtractionUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": "schedule extraction is not configured"})
	case err != nil:
		h.logger.Error("schedule upload failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to process schedule document"})
	default:
		c.JSON(http.StatusCreated, result)
	}
}

// Current returns the raw schedule document for this week.
func (h *ScheduleHandler) Current(c *gin.Context) {
	result, err := h.svc.Current(c.Request.Context())
	if errors.Is(err, schedule.ErrNoSchedule) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no schedule uploaded for this week"})
		return
	}
	if err != nil {
		h.logger.Error("failed to load schedule", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load schedule"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// Mine returns the caller's shifts for this week in day order.
func (h *ScheduleHandler) Mine(c *gin.Context) {
	shifts, err := h.svc.ShiftsFor(c.Request.Context(), CurrentUser(c).ID)
	if errors.Is(err, schedule.ErrNoSchedule) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no schedule uploaded for this week"})
		return
	}
	if err != nil {
		h.logger.Error("failed to load user shifts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load shifts"})
		return
	}
	c.JSON(http.StatusOK, shifts)
}

// Today returns the caller's shift for today, if any.
func (h *ScheduleHandler) Today(c *gin.Context) {
	shift, onShift, err := h.svc.TodayShift(c.Request.Context(), CurrentUser(c).ID)
	if errors.Is(err, schedule.ErrNoSchedule) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no schedule uploaded for this week"})
		return
	}
	if err != nil {
		h.logger.Error("failed to load today's shift", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load shift"})
		return
	}

	if !onShift {
		c.JSON(http.StatusOK, gin.H{"onShift": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"onShift": true, "shift": shift})
}

// ByDay returns the week's schedule grouped per canonical day.
func (h *ScheduleHandler) ByDay(c *gin.Context) {
	days, err := h.svc.ByDay(c.Request.Context())
	if errors.Is(err, schedule.ErrNoSchedule) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no schedule uploaded for this week"})
		return
	}
	if err != nil {
		h.logger.Error("failed to load day view", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load schedule"})
		return
	}
	c.JSON(http.StatusOK, days)
}
