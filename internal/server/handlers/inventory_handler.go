package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tacovision/backend/internal/domain/models"
	"github.com/tacovision/backend/internal/repository/mongodb"
	"github.com/tacovision/backend/internal/service/inventory"
)

// InventoryHandler handles inventory, budget and audit log HTTP operations.
type InventoryHandler struct {
	svc    *inventory.Service
	logger *zap.Logger
}

// NewInventoryHandler constructs the HTTP handler adapter.
func NewInventoryHandler(svc *inventory.Service, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{svc: svc, logger: logger}
}

// List returns every inventory item with its derived status.
func (h *InventoryHandler) List(c *gin.Context) {
	views, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list inventory", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load inventory"})
		return
	}
	c.JSON(http.StatusOK, views)
}

type addItemRequest struct {
	Name      string `json:"name" binding:"required"`
	Category  string `json:"category" binding:"required"`
	Stock     int    `json:"stock"`
	Threshold int    `json:"threshold"`
	Type      string `json:"type" binding:"required"`
}

// Add creates a new inventory item.
func (h *InventoryHandler) Add(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	view, err := h.svc.AddItem(c.Request.Context(), CurrentUser(c), models.InventoryItem{
		Name:      req.Name,
		Category:  models.Category(req.Category),
		Stock:     req.Stock,
		Threshold: req.Threshold,
		Type:      models.ItemType(req.Type),
	})
	if errors.Is(err, inventory.ErrInvalidItem) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("failed to add inventory item", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to add item"})
		return
	}

	c.JSON(http.StatusCreated, view)
}

type updateStockRequest struct {
	Stock *int `json:"stock" binding:"required"`
}

// UpdateStock sets a new stock level for an item.
func (h *InventoryHandler) UpdateStock(c *gin.Context) {
	var req updateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	view, err := h.svc.UpdateStock(c.Request.Context(), CurrentUser(c), c.Param("id"), *req.Stock)
	switch {
	case errors.Is(err, inventory.ErrInvalidItem):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, mongodb.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
	case err != nil:
		h.logger.Error("failed to update stock", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to update stock"})
	default:
		c.JSON(http.StatusOK, view)
	}
}

// Shipment returns the reorder report, optionally exporting it to the
// supplier spreadsheet.
func (h *InventoryHandler) Shipment(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("export") == "true" {
		lines, err := h.svc.ExportShipmentOrder(ctx, CurrentUser(c))
		if errors.Is(err, inventory.ErrExportUnavailable) {
			c.JSON(http.StatusConflict, gin.H{"error": "shipment export is not configured"})
			return
		}
		if err != nil {
			h.logger.Error("failed to export shipment order", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "unable to export shipment order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"lines": lines, "exported": true})
		return
	}

	lines, err := h.svc.ShipmentOrder(ctx)
	if err != nil {
		h.logger.Error("failed to compute shipment order", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to compute shipment order"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lines": lines, "exported": false})
}

// Budget returns the derived budget summary.
func (h *InventoryHandler) Budget(c *gin.Context) {
	summary, err := h.svc.Budget(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to load budget", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load budget"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

type updateBudgetRequest struct {
	Budget             float64 `json:"budget" binding:"required"`
	Spent              float64 `json:"spent"`
	Period             string  `json:"period"`
	OverstockThreshold float64 `json:"overstockThreshold" binding:"required"`
}

// UpdateBudget replaces the budget snapshot.
func (h *InventoryHandler) UpdateBudget(c *gin.Context) {
	var req updateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.svc.UpdateBudget(c.Request.Context(), CurrentUser(c), models.BudgetSnapshot{
		Budget:             req.Budget,
		Spent:              req.Spent,
		Period:             req.Period,
		OverstockThreshold: req.OverstockThreshold,
	})
	if errors.Is(err, inventory.ErrInvalidBudget) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		h.logger.Error("failed to update budget", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to update budget"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Audit returns the most recent audit log entries.
func (h *InventoryHandler) Audit(c *gin.Context) {
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "50"), 10, 64)
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	entries, err := h.svc.AuditTrail(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("failed to list audit logs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to load audit log"})
		return
	}
	c.JSON(http.StatusOK, entries)
}
