package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/tacovision/backend/internal/domain/models"
	"github.com/tacovision/backend/internal/repository/mongodb"
	"github.com/tacovision/backend/internal/repository/sheets"
)

// ErrInvalidItem indicates the submitted inventory payload failed validation.
var ErrInvalidItem = errors.New("invalid inventory item")

// ErrInvalidBudget indicates the submitted budget payload failed validation.
var ErrInvalidBudget = errors.New("invalid budget")

// ErrExportUnavailable indicates no spreadsheet export is configured.
var ErrExportUnavailable = errors.New("shipment export is not configured")

// defaultPeriod labels the budget cycle; the dashboard only runs weekly.
const defaultPeriod = "Weekly"

// Service implements inventory CRUD with status derivation, the budget
// tracker and the shipment reorder report. Every mutation appends an audit
// log entry attributed to the acting user.
type Service struct {
	repo              mongodb.Repository
	exporter          sheets.Exporter
	defaultMultiplier float64
	logger            *zap.Logger
	now               func() time.Time
}

// NewService wires a new inventory service instance. exporter may be nil when
// no spreadsheet export is configured.
func NewService(repo mongodb.Repository, exporter sheets.Exporter, defaultMultiplier float64, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:              repo,
		exporter:          exporter,
		defaultMultiplier: defaultMultiplier,
		logger:            logger,
		now:               time.Now,
	}
}

// List returns every inventory item decorated with its derived status.
func (s *Service) List(ctx context.Context) ([]models.InventoryItemView, error) {
	items, err := s.repo.ListInventory(ctx)
	if err != nil {
		return nil, err
	}

	multiplier := s.overstockMultiplier(ctx)
	views := make([]models.InventoryItemView, 0, len(items))
	for _, item := range items {
		views = append(views, models.InventoryItemView{
			InventoryItem: item,
			Status:        Classify(item.Stock, item.Threshold, multiplier),
		})
	}
	return views, nil
}

// AddItem validates and stores a new inventory item.
func (s *Service) AddItem(ctx context.Context, actor models.User, item models.InventoryItem) (models.InventoryItemView, error) {
	if err := validateItem(item); err != nil {
		return models.InventoryItemView{}, err
	}

	item.ID = primitive.NewObjectID().Hex()
	if err := s.repo.InsertInventoryItem(ctx, item); err != nil {
		return models.InventoryItemView{}, err
	}

	s.audit(ctx, actor.Name, models.ActionAddedItem, item.Name)
	s.logger.Info("inventory item added", zap.String("item", item.Name), zap.String("by", actor.Name))

	return models.InventoryItemView{
		InventoryItem: item,
		Status:        Classify(item.Stock, item.Threshold, s.overstockMultiplier(ctx)),
	}, nil
}

// UpdateStock sets a new stock level and records the change. Dropping below
// the reorder threshold additionally flags the item in the audit log.
func (s *Service) UpdateStock(ctx context.Context, actor models.User, id string, stock int) (models.InventoryItemView, error) {
	if stock < 0 {
		return models.InventoryItemView{}, fmt.Errorf("%w: stock must not be negative", ErrInvalidItem)
	}

	if err := s.repo.UpdateInventoryStock(ctx, id, stock); err != nil {
		return models.InventoryItemView{}, err
	}

	item, err := s.repo.GetInventoryItem(ctx, id)
	if err != nil {
		return models.InventoryItemView{}, err
	}

	s.audit(ctx, actor.Name, models.ActionUpdatedStock, item.Name)

	status := Classify(item.Stock, item.Threshold, s.overstockMultiplier(ctx))
	if status == models.StatusLowStock || status == models.StatusOutOfStock {
		s.audit(ctx, actor.Name, models.ActionFlaggedLow, item.Name)
	}

	return models.InventoryItemView{InventoryItem: item, Status: status}, nil
}

// ShipmentOrder computes the current reorder report.
func (s *Service) ShipmentOrder(ctx context.Context) ([]models.ShipmentLine, error) {
	items, err := s.repo.ListInventory(ctx)
	if err != nil {
		return nil, err
	}
	return ShipmentNeeds(items), nil
}

// ExportShipmentOrder computes the reorder report and appends it to the
// supplier spreadsheet.
func (s *Service) ExportShipmentOrder(ctx context.Context, actor models.User) ([]models.ShipmentLine, error) {
	if s.exporter == nil {
		return nil, ErrExportUnavailable
	}

	lines, err := s.ShipmentOrder(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.exporter.ExportShipmentOrder(ctx, actor.Name, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

// Budget returns the derived view of the current budget snapshot. A missing
// snapshot reads as an empty weekly budget rather than an error.
func (s *Service) Budget(ctx context.Context) (models.BudgetSummary, error) {
	snapshot, err := s.repo.GetBudget(ctx)
	if errors.Is(err, mongodb.ErrNotFound) {
		snapshot = models.BudgetSnapshot{Period: defaultPeriod, OverstockThreshold: s.defaultMultiplier}
	} else if err != nil {
		return models.BudgetSummary{}, err
	}

	return SummarizeBudget(snapshot), nil
}

// UpdateBudget validates and stores a new budget snapshot.
func (s *Service) UpdateBudget(ctx context.Context, actor models.User, snapshot models.BudgetSnapshot) error {
	if snapshot.Budget <= 0 {
		return fmt.Errorf("%w: budget must be positive", ErrInvalidBudget)
	}
	if snapshot.Spent < 0 {
		return fmt.Errorf("%w: spent must not be negative", ErrInvalidBudget)
	}
	if snapshot.OverstockThreshold < 1 {
		return fmt.Errorf("%w: overstock threshold must be at least 1", ErrInvalidBudget)
	}
	if snapshot.Period == "" {
		snapshot.Period = defaultPeriod
	}

	if err := s.repo.SaveBudget(ctx, snapshot); err != nil {
		return err
	}

	s.audit(ctx, actor.Name, models.ActionUpdatedBudget, snapshot.Period)
	return nil
}

// RolloverBudget resets the spent amount at the start of a new budget week.
// Called by the cron scheduler; a missing snapshot is a no-op.
func (s *Service) RolloverBudget(ctx context.Context) error {
	snapshot, err := s.repo.GetBudget(ctx)
	if errors.Is(err, mongodb.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	snapshot.Spent = 0
	if err := s.repo.SaveBudget(ctx, snapshot); err != nil {
		return err
	}

	s.audit(ctx, "system", models.ActionBudgetRollover, snapshot.Period)
	s.logger.Info("budget rolled over", zap.Float64("budget", snapshot.Budget))
	return nil
}

// AuditTrail returns the most recent audit entries.
func (s *Service) AuditTrail(ctx context.Context, limit int64) ([]models.AuditLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.repo.ListAuditLogs(ctx, limit)
}

// overstockMultiplier reads the configured multiplier from the budget
// snapshot, falling back to the deployment default.
func (s *Service) overstockMultiplier(ctx context.Context) float64 {
	snapshot, err := s.repo.GetBudget(ctx)
	if err != nil || snapshot.OverstockThreshold <= 0 {
		return s.defaultMultiplier
	}
	return snapshot.OverstockThreshold
}

func (s *Service) audit(ctx context.Context, user, action, item string) {
	entry := models.AuditLogEntry{
		ID:        primitive.NewObjectID().Hex(),
		User:      user,
		Action:    action,
		Item:      item,
		Timestamp: s.now(),
	}
	if err := s.repo.AppendAuditLog(ctx, entry); err != nil {
		s.logger.Error("failed to append audit log", zap.String("action", action), zap.Error(err))
	}
}

func validateItem(item models.InventoryItem) error {
	switch {
	case item.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidItem)
	case !item.Category.Valid():
		return fmt.Errorf("%w: unknown category %q", ErrInvalidItem, item.Category)
	case !item.Type.Valid():
		return fmt.Errorf("%w: unknown type %q", ErrInvalidItem, item.Type)
	case item.Stock < 0:
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidItem)
	case item.Threshold < 0:
		return fmt.Errorf("%w: threshold must not be negative", ErrInvalidItem)
	}
	return nil
}
