package assist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tacovision/backend/internal/repository/mongodb"
	"github.com/tacovision/backend/pkg/clients/anthropic"
)

// ErrAssistDisabled indicates no AI client is configured.
var ErrAssistDisabled = errors.New("ai assistance is not configured")

// Service wraps the text-generation tools: inventory forecasting and the
// formatted shipment report. Both delegate the analysis to the hosted model;
// this service only assembles the inputs.
type Service struct {
	repo   mongodb.Repository
	ai     anthropic.Client
	logger *zap.Logger
}

// NewService wires a new assist service. ai may be nil when the feature is
// disabled.
func NewService(repo mongodb.Repository, ai anthropic.Client, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, ai: ai, logger: logger}
}

// Forecast predicts upcoming inventory needs from historical data and sales
// patterns for a given day of the week.
func (s *Service) Forecast(ctx context.Context, input anthropic.ForecastInput) (anthropic.ForecastResult, error) {
	if s.ai == nil {
		return anthropic.ForecastResult{}, ErrAssistDisabled
	}
	return s.ai.ForecastInventory(ctx, input)
}

// ShipmentReport renders the current inventory into the model's spreadsheet-like
// reorder report.
func (s *Service) ShipmentReport(ctx context.Context) (string, error) {
	if s.ai == nil {
		return "", ErrAssistDisabled
	}

	items, err := s.repo.ListInventory(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "%s: stock %d, threshold %d\n", item.Name, item.Stock, item.Threshold)
	}

	return s.ai.ShipmentReport(ctx, b.String())
}
