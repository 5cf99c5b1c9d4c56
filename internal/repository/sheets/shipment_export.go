package sheets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/tacovision/backend/internal/config"
	"github.com/tacovision/backend/internal/domain/models"
)

const shipmentRange = "Shipments!A:F"

// Exporter appends shipment order rows to the supplier spreadsheet.
type Exporter interface {
	ExportShipmentOrder(ctx context.Context, requestedBy string, lines []models.ShipmentLine) error
}

// GoogleSheetExporter implements the Exporter interface using the official
// Google Sheets API.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
	now           func() time.Time
}

// NewGoogleSheetExporter builds a Google Sheets backed exporter instance.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Exporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
		now:           time.Now,
	}, nil
}

// ExportShipmentOrder appends one row per reorder line, stamped with the
// requesting manager and export time.
func (e *GoogleSheetExporter) ExportShipmentOrder(ctx context.Context, requestedBy string, lines []models.ShipmentLine) error {
	if len(lines) == 0 {
		return fmt.Errorf("shipment order is empty, nothing to export")
	}

	stamp := e.now().Format(time.RFC3339)
	rows := make([][]interface{}, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, []interface{}{stamp, requestedBy, line.Item, line.Stock, line.Threshold, line.NeedToOrder})
	}

	payload := &sheetsapi.ValueRange{Values: rows}
	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, shipmentRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append shipment rows into range %s: %w", shipmentRange, err)
	}

	e.logger.Debug("shipment order exported", zap.Int("lines", len(lines)), zap.String("requested_by", requestedBy))
	return nil
}
