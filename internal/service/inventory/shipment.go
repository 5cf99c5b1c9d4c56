package inventory

import "github.com/tacovision/backend/internal/domain/models"

// ShipmentNeeds computes the reorder quantity for each item below its
// threshold, treating the threshold as the target stock level. Items at or
// above threshold are excluded entirely rather than reported with a zero.
// Input order is preserved.
func ShipmentNeeds(items []models.InventoryItem) []models.ShipmentLine {
	lines := make([]models.ShipmentLine, 0, len(items))
	for _, item := range items {
		need := item.Threshold - item.Stock
		if need <= 0 {
			continue
		}
		lines = append(lines, models.ShipmentLine{
			Item:        item.Name,
			Stock:       item.Stock,
			Threshold:   item.Threshold,
			NeedToOrder: need,
		})
	}
	return lines
}
