package inventory

import "github.com/tacovision/backend/internal/domain/models"

// Classify derives the qualitative stock status for an item. Rules are
// evaluated in order and the first match wins:
//
//  1. stock of 0 is Out of Stock regardless of threshold
//  2. below threshold is Low Stock
//  3. within 20% above threshold is Needs Restock
//  4. beyond threshold*multiplier is Overstock
//  5. everything else is OK
//
// A threshold of 0 with positive stock is OK; the ratio rules only apply when
// threshold is positive, so the function is total over its inputs.
func Classify(stock, threshold int, overstockMultiplier float64) models.StockStatus {
	if stock == 0 {
		return models.StatusOutOfStock
	}
	if threshold > 0 {
		ratio := float64(stock) / float64(threshold)
		if ratio < 1 {
			return models.StatusLowStock
		}
		if ratio < 1.2 {
			return models.StatusNeedsRestock
		}
		if float64(stock) > float64(threshold)*overstockMultiplier {
			return models.StatusOverstock
		}
	}
	return models.StatusOK
}
