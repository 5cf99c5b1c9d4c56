package models

// Category identifies one of the fixed inventory groupings used across the
// restaurant's stock views.
type Category string

const (
	CategoryProtein   Category = "Protein"
	CategoryDairy     Category = "Dairy"
	CategoryProduce   Category = "Produce"
	CategorySauce     Category = "Sauce"
	CategoryTortilla  Category = "Tortilla"
	CategoryPackaging Category = "Packaging"
	CategoryDrink     Category = "Drink"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryProtein,
	CategoryDairy,
	CategoryProduce,
	CategorySauce,
	CategoryTortilla,
	CategoryPackaging,
	CategoryDrink,
}

// Valid reports whether the category is one of the fixed seven values.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ItemType distinguishes permanent menu stock from limited-time promotions.
type ItemType string

const (
	TypePermanent   ItemType = "Permanent"
	TypeLimitedTime ItemType = "Limited Time"
)

// Valid reports whether the item type is a known value.
func (t ItemType) Valid() bool {
	return t == TypePermanent || t == TypeLimitedTime
}

// StockStatus is the qualitative classification derived from stock and threshold.
type StockStatus string

const (
	StatusOutOfStock   StockStatus = "Out of Stock"
	StatusLowStock     StockStatus = "Low Stock"
	StatusNeedsRestock StockStatus = "Needs Restock"
	StatusOverstock    StockStatus = "Overstock"
	StatusOK           StockStatus = "OK"
)

// InventoryItem is one tracked stock line. Threshold is the reorder point; the
// shipment calculator also treats it as the target stock level to refill to.
type InventoryItem struct {
	ID        string   `bson:"_id,omitempty" json:"id"`
	Name      string   `bson:"name" json:"name"`
	Category  Category `bson:"category" json:"category"`
	Stock     int      `bson:"stock" json:"stock"`
	Threshold int      `bson:"threshold" json:"threshold"`
	Type      ItemType `bson:"type" json:"type"`
}

// InventoryItemView is an InventoryItem decorated with its derived status for
// API responses.
type InventoryItemView struct {
	InventoryItem
	Status StockStatus `json:"status"`
}

// ShipmentLine is one row of a reorder report. NeedToOrder is always positive;
// items at or above threshold never produce a line.
type ShipmentLine struct {
	Item        string `json:"item"`
	Stock       int    `json:"stock"`
	Threshold   int    `json:"threshold"`
	NeedToOrder int    `json:"needToOrder"`
}
