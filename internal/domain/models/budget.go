package models

// BudgetSnapshot is the single current budget document stored under
// settings/budget.
type BudgetSnapshot struct {
	Budget             float64 `bson:"budget" json:"budget"`
	Spent              float64 `bson:"spent" json:"spent"`
	Period             string  `bson:"period" json:"period"`
	OverstockThreshold float64 `bson:"overstockThreshold" json:"overstockThreshold"`
}

// BudgetSummary is the derived view of a snapshot.
type BudgetSummary struct {
	Budget     float64 `json:"budget"`
	Spent      float64 `json:"spent"`
	Period     string  `json:"period"`
	Percentage float64 `json:"percentage"`
	Warning    bool    `json:"warning"`
}
