package inventory

import "github.com/tacovision/backend/internal/domain/models"

// warningPercentage is the spend level past which the budget view raises a
// warning flag.
const warningPercentage = 90

// SummarizeBudget computes the spend percentage and warning flag for a budget
// snapshot. A zero budget yields 0%, never a division by zero.
func SummarizeBudget(snapshot models.BudgetSnapshot) models.BudgetSummary {
	var percentage float64
	if snapshot.Budget > 0 {
		percentage = snapshot.Spent / snapshot.Budget * 100
	}

	return models.BudgetSummary{
		Budget:     snapshot.Budget,
		Spent:      snapshot.Spent,
		Period:     snapshot.Period,
		Percentage: percentage,
		Warning:    percentage > warningPercentage,
	}
}
