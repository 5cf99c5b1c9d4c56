package inventory

import (
	"math"
	"testing"

	"github.com/tacovision/backend/internal/domain/models"
)

func TestSummarizeBudget(t *testing.T) {
	tests := []struct {
		name           string
		spent          float64
		budget         float64
		wantPercentage float64
		wantWarning    bool
	}{
		{"typical weekly spend", 7650, 10000, 76.5, false},
		{"zero budget", 500, 0, 0, false},
		{"nothing spent", 0, 10000, 0, false},
		{"at warning boundary", 9000, 10000, 90, false},
		{"past warning boundary", 9001, 10000, 90.01, true},
		{"overspent", 12000, 10000, 120, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := SummarizeBudget(models.BudgetSnapshot{Budget: tt.budget, Spent: tt.spent, Period: "Weekly"})
			if math.Abs(summary.Percentage-tt.wantPercentage) > 1e-9 {
				t.Errorf("percentage = %v, want %v", summary.Percentage, tt.wantPercentage)
			}
			if summary.Warning != tt.wantWarning {
				t.Errorf("warning = %v, want %v", summary.Warning, tt.wantWarning)
			}
			if summary.Period != "Weekly" {
				t.Errorf("period = %q, want Weekly", summary.Period)
			}
		})
	}
}
