package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func item(budgeted, actual string, accountType AccountType) *BudgetItem {
	bi := &BudgetItem{
		BudgetedAmount: decimal.RequireFromString(budgeted),
		ActualAmount:   decimal.RequireFromString(actual),
		AccountType:    accountType,
	}
	bi.Compute()
	return bi
}

func TestBudgetItemCompute(t *testing.T) {
	bi := item("1000", "750", AccountExpense)

	assert.True(t, bi.Variance.Equal(decimal.RequireFromString("-250")))
	assert.True(t, bi.PercentageUsed.Equal(decimal.RequireFromString("75")))
}

func TestBudgetItemComputeZeroBudget(t *testing.T) {
	bi := item("0", "500", AccountExpense)

	assert.True(t, bi.PercentageUsed.IsZero())
	assert.False(t, bi.IsOverBudget())
	assert.False(t, bi.IsNearBudget())
}

func TestBudgetThresholds(t *testing.T) {
	tests := []struct {
		name     string
		budgeted string
		actual   string
		over     bool
		near     bool
	}{
		{"well under", "1000", "799.99", false, false},
		{"just above near threshold", "1000", "800.01", false, true},
		{"exactly at limit counts as near", "1000", "1000", false, true},
		{"a cent over the limit", "1000", "1000.01", true, false},
		{"far over", "1000", "1500", true, false},
		{"exactly at near threshold is not near", "1000", "800", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bi := item(tt.budgeted, tt.actual, AccountExpense)
			assert.Equal(t, tt.over, bi.IsOverBudget())
			assert.Equal(t, tt.near, bi.IsNearBudget())
		})
	}
}

func TestClassifyBudgetAlerts(t *testing.T) {
	under := item("1000", "500", AccountExpense)
	near := item("1000", "900", AccountExpense)
	atLimit := item("1000", "1000", AccountExpense)
	over := item("1000", "1200", AccountExpense)

	alerts := ClassifyBudgetAlerts([]*BudgetItem{under, near, atLimit, over})

	assert.Len(t, alerts.OverBudget, 1)
	assert.Same(t, over, alerts.OverBudget[0])
	assert.Len(t, alerts.NearBudget, 2)
	assert.Contains(t, alerts.NearBudget, near)
	assert.Contains(t, alerts.NearBudget, atLimit)
}

func TestSummarizeBudgetItems(t *testing.T) {
	items := []*BudgetItem{
		item("5000", "4200", AccountIncome),
		item("2000", "2500", AccountExpense),
		item("1000", "300", AccountExpense),
	}

	s := SummarizeBudgetItems(items)

	assert.True(t, s.TotalBudgeted.Equal(decimal.RequireFromString("8000")))
	assert.True(t, s.TotalActual.Equal(decimal.RequireFromString("7000")))
	assert.True(t, s.TotalVariance.Equal(decimal.RequireFromString("-1000")))
	assert.True(t, s.IncomeBudgeted.Equal(decimal.RequireFromString("5000")))
	assert.True(t, s.IncomeActual.Equal(decimal.RequireFromString("4200")))
	assert.True(t, s.ExpenseBudgeted.Equal(decimal.RequireFromString("3000")))
	assert.True(t, s.ExpenseActual.Equal(decimal.RequireFromString("2800")))
}
