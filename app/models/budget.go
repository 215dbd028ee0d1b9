package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a planning period. Exactly one budget per school can be current,
// tracked by an explicit active-budget pointer row rather than a soft flag.
type Budget struct {
	ID          string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	SchoolID    string          `json:"school_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Name        string          `json:"name" gorm:"not null" validate:"required"`
	StartDate   time.Time       `json:"start_date" gorm:"not null;type:date" validate:"required"`
	EndDate     time.Time       `json:"end_date" gorm:"not null;type:date" validate:"required"`
	TotalAmount decimal.Decimal `json:"total_amount" gorm:"not null;type:numeric(12,2)"`
	IsActive    bool            `json:"is_active" gorm:"default:false"`
	CreatedAt   time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   *time.Time      `json:"deleted_at,omitempty" gorm:"index"`

	Items []*BudgetItem `json:"items,omitempty" gorm:"foreignKey:BudgetID;references:ID"` // optional for JSON responses
}

// BudgetItem is one planned-vs-actual line per account. ActualAmount is
// derived at read time by summing ledger transactions for the account within
// the budget's date range; it is never stored.
type BudgetItem struct {
	ID             string          `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	BudgetID       string          `json:"budget_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	AccountID      string          `json:"account_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	BudgetedAmount decimal.Decimal `json:"budgeted_amount" gorm:"not null;type:numeric(12,2)" validate:"required"`
	Description    string          `json:"description,omitempty" gorm:"type:text"`
	CreatedAt      time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"autoUpdateTime"`

	AccountName string      `json:"account_name,omitempty" gorm:"-"`
	AccountCode string      `json:"account_code,omitempty" gorm:"-"`
	AccountType AccountType `json:"account_type,omitempty" gorm:"-"`

	// Derived at read time.
	ActualAmount   decimal.Decimal `json:"actual_amount" gorm:"-"`
	Variance       decimal.Decimal `json:"variance" gorm:"-"`
	PercentageUsed decimal.Decimal `json:"percentage_used" gorm:"-"`
}

// Alert thresholds, in percent. Fixed policy constants.
var (
	nearBudgetThreshold = decimal.NewFromInt(80)
	overBudgetThreshold = decimal.NewFromInt(100)
	hundred             = decimal.NewFromInt(100)
)

// Compute fills the derived fields from ActualAmount and BudgetedAmount.
func (bi *BudgetItem) Compute() {
	bi.Variance = bi.ActualAmount.Sub(bi.BudgetedAmount)
	if bi.BudgetedAmount.IsPositive() {
		bi.PercentageUsed = bi.ActualAmount.Div(bi.BudgetedAmount).Mul(hundred)
	} else {
		bi.PercentageUsed = decimal.Zero
	}
}

// IsOverBudget reports whether usage exceeds 100%.
func (bi *BudgetItem) IsOverBudget() bool {
	return bi.PercentageUsed.GreaterThan(overBudgetThreshold)
}

// IsNearBudget reports whether usage is above 80% but not over budget.
// Exactly 100% counts as near-budget, not over-budget.
func (bi *BudgetItem) IsNearBudget() bool {
	return bi.PercentageUsed.GreaterThan(nearBudgetThreshold) && !bi.IsOverBudget()
}

// BudgetAlerts groups the items that crossed the warning thresholds.
type BudgetAlerts struct {
	OverBudget []*BudgetItem `json:"over_budget"`
	NearBudget []*BudgetItem `json:"near_budget"`
}

// ClassifyBudgetAlerts is a pure function over computed items; callers must
// have called Compute on each item first.
func ClassifyBudgetAlerts(items []*BudgetItem) *BudgetAlerts {
	alerts := &BudgetAlerts{
		OverBudget: []*BudgetItem{},
		NearBudget: []*BudgetItem{},
	}
	for _, item := range items {
		switch {
		case item.IsOverBudget():
			alerts.OverBudget = append(alerts.OverBudget, item)
		case item.IsNearBudget():
			alerts.NearBudget = append(alerts.NearBudget, item)
		}
	}
	return alerts
}

// BudgetSummary is the aggregate rollup across a budget's items, split by
// account type for income-achievement and expense-control reporting.
type BudgetSummary struct {
	TotalBudgeted decimal.Decimal `json:"total_budgeted"`
	TotalActual   decimal.Decimal `json:"total_actual"`
	TotalVariance decimal.Decimal `json:"total_variance"`

	IncomeBudgeted  decimal.Decimal `json:"income_budgeted"`
	IncomeActual    decimal.Decimal `json:"income_actual"`
	ExpenseBudgeted decimal.Decimal `json:"expense_budgeted"`
	ExpenseActual   decimal.Decimal `json:"expense_actual"`
}

// SummarizeBudgetItems rolls up computed items into budget-level totals.
func SummarizeBudgetItems(items []*BudgetItem) *BudgetSummary {
	s := &BudgetSummary{
		TotalBudgeted:   decimal.Zero,
		TotalActual:     decimal.Zero,
		TotalVariance:   decimal.Zero,
		IncomeBudgeted:  decimal.Zero,
		IncomeActual:    decimal.Zero,
		ExpenseBudgeted: decimal.Zero,
		ExpenseActual:   decimal.Zero,
	}
	for _, item := range items {
		s.TotalBudgeted = s.TotalBudgeted.Add(item.BudgetedAmount)
		s.TotalActual = s.TotalActual.Add(item.ActualAmount)
		switch item.AccountType {
		case AccountIncome:
			s.IncomeBudgeted = s.IncomeBudgeted.Add(item.BudgetedAmount)
			s.IncomeActual = s.IncomeActual.Add(item.ActualAmount)
		case AccountExpense:
			s.ExpenseBudgeted = s.ExpenseBudgeted.Add(item.BudgetedAmount)
			s.ExpenseActual = s.ExpenseActual.Add(item.ActualAmount)
		}
	}
	s.TotalVariance = s.TotalActual.Sub(s.TotalBudgeted)
	return s
}
