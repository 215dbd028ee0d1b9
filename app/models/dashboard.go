package models

import "github.com/shopspring/decimal"

// FinanceDashboard is the admin overview: headline counts, current-month
// money movement, and the latest ledger activity. All figures are read
// projections; nothing here is stored.
type FinanceDashboard struct {
	TotalStudents     int             `json:"total_students"`
	TotalClasses      int             `json:"total_classes"`
	MonthIncome       decimal.Decimal `json:"month_income"`
	MonthExpense      decimal.Decimal `json:"month_expense"`
	TotalExpected     decimal.Decimal `json:"total_expected"`
	TotalCollected    decimal.Decimal `json:"total_collected"`
	FeeCollectionRate decimal.Decimal `json:"fee_collection_rate"`

	RecentTransactions []*Transaction `json:"recent_transactions"`
}
