package database

import (
	"database/sql"
	"time"

	"edutrack/app/models"

	"github.com/shopspring/decimal"
)

// GetFinanceDashboard assembles the admin overview in a handful of read
// queries. Everything is derived; slow-changing counts are not cached.
func GetFinanceDashboard(db *sql.DB, schoolID string, now time.Time) (*models.FinanceDashboard, error) {
	d := &models.FinanceDashboard{
		MonthIncome:       decimal.Zero,
		MonthExpense:      decimal.Zero,
		TotalExpected:     decimal.Zero,
		TotalCollected:    decimal.Zero,
		FeeCollectionRate: decimal.Zero,
	}

	err := db.QueryRow(`SELECT COUNT(*) FROM students WHERE school_id = $1 AND is_active = true AND deleted_at IS NULL`,
		schoolID).Scan(&d.TotalStudents)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow(`SELECT COUNT(*) FROM classes WHERE school_id = $1 AND deleted_at IS NULL`,
		schoolID).Scan(&d.TotalClasses)
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)
	err = db.QueryRow(`SELECT
			COALESCE(SUM(amount) FILTER (WHERE type = 'INCOME'), 0),
			COALESCE(SUM(amount) FILTER (WHERE type = 'EXPENSE'), 0)
			FROM transactions
			WHERE school_id = $1 AND deleted_at IS NULL AND date >= $2 AND date < $3`,
		schoolID, monthStart, monthEnd).Scan(&d.MonthIncome, &d.MonthExpense)
	if err != nil {
		return nil, err
	}

	summaries, err := GetClassFeeCollectionSummaries(db, schoolID, "")
	if err != nil {
		return nil, err
	}
	for _, s := range summaries {
		d.TotalExpected = d.TotalExpected.Add(s.TotalExpected)
		d.TotalCollected = d.TotalCollected.Add(s.TotalCollected)
	}
	if d.TotalExpected.IsPositive() {
		d.FeeCollectionRate = d.TotalCollected.Div(d.TotalExpected).Mul(decimal.NewFromInt(100))
	}

	d.RecentTransactions, err = GetTransactions(db, schoolID, TransactionFilters{Limit: 10})
	if err != nil {
		return nil, err
	}

	return d, nil
}
