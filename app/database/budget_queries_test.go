package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edutrack/app/models"
)

func TestSetActiveBudget(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM budgets`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec(`INSERT INTO active_budgets`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE budgets SET is_active = false`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE budgets SET is_active = true`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := SetActiveBudget(db, "school-1", "budget-2")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetActiveBudgetUnknownBudget(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM budgets`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	err := SetActiveBudget(db, "school-1", "budget-x")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddBudgetItemRejectsDuplicateAccount(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM budgets`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`INSERT INTO budget_items`).
		WillReturnError(&pq.Error{Code: "23505"})

	err := AddBudgetItem(db, "school-1", &models.BudgetItem{
		BudgetID:       "budget-1",
		AccountID:      "acc-1",
		BudgetedAmount: decimal.RequireFromString("1000"),
	})
	assert.ErrorIs(t, err, ErrDuplicateItem)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBudgetWithActuals(t *testing.T) {
	db, mock := newMockDB(t)

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, school_id, name, start_date, end_date`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "school_id", "name", "start_date", "end_date", "total_amount", "is_active", "created_at", "updated_at",
		}).AddRow("budget-1", "school-1", "2026 Annual", start, end, "10000000", true, time.Now(), time.Now()))

	mock.ExpectQuery(`SELECT bi.id, bi.budget_id, bi.account_id`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "budget_id", "account_id", "budgeted_amount", "description",
			"created_at", "updated_at", "name", "code", "type", "actual",
		}).
			AddRow("item-1", "budget-1", "acc-1", "5000000", "Fee income", time.Now(), time.Now(), "Student Fee Income", "4100", "INCOME", "4200000").
			AddRow("item-2", "budget-1", "acc-2", "2000000", nil, time.Now(), time.Now(), "Salary Expense", "5100", "EXPENSE", "2500000"))

	budget, err := GetBudgetWithActuals(db, "school-1", "budget-1")
	require.NoError(t, err)
	require.Len(t, budget.Items, 2)

	income := budget.Items[0]
	assert.True(t, income.ActualAmount.Equal(decimal.RequireFromString("4200000")))
	assert.True(t, income.Variance.Equal(decimal.RequireFromString("-800000")))
	assert.True(t, income.PercentageUsed.Equal(decimal.RequireFromString("84")))
	assert.False(t, income.IsOverBudget())

	expense := budget.Items[1]
	assert.True(t, expense.PercentageUsed.Equal(decimal.RequireFromString("125")))
	assert.True(t, expense.IsOverBudget())
	assert.False(t, expense.IsNearBudget())

	alerts := models.ClassifyBudgetAlerts(budget.Items)
	assert.Len(t, alerts.OverBudget, 1)
	assert.Len(t, alerts.NearBudget, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}
