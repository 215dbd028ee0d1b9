package services

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edutrack/app/models"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func feeReceipt() *models.PaymentReceipt {
	return &models.PaymentReceipt{
		Payment: &models.StudentFeePayment{
			ID:       "pay-1",
			SchoolID: "school-1",
			Amount:   decimal.RequireFromString("50000"),
		},
		StudentName: "Amina Nakato",
		FeeTypeName: "Tuition",
	}
}

func TestPostFeeIncome(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO accounts`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("acc-1"))
	mock.ExpectQuery(`INSERT INTO transaction_sequences`).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO transactions`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("txn-1", time.Now(), time.Now()))
	mock.ExpectCommit()

	txn, err := PostFeeIncome(db, feeReceipt())
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("FEE-%d-0001", time.Now().Year()), txn.Reference)
	assert.Equal(t, models.TransactionIncome, txn.Type)
	assert.Equal(t, "acc-1", txn.AccountID)
	require.NotNil(t, txn.FeePaymentID)
	assert.Equal(t, "pay-1", *txn.FeePaymentID)
	assert.Contains(t, txn.Description, "Amina Nakato")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostFeeIncomeReusesExistingAccount(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	// ON CONFLICT DO NOTHING returns no row when the account already exists.
	mock.ExpectQuery(`INSERT INTO accounts`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(`SELECT id FROM accounts`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("acc-existing"))
	mock.ExpectQuery(`INSERT INTO transaction_sequences`).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(9))
	mock.ExpectQuery(`INSERT INTO transactions`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("txn-9", time.Now(), time.Now()))
	mock.ExpectCommit()

	txn, err := PostFeeIncome(db, feeReceipt())
	require.NoError(t, err)
	assert.Equal(t, "acc-existing", txn.AccountID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostFeeIncomeLoggedSwallowsFailure(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin().WillReturnError(errors.New("connection lost"))

	// Must not panic or propagate; the payment is already committed.
	PostFeeIncomeLogged(db, feeReceipt())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostStaffExpenseBonusPrefix(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO accounts`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("acc-exp"))
	mock.ExpectQuery(`INSERT INTO transaction_sequences`).
		WithArgs("school-1", "BON", time.Now().Year()).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(3))
	mock.ExpectQuery(`INSERT INTO transactions`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("txn-3", time.Now(), time.Now()))
	mock.ExpectCommit()

	sp := &models.StaffPayment{
		ID:          "sp-1",
		SchoolID:    "school-1",
		StaffID:     "staff-1",
		Amount:      decimal.RequireFromString("200000"),
		Type:        models.StaffPaymentBonus,
		PeriodStart: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
	}

	txn, err := PostStaffExpense(db, sp, "John Okello")
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("BON-%d-0003", time.Now().Year()), txn.Reference)
	assert.Equal(t, models.TransactionExpense, txn.Type)
	require.NotNil(t, txn.StaffPaymentID)
	assert.Equal(t, "sp-1", *txn.StaffPaymentID)
	assert.Contains(t, txn.Description, "Bonus")
	require.NoError(t, mock.ExpectationsWereMet())
}
