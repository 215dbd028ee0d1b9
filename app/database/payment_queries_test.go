package database

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func paymentInput(amount string) RecordPaymentInput {
	return RecordPaymentInput{
		SchoolID:   "school-1",
		StudentID:  "student-1",
		ClassFeeID: "fee-1",
		Amount:     decimal.RequireFromString(amount),
		Method:     "cash",
		PaidDate:   time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
	}
}

func expectClassFeeLock(mock sqlmock.Sqlmock, amount string) {
	mock.ExpectQuery(`SELECT cf.amount, cf.due_date, ft.name`).
		WillReturnRows(sqlmock.NewRows([]string{"amount", "due_date", "name"}).
			AddRow(amount, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), "Tuition"))
}

func expectMandatoryObligation(mock sqlmock.Sqlmock, eligible bool) {
	mock.ExpectQuery(`SELECT ft.kind, cf.fee_type_id, cf.class_id`).
		WillReturnRows(sqlmock.NewRows([]string{"kind", "fee_type_id", "class_id"}).
			AddRow("mandatory", "ft-1", "class-1"))
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM fee_eligibility`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(eligible))
}

func expectPaidToDate(mock sqlmock.Sqlmock, total string) {
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM student_fee_payments`).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(total))
}

func TestRecordStudentPayment(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	expectClassFeeLock(mock, "150000")
	expectMandatoryObligation(mock, true)
	expectPaidToDate(mock, "100000")
	mock.ExpectQuery(`INSERT INTO student_fee_payments`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("pay-1", time.Now()))
	mock.ExpectQuery(`SELECT s.first_name`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "class"}).AddRow("Amina Nakato", "P5 Blue"))
	mock.ExpectCommit()

	receipt, err := RecordStudentPayment(db, paymentInput("50000"))
	require.NoError(t, err)

	assert.Equal(t, "pay-1", receipt.Payment.ID)
	assert.Equal(t, "Amina Nakato", receipt.StudentName)
	assert.Equal(t, "Tuition", receipt.FeeTypeName)
	assert.True(t, receipt.TotalPaidToDate.Equal(decimal.RequireFromString("150000")))
	assert.True(t, receipt.RemainingBalance.IsZero())
	assert.False(t, receipt.AlreadyRecorded)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordStudentPaymentRejectsOverpayment(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	expectClassFeeLock(mock, "150000")
	expectMandatoryObligation(mock, true)
	expectPaidToDate(mock, "140000")
	mock.ExpectRollback()

	_, err := RecordStudentPayment(db, paymentInput("20000"))
	require.Error(t, err)
	assert.True(t, IsOverpayment(err))

	var oe *OverpaymentError
	require.ErrorAs(t, err, &oe)
	assert.True(t, oe.Remaining.Equal(decimal.RequireFromString("10000")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordStudentPaymentRejectsNonEligibleStudent(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	expectClassFeeLock(mock, "150000")
	expectMandatoryObligation(mock, false)
	mock.ExpectRollback()

	_, err := RecordStudentPayment(db, paymentInput("50000"))
	assert.ErrorIs(t, err, ErrNotEligible)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordStudentPaymentRejectsNonPositiveAmount(t *testing.T) {
	db, _ := newMockDB(t)

	_, err := RecordStudentPayment(db, paymentInput("0"))
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = RecordStudentPayment(db, paymentInput("-5"))
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestRecordStudentPaymentUnknownFee(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT cf.amount, cf.due_date, ft.name`).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err := RecordStudentPayment(db, paymentInput("50000"))
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordStudentPaymentGatewayReplay(t *testing.T) {
	db, mock := newMockDB(t)

	ref := "MM-12345"
	input := paymentInput("50000")
	input.GatewayReference = &ref

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT p.id, p.school_id, p.student_id`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "school_id", "student_id", "class_fee_id", "amount", "method",
			"gateway_reference", "paid_date", "created_at",
			"fee_amount", "fee_type_name", "student_name", "class_name",
		}).AddRow(
			"pay-original", "school-1", "student-1", "fee-1", "50000", "gateway",
			ref, time.Now(), time.Now(),
			"150000", "Tuition", "Amina Nakato", "P5 Blue",
		))
	expectPaidToDate(mock, "50000")
	mock.ExpectRollback()

	receipt, err := RecordStudentPayment(db, input)
	require.NoError(t, err)

	assert.True(t, receipt.AlreadyRecorded)
	assert.Equal(t, "pay-original", receipt.Payment.ID)
	assert.True(t, receipt.RemainingBalance.Equal(decimal.RequireFromString("100000")))
	require.NoError(t, mock.ExpectationsWereMet())
}
