package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edutrack/app/models"
)

func classFeeFixture(classID *string) *models.ClassFee {
	return &models.ClassFee{
		SchoolID:  "school-1",
		FeeTypeID: "ft-1",
		ClassID:   classID,
		Amount:    decimal.RequireFromString("150000"),
		DueDate:   time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateClassFeeSeedsMandatoryRoster(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT kind FROM fee_types`).
		WillReturnRows(sqlmock.NewRows([]string{"kind"}).AddRow("mandatory"))
	mock.ExpectQuery(`INSERT INTO class_fees`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("fee-1", time.Now(), time.Now()))
	mock.ExpectExec(`INSERT INTO fee_eligibility`).
		WillReturnResult(sqlmock.NewResult(0, 28))
	mock.ExpectCommit()

	classID := "class-1"
	cf := classFeeFixture(&classID)
	err := CreateClassFee(db, cf)
	require.NoError(t, err)
	assert.Equal(t, "fee-1", cf.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateClassFeeOptionalSkipsRosterSeed(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT kind FROM fee_types`).
		WillReturnRows(sqlmock.NewRows([]string{"kind"}).AddRow("optional"))
	mock.ExpectQuery(`INSERT INTO class_fees`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("fee-2", time.Now(), time.Now()))
	mock.ExpectCommit()

	classID := "class-1"
	err := CreateClassFee(db, classFeeFixture(&classID))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateClassFeeIndividualFeeSkipsRosterSeed(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT kind FROM fee_types`).
		WillReturnRows(sqlmock.NewRows([]string{"kind"}).AddRow("mandatory"))
	mock.ExpectQuery(`INSERT INTO class_fees`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).
			AddRow("fee-3", time.Now(), time.Now()))
	mock.ExpectCommit()

	// No target class: the roster is managed by hand.
	err := CreateClassFee(db, classFeeFixture(nil))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFeeTypeBlockedByClassFees(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM class_fees`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	err := DeleteFeeType(db, "school-1", "ft-1")
	assert.ErrorIs(t, err, ErrFeeTypeInUse)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteFeeType(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM class_fees`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`UPDATE fee_types SET deleted_at = NOW\(\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := DeleteFeeType(db, "school-1", "ft-1")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteClassFeeBlockedByPayments(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM student_fee_payments`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	err := DeleteClassFee(db, "school-1", "fee-1")
	assert.ErrorIs(t, err, ErrPaymentsExist)
	require.NoError(t, mock.ExpectationsWereMet())
}
