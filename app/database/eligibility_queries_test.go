package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edutrack/app/models"
)

func TestRemoveStudentFromFee(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM student_fee_payments`).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("0"))
	mock.ExpectExec(`DELETE FROM fee_eligibility`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := RemoveStudentFromFee(db, "school-1", "fee-1", "student-1")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveStudentFromFeeRefusedOncePaid(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM student_fee_payments`).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow("50000"))
	mock.ExpectRollback()

	err := RemoveStudentFromFee(db, "school-1", "fee-1", "student-1")
	assert.ErrorIs(t, err, ErrPaymentsExist)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOptIntoFee(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT kind FROM fee_types`).
		WillReturnRows(sqlmock.NewRows([]string{"kind"}).AddRow("optional"))
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM class_fees`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`INSERT INTO optional_fee_opt_ins`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "opted_in_at"}).AddRow("opt-1", time.Now()))

	optIn := &models.OptionalFeeOptIn{
		SchoolID:  "school-1",
		StudentID: "student-1",
		FeeTypeID: "ft-1",
		ClassID:   "class-1",
	}
	err := OptIntoFee(db, optIn)
	require.NoError(t, err)
	assert.Equal(t, "opt-1", optIn.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOptIntoFeeRejectsMandatoryFeeType(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT kind FROM fee_types`).
		WillReturnRows(sqlmock.NewRows([]string{"kind"}).AddRow("mandatory"))

	err := OptIntoFee(db, &models.OptionalFeeOptIn{
		SchoolID:  "school-1",
		StudentID: "student-1",
		FeeTypeID: "ft-1",
		ClassID:   "class-1",
	})
	assert.ErrorIs(t, err, ErrNotOptional)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOptIntoFeeRequiresClassFee(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT kind FROM fee_types`).
		WillReturnRows(sqlmock.NewRows([]string{"kind"}).AddRow("optional"))
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM class_fees`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err := OptIntoFee(db, &models.OptionalFeeOptIn{
		SchoolID:  "school-1",
		StudentID: "student-1",
		FeeTypeID: "ft-1",
		ClassID:   "class-1",
	})
	assert.ErrorIs(t, err, ErrNoClassFee)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOptOutOfFee(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`DELETE FROM optional_fee_opt_ins`).
		WithArgs("school-1", "student-1", "ft-1", "class-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := OptOutOfFee(db, "school-1", "student-1", "ft-1", "class-1")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOptOutOfFeeNotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`DELETE FROM optional_fee_opt_ins`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := OptOutOfFee(db, "school-1", "student-1", "ft-1", "class-1")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListEligibleStudentsExcludesRosteredStudents(t *testing.T) {
	db, mock := newMockDB(t)

	now := time.Now()
	mock.ExpectQuery(`SELECT class_id FROM class_fees`).
		WithArgs("fee-1", "school-1").
		WillReturnRows(sqlmock.NewRows([]string{"class_id"}).AddRow("class-1"))
	// candidates are the class's active students without a roster row
	mock.ExpectQuery(`FROM students s\s+WHERE s.school_id = \$1 AND s.is_active = true AND s.deleted_at IS NULL\s+AND NOT EXISTS \(SELECT 1 FROM fee_eligibility fe`).
		WithArgs("school-1", "fee-1", "class-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "school_id", "class_id", "user_id", "first_name",
			"last_name", "student_no", "is_active", "created_at", "updated_at"}).
			AddRow("student-2", "school-1", "class-1", nil, "Brian", "Okello", "S002", true, now, now))

	students, err := ListEligibleStudents(db, "school-1", "fee-1")
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "student-2", students[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListEligibleStudentsUnknownClassFee(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT class_id FROM class_fees`).
		WillReturnRows(sqlmock.NewRows([]string{"class_id"}))

	_, err := ListEligibleStudents(db, "school-1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListFeeRoster(t *testing.T) {
	db, mock := newMockDB(t)

	now := time.Now()
	mock.ExpectQuery(`FROM fee_eligibility fe\s+JOIN students s ON fe.student_id = s.id`).
		WithArgs("fee-1", "school-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "school_id", "class_id", "user_id", "first_name",
			"last_name", "student_no", "is_active", "created_at", "updated_at"}).
			AddRow("student-1", "school-1", "class-1", nil, "Amina", "Nansubuga", "S001", true, now, now))

	students, err := ListFeeRoster(db, "school-1", "fee-1")
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "student-1", students[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddStudentsToFee(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM class_fees`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec(`INSERT INTO fee_eligibility`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// second student already on the roster, conflict skipped
	mock.ExpectExec(`INSERT INTO fee_eligibility`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	added, err := AddStudentsToFee(db, "school-1", "fee-1", []string{"student-1", "student-2"})
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	require.NoError(t, mock.ExpectationsWereMet())
}
