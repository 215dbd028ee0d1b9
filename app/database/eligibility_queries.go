package database

import (
	"database/sql"

	"edutrack/app/models"

	"github.com/shopspring/decimal"
)

// AddStudentsToFee adds students to a class fee's eligibility roster and
// returns how many were actually added. Already-eligible students are skipped
// rather than erroring, so re-running a bulk add is harmless.
func AddStudentsToFee(db *sql.DB, schoolID, classFeeID string, studentIDs []string) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM class_fees WHERE id = $1 AND school_id = $2 AND deleted_at IS NULL)`,
		classFeeID, schoolID).Scan(&exists)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrNotFound
	}

	added := 0
	for _, studentID := range studentIDs {
		query := `INSERT INTO fee_eligibility (class_fee_id, student_id)
				  SELECT $1, id FROM students
				  WHERE id = $2 AND school_id = $3 AND deleted_at IS NULL
				  ON CONFLICT (class_fee_id, student_id) DO NOTHING`
		result, err := tx.Exec(query, classFeeID, studentID, schoolID)
		if err != nil {
			return 0, err
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return 0, err
		}
		added += int(rows)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return added, nil
}

// RemoveStudentFromFee takes a student off a fee's roster. Removal is refused
// once any payment has been recorded for the pair; the ledger is append-only
// and a removed roster row would orphan its payments.
func RemoveStudentFromFee(db *sql.DB, schoolID, classFeeID, studentID string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var paid decimal.Decimal
	err = tx.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM student_fee_payments
					   WHERE class_fee_id = $1 AND student_id = $2 AND school_id = $3`,
		classFeeID, studentID, schoolID).Scan(&paid)
	if err != nil {
		return err
	}
	if paid.IsPositive() {
		return ErrPaymentsExist
	}

	result, err := tx.Exec(`DELETE FROM fee_eligibility
							WHERE class_fee_id = $1 AND student_id = $2
							AND class_fee_id IN (SELECT id FROM class_fees WHERE school_id = $3)`,
		classFeeID, studentID, schoolID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// ListEligibleStudents returns the students who could still be added to a
// class fee's roster: active students of the fee's target class (or of the
// whole school for individual fees) who are not already on the roster.
func ListEligibleStudents(db *sql.DB, schoolID, classFeeID string) ([]*models.Student, error) {
	var classID sql.NullString
	err := db.QueryRow(`SELECT class_id FROM class_fees WHERE id = $1 AND school_id = $2 AND deleted_at IS NULL`,
		classFeeID, schoolID).Scan(&classID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	query := `SELECT s.id, s.school_id, s.class_id, s.user_id, s.first_name, s.last_name,
			  s.student_no, s.is_active, s.created_at, s.updated_at
			  FROM students s
			  WHERE s.school_id = $1 AND s.is_active = true AND s.deleted_at IS NULL
			  AND NOT EXISTS (SELECT 1 FROM fee_eligibility fe
							  WHERE fe.class_fee_id = $2 AND fe.student_id = s.id)`
	args := []interface{}{schoolID, classFeeID}
	if classID.Valid {
		query += ` AND s.class_id = $3`
		args = append(args, classID.String)
	}
	query += ` ORDER BY s.first_name, s.last_name`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStudents(rows)
}

// ListFeeRoster returns the students currently on a class fee's roster.
func ListFeeRoster(db *sql.DB, schoolID, classFeeID string) ([]*models.Student, error) {
	query := `SELECT s.id, s.school_id, s.class_id, s.user_id, s.first_name, s.last_name,
			  s.student_no, s.is_active, s.created_at, s.updated_at
			  FROM fee_eligibility fe
			  JOIN students s ON fe.student_id = s.id
			  JOIN class_fees cf ON fe.class_fee_id = cf.id
			  WHERE fe.class_fee_id = $1 AND cf.school_id = $2 AND s.deleted_at IS NULL
			  ORDER BY s.first_name, s.last_name`

	rows, err := db.Query(query, classFeeID, schoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanStudents(rows)
}

func scanStudents(rows *sql.Rows) ([]*models.Student, error) {
	students := []*models.Student{}
	for rows.Next() {
		s := &models.Student{}
		err := rows.Scan(&s.ID, &s.SchoolID, &s.ClassID, &s.UserID, &s.FirstName,
			&s.LastName, &s.StudentNo, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, nil
}

// OptIntoFee records a student's voluntary enrollment into an optional fee
// for a class. The fee type must be optional and a matching class fee must
// already exist, otherwise the opt-in would create an obligation with no
// amount or due date behind it.
func OptIntoFee(db *sql.DB, optIn *models.OptionalFeeOptIn) error {
	var kind models.FeeKind
	err := db.QueryRow(`SELECT kind FROM fee_types WHERE id = $1 AND school_id = $2 AND deleted_at IS NULL`,
		optIn.FeeTypeID, optIn.SchoolID).Scan(&kind)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if kind != models.FeeOptional {
		return ErrNotOptional
	}

	var exists bool
	err = db.QueryRow(`SELECT EXISTS(SELECT 1 FROM class_fees
					   WHERE fee_type_id = $1 AND class_id = $2 AND school_id = $3 AND deleted_at IS NULL)`,
		optIn.FeeTypeID, optIn.ClassID, optIn.SchoolID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNoClassFee
	}

	query := `INSERT INTO optional_fee_opt_ins (school_id, student_id, fee_type_id, class_id, opted_in_at)
			  VALUES ($1, $2, $3, $4, NOW())
			  RETURNING id, opted_in_at`
	err = db.QueryRow(query, optIn.SchoolID, optIn.StudentID, optIn.FeeTypeID, optIn.ClassID).Scan(
		&optIn.ID, &optIn.OptedInAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateItem
	}
	return err
}

// OptOutOfFee withdraws a student from an optional fee. Payments already
// recorded are kept; only the standing obligation ends.
func OptOutOfFee(db *sql.DB, schoolID, studentID, feeTypeID, classID string) error {
	result, err := db.Exec(`DELETE FROM optional_fee_opt_ins
							WHERE school_id = $1 AND student_id = $2 AND fee_type_id = $3 AND class_id = $4`,
		schoolID, studentID, feeTypeID, classID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// GetStudentOptIns lists a student's current optional fee enrollments.
func GetStudentOptIns(db *sql.DB, schoolID, studentID string) ([]*models.OptionalFeeOptIn, error) {
	query := `SELECT id, school_id, student_id, fee_type_id, class_id, opted_in_at
			  FROM optional_fee_opt_ins
			  WHERE school_id = $1 AND student_id = $2
			  ORDER BY opted_in_at DESC`

	rows, err := db.Query(query, schoolID, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	optIns := []*models.OptionalFeeOptIn{}
	for rows.Next() {
		o := &models.OptionalFeeOptIn{}
		err := rows.Scan(&o.ID, &o.SchoolID, &o.StudentID, &o.FeeTypeID, &o.ClassID, &o.OptedInAt)
		if err != nil {
			return nil, err
		}
		optIns = append(optIns, o)
	}
	return optIns, nil
}

// hasObligation reports whether the student owes the class fee, dispatching
// on the fee type's kind: mandatory fees check the eligibility roster,
// optional fees check for a live opt-in matching the fee type and class.
func hasObligation(q Querier, schoolID, studentID, classFeeID string) (bool, error) {
	var kind models.FeeKind
	var feeTypeID string
	var classID sql.NullString
	err := q.QueryRow(`SELECT ft.kind, cf.fee_type_id, cf.class_id
					   FROM class_fees cf
					   JOIN fee_types ft ON cf.fee_type_id = ft.id
					   WHERE cf.id = $1 AND cf.school_id = $2 AND cf.deleted_at IS NULL`,
		classFeeID, schoolID).Scan(&kind, &feeTypeID, &classID)
	if err == sql.ErrNoRows {
		return false, ErrNotFound
	}
	if err != nil {
		return false, err
	}

	var owes bool
	if kind == models.FeeMandatory {
		err = q.QueryRow(`SELECT EXISTS(SELECT 1 FROM fee_eligibility WHERE class_fee_id = $1 AND student_id = $2)`,
			classFeeID, studentID).Scan(&owes)
	} else {
		err = q.QueryRow(`SELECT EXISTS(SELECT 1 FROM optional_fee_opt_ins
						  WHERE school_id = $1 AND student_id = $2 AND fee_type_id = $3 AND class_id = $4)`,
			schoolID, studentID, feeTypeID, classID).Scan(&owes)
	}
	if err != nil {
		return false, err
	}
	return owes, nil
}
