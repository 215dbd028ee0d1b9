package database

import (
	"database/sql"

	"edutrack/app/models"
)

func CreateFeeType(db *sql.DB, ft *models.FeeType) error {
	query := `INSERT INTO fee_types (school_id, name, kind, description, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, true, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	err := db.QueryRow(query, ft.SchoolID, ft.Name, ft.Kind, ft.Description).Scan(
		&ft.ID, &ft.CreatedAt, &ft.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateItem
	}
	if err != nil {
		return err
	}
	ft.IsActive = true
	return nil
}

func GetFeeTypes(db *sql.DB, schoolID string) ([]*models.FeeType, error) {
	query := `SELECT id, school_id, name, kind, description, is_active, created_at, updated_at
			  FROM fee_types
			  WHERE school_id = $1 AND deleted_at IS NULL
			  ORDER BY name`

	rows, err := db.Query(query, schoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	feeTypes := []*models.FeeType{}
	for rows.Next() {
		ft := &models.FeeType{}
		err := rows.Scan(&ft.ID, &ft.SchoolID, &ft.Name, &ft.Kind, &ft.Description,
			&ft.IsActive, &ft.CreatedAt, &ft.UpdatedAt)
		if err != nil {
			return nil, err
		}
		feeTypes = append(feeTypes, ft)
	}
	return feeTypes, nil
}

func GetFeeTypeByID(db *sql.DB, schoolID, feeTypeID string) (*models.FeeType, error) {
	ft := &models.FeeType{}
	query := `SELECT id, school_id, name, kind, description, is_active, created_at, updated_at
			  FROM fee_types
			  WHERE id = $1 AND school_id = $2 AND deleted_at IS NULL`

	err := db.QueryRow(query, feeTypeID, schoolID).Scan(
		&ft.ID, &ft.SchoolID, &ft.Name, &ft.Kind, &ft.Description,
		&ft.IsActive, &ft.CreatedAt, &ft.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return ft, nil
}

// UpdateFeeType edits name/description/active flag. The kind is fixed at
// creation: flipping mandatory to optional would strand roster rows, and the
// reverse would strand opt-ins.
func UpdateFeeType(db *sql.DB, ft *models.FeeType) error {
	query := `UPDATE fee_types SET name = $1, description = $2, is_active = $3, updated_at = NOW()
			  WHERE id = $4 AND school_id = $5 AND deleted_at IS NULL`

	result, err := db.Exec(query, ft.Name, ft.Description, ft.IsActive, ft.ID, ft.SchoolID)
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

// DeleteFeeType soft-deletes a fee type unless class fees still reference it.
func DeleteFeeType(db *sql.DB, schoolID, feeTypeID string) error {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM class_fees WHERE fee_type_id = $1 AND deleted_at IS NULL`, feeTypeID).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrFeeTypeInUse
	}

	result, err := db.Exec(`UPDATE fee_types SET deleted_at = NOW() WHERE id = $1 AND school_id = $2 AND deleted_at IS NULL`,
		feeTypeID, schoolID)
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

// CreateClassFee inserts the fee and, for mandatory fee types with a target
// class, seeds the eligibility roster with the class's current students in
// the same transaction.
func CreateClassFee(db *sql.DB, cf *models.ClassFee) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var kind models.FeeKind
	err = tx.QueryRow(`SELECT kind FROM fee_types WHERE id = $1 AND school_id = $2 AND deleted_at IS NULL`,
		cf.FeeTypeID, cf.SchoolID).Scan(&kind)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	query := `INSERT INTO class_fees (school_id, fee_type_id, class_id, amount, due_date, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	err = tx.QueryRow(query, cf.SchoolID, cf.FeeTypeID, cf.ClassID, cf.Amount, cf.DueDate).Scan(
		&cf.ID, &cf.CreatedAt, &cf.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if kind == models.FeeMandatory && cf.ClassID != nil {
		seed := `INSERT INTO fee_eligibility (class_fee_id, student_id)
				 SELECT $1, id FROM students
				 WHERE class_id = $2 AND school_id = $3 AND is_active = true AND deleted_at IS NULL
				 ON CONFLICT DO NOTHING`
		if _, err := tx.Exec(seed, cf.ID, *cf.ClassID, cf.SchoolID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

const classFeeColumns = `cf.id, cf.school_id, cf.fee_type_id, cf.class_id, cf.amount, cf.due_date,
			  cf.created_at, cf.updated_at,
			  ft.id, ft.school_id, ft.name, ft.kind, ft.is_active`

func scanClassFee(row interface{ Scan(...interface{}) error }) (*models.ClassFee, error) {
	cf := &models.ClassFee{FeeType: &models.FeeType{}}
	err := row.Scan(
		&cf.ID, &cf.SchoolID, &cf.FeeTypeID, &cf.ClassID, &cf.Amount, &cf.DueDate,
		&cf.CreatedAt, &cf.UpdatedAt,
		&cf.FeeType.ID, &cf.FeeType.SchoolID, &cf.FeeType.Name, &cf.FeeType.Kind, &cf.FeeType.IsActive,
	)
	if err != nil {
		return nil, err
	}
	return cf, nil
}

func GetClassFees(db *sql.DB, schoolID, classID string) ([]*models.ClassFee, error) {
	query := `SELECT ` + classFeeColumns + `
			  FROM class_fees cf
			  JOIN fee_types ft ON cf.fee_type_id = ft.id
			  WHERE cf.school_id = $1 AND cf.deleted_at IS NULL`
	args := []interface{}{schoolID}
	if classID != "" {
		query += ` AND cf.class_id = $2`
		args = append(args, classID)
	}
	query += ` ORDER BY cf.due_date DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fees := []*models.ClassFee{}
	for rows.Next() {
		cf, err := scanClassFee(rows)
		if err != nil {
			return nil, err
		}
		fees = append(fees, cf)
	}
	return fees, nil
}

func GetClassFeeByID(db *sql.DB, schoolID, classFeeID string) (*models.ClassFee, error) {
	query := `SELECT ` + classFeeColumns + `
			  FROM class_fees cf
			  JOIN fee_types ft ON cf.fee_type_id = ft.id
			  WHERE cf.id = $1 AND cf.school_id = $2 AND cf.deleted_at IS NULL`

	cf, err := scanClassFee(db.QueryRow(query, classFeeID, schoolID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return cf, nil
}

// UpdateClassFee edits amount and due date. Recorded payments are never
// touched; a lowered amount can leave a pair overpaid on paper, which the
// derived status reports as paid.
func UpdateClassFee(db *sql.DB, cf *models.ClassFee) error {
	query := `UPDATE class_fees SET amount = $1, due_date = $2, updated_at = NOW()
			  WHERE id = $3 AND school_id = $4 AND deleted_at IS NULL`

	result, err := db.Exec(query, cf.Amount, cf.DueDate, cf.ID, cf.SchoolID)
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

// DeleteClassFee soft-deletes a class fee unless payments were recorded
// against it.
func DeleteClassFee(db *sql.DB, schoolID, classFeeID string) error {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM student_fee_payments WHERE class_fee_id = $1`, classFeeID).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrPaymentsExist
	}

	result, err := db.Exec(`UPDATE class_fees SET deleted_at = NOW() WHERE id = $1 AND school_id = $2 AND deleted_at IS NULL`,
		classFeeID, schoolID)
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
