package database

import (
	"database/sql"

	"edutrack/app/models"

	"github.com/lib/pq"
)

const accountColumns = `id, school_id, code, name, type, is_active, created_at, updated_at`

func scanAccount(row interface{ Scan(...interface{}) error }) (*models.Account, error) {
	a := &models.Account{}
	err := row.Scan(&a.ID, &a.SchoolID, &a.Code, &a.Name, &a.Type, &a.IsActive,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func CreateAccount(db *sql.DB, a *models.Account) error {
	query := `INSERT INTO accounts (school_id, code, name, type, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, true, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	err := db.QueryRow(query, a.SchoolID, a.Code, a.Name, a.Type).Scan(
		&a.ID, &a.CreatedAt, &a.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateItem
	}
	if err != nil {
		return err
	}
	a.IsActive = true
	return nil
}

func GetAccounts(db *sql.DB, schoolID string, accountType models.AccountType) ([]*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts
			  WHERE school_id = $1 AND deleted_at IS NULL`
	args := []interface{}{schoolID}
	if accountType != "" {
		query += ` AND type = $2`
		args = append(args, accountType)
	}
	query += ` ORDER BY code`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []*models.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

func GetAccountByID(db *sql.DB, schoolID, accountID string) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts
			  WHERE id = $1 AND school_id = $2 AND deleted_at IS NULL`

	a, err := scanAccount(db.QueryRow(query, accountID, schoolID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func UpdateAccount(db *sql.DB, a *models.Account) error {
	query := `UPDATE accounts SET name = $1, type = $2, is_active = $3, updated_at = NOW()
			  WHERE id = $4 AND school_id = $5 AND deleted_at IS NULL`

	result, err := db.Exec(query, a.Name, a.Type, a.IsActive, a.ID, a.SchoolID)
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

// DeleteAccount soft-deletes an account. Accounts referenced by any
// transaction are never deleted.
func DeleteAccount(db *sql.DB, schoolID, accountID string) error {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM transactions WHERE account_id = $1 AND deleted_at IS NULL`, accountID).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrAccountInUse
	}

	result, err := db.Exec(`UPDATE accounts SET deleted_at = NOW() WHERE id = $1 AND school_id = $2 AND deleted_at IS NULL`,
		accountID, schoolID)
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

// EnsureAccount resolves an account by code, creating it when missing. The
// upsert keeps the operation idempotent under concurrent postings, which is
// what makes the reconciliation bridge self-initializing per school.
func EnsureAccount(q Querier, schoolID, code, name string, accountType models.AccountType) (string, error) {
	var id string
	insert := `INSERT INTO accounts (school_id, code, name, type, is_active, created_at, updated_at)
			   VALUES ($1, $2, $3, $4, true, NOW(), NOW())
			   ON CONFLICT (school_id, code) DO NOTHING
			   RETURNING id`
	err := q.QueryRow(insert, schoolID, code, name, accountType).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != sql.ErrNoRows {
		return "", err
	}

	// Already existed; the DO NOTHING path returns no row.
	err = q.QueryRow(`SELECT id FROM accounts WHERE school_id = $1 AND code = $2`, schoolID, code).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}
