package database

import (
	"database/sql"
	"fmt"
	"time"

	"edutrack/app/models"
)

// NextTransactionReference issues the next human-readable reference for a
// school, e.g. FEE-2026-0001. The per-(school, prefix, year) counter is
// advanced with an atomic upsert so concurrent postings never collide, unlike
// a count-then-increment scheme.
func NextTransactionReference(q Querier, schoolID, prefix string, now time.Time) (string, error) {
	var value int64
	query := `INSERT INTO transaction_sequences (school_id, prefix, year, value)
			  VALUES ($1, $2, $3, 1)
			  ON CONFLICT (school_id, prefix, year)
			  DO UPDATE SET value = transaction_sequences.value + 1
			  RETURNING value`
	err := q.QueryRow(query, schoolID, prefix, now.Year()).Scan(&value)
	if err != nil {
		return "", err
	}
	return FormatTransactionReference(prefix, now.Year(), value), nil
}

// FormatTransactionReference renders a reference as PREFIX-YEAR-NNNN with the
// sequence zero-padded to 4 digits.
func FormatTransactionReference(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, seq)
}

// TransactionFilters represents filtering options for the ledger listing.
type TransactionFilters struct {
	AccountID string
	Type      models.TransactionType
	DateFrom  string
	DateTo    string
	Limit     int
	Offset    int
}

// InsertTransaction writes a ledger row. Callers own reference generation.
func InsertTransaction(q Querier, t *models.Transaction) error {
	query := `INSERT INTO transactions (school_id, reference, account_id, amount, type, date, description, notes, fee_payment_id, staff_payment_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	return q.QueryRow(query,
		t.SchoolID, t.Reference, t.AccountID, t.Amount, t.Type, t.Date,
		t.Description, t.Notes, t.FeePaymentID, t.StaffPaymentID,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
}

func GetTransactions(db *sql.DB, schoolID string, filters TransactionFilters) ([]*models.Transaction, error) {
	query := `SELECT t.id, t.school_id, t.reference, t.account_id, t.amount, t.type, t.date,
			  t.description, t.notes, t.fee_payment_id, t.staff_payment_id, t.created_at, t.updated_at,
			  a.id, a.code, a.name, a.type
			  FROM transactions t
			  JOIN accounts a ON t.account_id = a.id
			  WHERE t.school_id = $1 AND t.deleted_at IS NULL`

	args := []interface{}{schoolID}
	argIndex := 2

	if filters.AccountID != "" {
		query += fmt.Sprintf(" AND t.account_id = $%d", argIndex)
		args = append(args, filters.AccountID)
		argIndex++
	}
	if filters.Type != "" {
		query += fmt.Sprintf(" AND t.type = $%d", argIndex)
		args = append(args, filters.Type)
		argIndex++
	}
	if filters.DateFrom != "" {
		query += fmt.Sprintf(" AND t.date >= $%d", argIndex)
		args = append(args, filters.DateFrom)
		argIndex++
	}
	if filters.DateTo != "" {
		query += fmt.Sprintf(" AND t.date <= $%d", argIndex)
		args = append(args, filters.DateTo)
		argIndex++
	}

	query += " ORDER BY t.date DESC, t.created_at DESC"

	if filters.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIndex)
		args = append(args, filters.Limit)
		argIndex++
	}
	if filters.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIndex)
		args = append(args, filters.Offset)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []*models.Transaction{}
	for rows.Next() {
		t := &models.Transaction{Account: &models.Account{}}
		var notes sql.NullString
		err := rows.Scan(
			&t.ID, &t.SchoolID, &t.Reference, &t.AccountID, &t.Amount, &t.Type, &t.Date,
			&t.Description, &notes, &t.FeePaymentID, &t.StaffPaymentID, &t.CreatedAt, &t.UpdatedAt,
			&t.Account.ID, &t.Account.Code, &t.Account.Name, &t.Account.Type,
		)
		if err != nil {
			return nil, err
		}
		t.Notes = notes.String
		transactions = append(transactions, t)
	}
	return transactions, nil
}

func GetTransactionByID(db *sql.DB, schoolID, transactionID string) (*models.Transaction, error) {
	query := `SELECT t.id, t.school_id, t.reference, t.account_id, t.amount, t.type, t.date,
			  t.description, t.notes, t.fee_payment_id, t.staff_payment_id, t.created_at, t.updated_at,
			  a.id, a.code, a.name, a.type
			  FROM transactions t
			  JOIN accounts a ON t.account_id = a.id
			  WHERE t.id = $1 AND t.school_id = $2 AND t.deleted_at IS NULL`

	t := &models.Transaction{Account: &models.Account{}}
	var notes sql.NullString
	err := db.QueryRow(query, transactionID, schoolID).Scan(
		&t.ID, &t.SchoolID, &t.Reference, &t.AccountID, &t.Amount, &t.Type, &t.Date,
		&t.Description, &notes, &t.FeePaymentID, &t.StaffPaymentID, &t.CreatedAt, &t.UpdatedAt,
		&t.Account.ID, &t.Account.Code, &t.Account.Name, &t.Account.Type,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	t.Notes = notes.String
	return t, nil
}

// UpdateTransaction is an admin correction; it sits outside the
// reconciliation path and never touches the reference.
func UpdateTransaction(db *sql.DB, t *models.Transaction) error {
	query := `UPDATE transactions
			  SET account_id = $1, amount = $2, type = $3, date = $4, description = $5, notes = $6, updated_at = NOW()
			  WHERE id = $7 AND school_id = $8 AND deleted_at IS NULL`

	result, err := db.Exec(query, t.AccountID, t.Amount, t.Type, t.Date, t.Description, t.Notes, t.ID, t.SchoolID)
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

func DeleteTransaction(db *sql.DB, schoolID, transactionID string) error {
	result, err := db.Exec(`UPDATE transactions SET deleted_at = NOW() WHERE id = $1 AND school_id = $2 AND deleted_at IS NULL`,
		transactionID, schoolID)
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
