package database

import (
	"database/sql"

	"edutrack/app/models"
)

func CreateBudget(db *sql.DB, b *models.Budget) error {
	if !b.EndDate.After(b.StartDate) {
		return ErrInvalidAmount
	}

	query := `INSERT INTO budgets (school_id, name, start_date, end_date, total_amount, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, false, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	return db.QueryRow(query, b.SchoolID, b.Name, b.StartDate, b.EndDate, b.TotalAmount).Scan(
		&b.ID, &b.CreatedAt, &b.UpdatedAt,
	)
}

func GetBudgets(db *sql.DB, schoolID string) ([]*models.Budget, error) {
	query := `SELECT id, school_id, name, start_date, end_date, total_amount, is_active, created_at, updated_at
			  FROM budgets
			  WHERE school_id = $1 AND deleted_at IS NULL
			  ORDER BY start_date DESC`

	rows, err := db.Query(query, schoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	budgets := []*models.Budget{}
	for rows.Next() {
		b := &models.Budget{}
		err := rows.Scan(&b.ID, &b.SchoolID, &b.Name, &b.StartDate, &b.EndDate,
			&b.TotalAmount, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, nil
}

func GetBudgetByID(db *sql.DB, schoolID, budgetID string) (*models.Budget, error) {
	b := &models.Budget{}
	query := `SELECT id, school_id, name, start_date, end_date, total_amount, is_active, created_at, updated_at
			  FROM budgets
			  WHERE id = $1 AND school_id = $2 AND deleted_at IS NULL`

	err := db.QueryRow(query, budgetID, schoolID).Scan(
		&b.ID, &b.SchoolID, &b.Name, &b.StartDate, &b.EndDate,
		&b.TotalAmount, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// SetActiveBudget makes the budget the school's current one. The pointer row
// upsert and the is_active flags move in one transaction, so readers never
// observe two active budgets.
func SetActiveBudget(db *sql.DB, schoolID, budgetID string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM budgets WHERE id = $1 AND school_id = $2 AND deleted_at IS NULL)`,
		budgetID, schoolID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	_, err = tx.Exec(`INSERT INTO active_budgets (school_id, budget_id, activated_at)
					  VALUES ($1, $2, NOW())
					  ON CONFLICT (school_id) DO UPDATE SET budget_id = $2, activated_at = NOW()`,
		schoolID, budgetID)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`UPDATE budgets SET is_active = false, updated_at = NOW() WHERE school_id = $1 AND is_active = true`, schoolID); err != nil {
		return err
	}
	if _, err := tx.Exec(`UPDATE budgets SET is_active = true, updated_at = NOW() WHERE id = $1`, budgetID); err != nil {
		return err
	}

	return tx.Commit()
}

// GetActiveBudget resolves the school's current budget via the pointer row.
func GetActiveBudget(db *sql.DB, schoolID string) (*models.Budget, error) {
	b := &models.Budget{}
	query := `SELECT b.id, b.school_id, b.name, b.start_date, b.end_date, b.total_amount, b.is_active, b.created_at, b.updated_at
			  FROM active_budgets ab
			  JOIN budgets b ON ab.budget_id = b.id
			  WHERE ab.school_id = $1 AND b.deleted_at IS NULL`

	err := db.QueryRow(query, schoolID).Scan(
		&b.ID, &b.SchoolID, &b.Name, &b.StartDate, &b.EndDate,
		&b.TotalAmount, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// AddBudgetItem adds a planned line for an account. One line per account per
// budget; a second line for the same account is rejected rather than merged.
func AddBudgetItem(db *sql.DB, schoolID string, item *models.BudgetItem) error {
	var exists bool
	err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM budgets WHERE id = $1 AND school_id = $2 AND deleted_at IS NULL)`,
		item.BudgetID, schoolID).Scan(&exists)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	query := `INSERT INTO budget_items (budget_id, account_id, budgeted_amount, description, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	err = db.QueryRow(query, item.BudgetID, item.AccountID, item.BudgetedAmount, item.Description).Scan(
		&item.ID, &item.CreatedAt, &item.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateItem
	}
	return err
}

func UpdateBudgetItem(db *sql.DB, schoolID string, item *models.BudgetItem) error {
	query := `UPDATE budget_items bi SET budgeted_amount = $1, description = $2, updated_at = NOW()
			  FROM budgets b
			  WHERE bi.id = $3 AND bi.budget_id = b.id AND b.school_id = $4 AND b.deleted_at IS NULL`

	result, err := db.Exec(query, item.BudgetedAmount, item.Description, item.ID, schoolID)
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

func DeleteBudgetItem(db *sql.DB, schoolID, itemID string) error {
	query := `DELETE FROM budget_items bi
			  USING budgets b
			  WHERE bi.id = $1 AND bi.budget_id = b.id AND b.school_id = $2`

	result, err := db.Exec(query, itemID, schoolID)
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

// GetBudgetWithActuals loads a budget and its items with actuals derived by
// summing non-deleted ledger transactions per account inside the budget's
// date range. Variance and percentage-used are computed in Go so the decimal
// arithmetic matches the alert thresholds exactly.
func GetBudgetWithActuals(db *sql.DB, schoolID, budgetID string) (*models.Budget, error) {
	b, err := GetBudgetByID(db, schoolID, budgetID)
	if err != nil {
		return nil, err
	}

	query := `SELECT bi.id, bi.budget_id, bi.account_id, bi.budgeted_amount, bi.description,
			  bi.created_at, bi.updated_at,
			  a.name, a.code, a.type,
			  COALESCE(SUM(t.amount), 0) AS actual
			  FROM budget_items bi
			  JOIN accounts a ON bi.account_id = a.id
			  LEFT JOIN transactions t ON t.account_id = bi.account_id
				  AND t.school_id = $1
				  AND t.deleted_at IS NULL
				  AND t.date >= $2 AND t.date <= $3
			  WHERE bi.budget_id = $4
			  GROUP BY bi.id, a.name, a.code, a.type
			  ORDER BY a.code`

	rows, err := db.Query(query, schoolID, b.StartDate, b.EndDate, budgetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*models.BudgetItem{}
	for rows.Next() {
		item := &models.BudgetItem{}
		var description sql.NullString
		err := rows.Scan(&item.ID, &item.BudgetID, &item.AccountID, &item.BudgetedAmount, &description,
			&item.CreatedAt, &item.UpdatedAt,
			&item.AccountName, &item.AccountCode, &item.AccountType,
			&item.ActualAmount)
		if err != nil {
			return nil, err
		}
		item.Description = description.String
		item.Compute()
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	b.Items = items
	return b, nil
}
