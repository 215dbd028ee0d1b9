package services

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"edutrack/app/database"
	"edutrack/app/models"
)

// Reference prefixes used by the reconciliation bridge.
const (
	FeeReferencePrefix    = "FEE"
	SalaryReferencePrefix = "SAL"
	BonusReferencePrefix  = "BON"
)

// PostFeeIncome posts a recorded fee payment into the ledger as an income
// transaction against the fee income account. Account resolution, reference
// issue and the insert run in one transaction.
func PostFeeIncome(db *sql.DB, receipt *models.PaymentReceipt) (*models.Transaction, error) {
	payment := receipt.Payment

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	accountID, err := database.EnsureAccount(tx, payment.SchoolID,
		models.FeeIncomeAccountCode, models.FeeIncomeAccountName, models.AccountIncome)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	reference, err := database.NextTransactionReference(tx, payment.SchoolID, FeeReferencePrefix, now)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Fee payment: %s - %s", receipt.StudentName, receipt.FeeTypeName)
	t := &models.Transaction{
		SchoolID:     payment.SchoolID,
		Reference:    reference,
		AccountID:    accountID,
		Amount:       payment.Amount,
		Type:         models.TransactionIncome,
		Date:         now,
		Description:  description,
		FeePaymentID: &payment.ID,
	}
	if err := database.InsertTransaction(tx, t); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return t, nil
}

// PostFeeIncomeLogged runs PostFeeIncome and downgrades failure to a log
// line. The payment is already committed; a bridge outage must not fail the
// request, and the unposted-payments report picks up the gap later.
func PostFeeIncomeLogged(db *sql.DB, receipt *models.PaymentReceipt) {
	if _, err := PostFeeIncome(db, receipt); err != nil {
		log.Printf("reconciliation: failed to post fee payment %s to ledger: %v", receipt.Payment.ID, err)
	}
}

// PostStaffExpense posts a payroll disbursement into the ledger as an expense
// transaction against the salary expense account. Salaries and bonuses share
// the account but carry distinct reference prefixes.
func PostStaffExpense(db *sql.DB, sp *models.StaffPayment, staffName string) (*models.Transaction, error) {
	prefix := SalaryReferencePrefix
	label := "Salary"
	if sp.Type == models.StaffPaymentBonus {
		prefix = BonusReferencePrefix
		label = "Bonus"
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	accountID, err := database.EnsureAccount(tx, sp.SchoolID,
		models.SalaryExpenseAccountCode, models.SalaryExpenseAccountName, models.AccountExpense)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	reference, err := database.NextTransactionReference(tx, sp.SchoolID, prefix, now)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("%s payment: %s (%s to %s)", label, staffName,
		sp.PeriodStart.Format("2006-01-02"), sp.PeriodEnd.Format("2006-01-02"))
	t := &models.Transaction{
		SchoolID:       sp.SchoolID,
		Reference:      reference,
		AccountID:      accountID,
		Amount:         sp.Amount,
		Type:           models.TransactionExpense,
		Date:           now,
		Description:    description,
		StaffPaymentID: &sp.ID,
	}
	if err := database.InsertTransaction(tx, t); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return t, nil
}

// PostStaffExpenseLogged is the never-fail wrapper around PostStaffExpense.
func PostStaffExpenseLogged(db *sql.DB, sp *models.StaffPayment, staffName string) {
	if _, err := PostStaffExpense(db, sp, staffName); err != nil {
		log.Printf("reconciliation: failed to post staff payment %s to ledger: %v", sp.ID, err)
	}
}
