package models

// AccountType defines the classification of an account in the chart of accounts.
type AccountType string

const (
	AccountIncome    AccountType = "INCOME"
	AccountExpense   AccountType = "EXPENSE"
	AccountAsset     AccountType = "ASSET"
	AccountLiability AccountType = "LIABILITY"
)

// IsValid reports whether t is a known account type.
func (t AccountType) IsValid() bool {
	switch t {
	case AccountIncome, AccountExpense, AccountAsset, AccountLiability:
		return true
	}
	return false
}

// TransactionType defines the direction of a ledger transaction.
type TransactionType string

const (
	TransactionIncome  TransactionType = "INCOME"
	TransactionExpense TransactionType = "EXPENSE"
)

// IsValid reports whether t is a known transaction type.
func (t TransactionType) IsValid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// FeeKind tags a fee type as mandatory (roster-driven) or optional
// (opt-in driven). Eligibility resolution dispatches on this tag.
type FeeKind string

const (
	FeeMandatory FeeKind = "mandatory"
	FeeOptional  FeeKind = "optional"
)

// IsValid reports whether k is a known fee kind.
func (k FeeKind) IsValid() bool {
	return k == FeeMandatory || k == FeeOptional
}

// StaffPaymentType defines the kind of a payroll disbursement.
type StaffPaymentType string

const (
	StaffPaymentSalary StaffPaymentType = "salary"
	StaffPaymentBonus  StaffPaymentType = "bonus"
)

// IsValid reports whether t is a known staff payment type.
func (t StaffPaymentType) IsValid() bool {
	return t == StaffPaymentSalary || t == StaffPaymentBonus
}
