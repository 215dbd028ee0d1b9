package database

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Error taxonomy for the fee and budget engine. Handlers map these onto HTTP
// statuses; the messages are shown to end users as-is, so they must say what
// the caller can act on. Cross-tenant lookups surface as ErrNotFound so that
// record existence never leaks across schools.
var (
	ErrNotFound      = errors.New("record not found")
	ErrNotEligible   = errors.New("student is not eligible for this fee")
	ErrInvalidAmount = errors.New("amount must be greater than zero")
	ErrPaymentsExist = errors.New("cannot remove student: payments exist for this fee")
	ErrDuplicateItem = errors.New("a budget item for this account already exists")
	ErrFeeTypeInUse  = errors.New("class fees reference this fee type and must be deleted first")
	ErrNotOptional   = errors.New("fee type is not optional; students cannot opt in")
	ErrNoClassFee    = errors.New("no class fee exists for this fee type and class")
	ErrAccountInUse  = errors.New("account has transactions and cannot be deleted")
)

// OverpaymentError is returned when a payment would push the running total
// past the class fee amount. It carries the remaining balance so the message
// tells the payer exactly how much is still owed.
type OverpaymentError struct {
	Requested decimal.Decimal
	Remaining decimal.Decimal
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("payment of %s exceeds remaining balance of %s",
		e.Requested.StringFixed(2), e.Remaining.StringFixed(2))
}

// IsOverpayment reports whether err is an OverpaymentError.
func IsOverpayment(err error) bool {
	var oe *OverpaymentError
	return errors.As(err, &oe)
}
