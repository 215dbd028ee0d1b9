package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeFeeStatusPartial(t *testing.T) {
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	status := ComputeFeeStatus(decimal.RequireFromString("150000"), decimal.RequireFromString("100000"), due, now)

	assert.True(t, status.Remaining.Equal(decimal.RequireFromString("50000")))
	assert.False(t, status.IsPaid)
	assert.False(t, status.IsOverdue)
}

func TestComputeFeeStatusPaidExactly(t *testing.T) {
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	now := due.AddDate(0, 2, 0)

	status := ComputeFeeStatus(decimal.RequireFromString("150000"), decimal.RequireFromString("150000"), due, now)

	assert.True(t, status.Remaining.IsZero())
	assert.True(t, status.IsPaid)
	// A settled fee is never overdue, regardless of the date.
	assert.False(t, status.IsOverdue)
}

func TestComputeFeeStatusOverdue(t *testing.T) {
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	now := due.Add(24 * time.Hour)

	status := ComputeFeeStatus(decimal.RequireFromString("150000"), decimal.Zero, due, now)

	assert.False(t, status.IsPaid)
	assert.True(t, status.IsOverdue)
	assert.True(t, status.Remaining.Equal(decimal.RequireFromString("150000")))
}

func TestComputeFeeStatusNotOverdueOnDueDate(t *testing.T) {
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	status := ComputeFeeStatus(decimal.RequireFromString("25000"), decimal.RequireFromString("10000"), due, due)

	assert.False(t, status.IsOverdue)
}
