package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTransactionReference(t *testing.T) {
	assert.Equal(t, "FEE-2026-0001", FormatTransactionReference("FEE", 2026, 1))
	assert.Equal(t, "SAL-2026-0042", FormatTransactionReference("SAL", 2026, 42))
	assert.Equal(t, "TXN-2027-12345", FormatTransactionReference("TXN", 2027, 12345))
}

func TestNextTransactionReference(t *testing.T) {
	db, mock := newMockDB(t)

	now := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO transaction_sequences`).
		WithArgs("school-1", "FEE", 2026).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(7))

	ref, err := NextTransactionReference(db, "school-1", "FEE", now)
	require.NoError(t, err)
	assert.Equal(t, "FEE-2026-0007", ref)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNextTransactionReferenceResetsPerYear(t *testing.T) {
	db, mock := newMockDB(t)

	jan := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO transaction_sequences`).
		WithArgs("school-1", "FEE", 2027).
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(1))

	ref, err := NextTransactionReference(db, "school-1", "FEE", jan)
	require.NoError(t, err)
	assert.Equal(t, "FEE-2027-0001", ref)
	require.NoError(t, mock.ExpectationsWereMet())
}
