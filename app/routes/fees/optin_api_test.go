package fees

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edutrack/app/config"
	"edutrack/app/models"
)

// newTestApp wires the opt-in handlers behind a stand-in for the auth
// middleware that injects the given user.
func newTestApp(t *testing.T, user *models.User) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	config.AppConfig = &config.Config{DB: db}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", user)
		c.Locals("user_id", user.ID)
		c.Locals("school_id", user.SchoolID)
		return c.Next()
	})
	app.Post("/api/opt-ins", OptIntoFeeAPI)
	app.Delete("/api/opt-ins", OptOutOfFeeAPI)
	return app, mock
}

func optInBody(t *testing.T, studentID string) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(fiber.Map{
		"student_id":  studentID,
		"fee_type_id": "ft-1",
		"class_id":    "class-1",
	})
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func expectOwnStudentLookup(mock sqlmock.Sqlmock, studentID string) {
	now := time.Now()
	mock.ExpectQuery(`FROM students\s+WHERE user_id = \$1`).
		WithArgs("user-1", "school-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "school_id", "class_id", "user_id", "first_name",
			"last_name", "student_no", "is_active", "created_at", "updated_at"}).
			AddRow(studentID, "school-1", "class-1", "user-1", "Amina", "Nansubuga", "S001", true, now, now))
}

func studentUser() *models.User {
	return &models.User{
		ID:       "user-1",
		SchoolID: "school-1",
		Roles:    []*models.Role{{Name: "student"}},
	}
}

func TestOptIntoFeeAPIOwnStudent(t *testing.T) {
	app, mock := newTestApp(t, studentUser())

	expectOwnStudentLookup(mock, "student-1")
	mock.ExpectQuery(`SELECT kind FROM fee_types`).
		WillReturnRows(sqlmock.NewRows([]string{"kind"}).AddRow("optional"))
	mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM class_fees`).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`INSERT INTO optional_fee_opt_ins`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "opted_in_at"}).AddRow("opt-1", time.Now()))

	req := httptest.NewRequest("POST", "/api/opt-ins", optInBody(t, "student-1"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOptIntoFeeAPIForbiddenForOtherStudent(t *testing.T) {
	app, mock := newTestApp(t, studentUser())

	// caller's account links to student-1, request targets student-2
	expectOwnStudentLookup(mock, "student-1")

	req := httptest.NewRequest("POST", "/api/opt-ins", optInBody(t, "student-2"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOptOutOfFeeAPIForbiddenForOtherStudent(t *testing.T) {
	app, mock := newTestApp(t, studentUser())

	expectOwnStudentLookup(mock, "student-1")

	req := httptest.NewRequest("DELETE", "/api/opt-ins", optInBody(t, "student-2"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOptOutOfFeeAPIStaffForAnyStudent(t *testing.T) {
	bursar := &models.User{
		ID:       "user-9",
		SchoolID: "school-1",
		Roles:    []*models.Role{{Name: "bursar"}},
	}
	app, mock := newTestApp(t, bursar)

	mock.ExpectExec(`DELETE FROM optional_fee_opt_ins`).
		WithArgs("school-1", "student-2", "ft-1", "class-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest("DELETE", "/api/opt-ins", optInBody(t, "student-2"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
	require.NoError(t, mock.ExpectationsWereMet())
}
