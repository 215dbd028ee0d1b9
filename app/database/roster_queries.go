package database

import (
	"database/sql"

	"edutrack/app/models"
)

// Roster reads used by the fee engine and its pickers. Full roster CRUD is
// owned by admin tooling outside this service.

func GetClasses(db *sql.DB, schoolID string) ([]*models.Class, error) {
	query := `SELECT c.id, c.school_id, c.name, c.code, c.is_active, c.created_at, c.updated_at,
			  COUNT(s.id) as student_count
			  FROM classes c
			  LEFT JOIN students s ON s.class_id = c.id AND s.is_active = true AND s.deleted_at IS NULL
			  WHERE c.school_id = $1 AND c.deleted_at IS NULL
			  GROUP BY c.id
			  ORDER BY c.name`

	rows, err := db.Query(query, schoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	classes := []*models.Class{}
	for rows.Next() {
		c := &models.Class{}
		err := rows.Scan(&c.ID, &c.SchoolID, &c.Name, &c.Code, &c.IsActive,
			&c.CreatedAt, &c.UpdatedAt, &c.StudentCount)
		if err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, nil
}

func GetClassByID(db *sql.DB, schoolID, classID string) (*models.Class, error) {
	c := &models.Class{}
	query := `SELECT id, school_id, name, code, is_active, created_at, updated_at
			  FROM classes
			  WHERE id = $1 AND school_id = $2 AND deleted_at IS NULL`

	err := db.QueryRow(query, classID, schoolID).Scan(
		&c.ID, &c.SchoolID, &c.Name, &c.Code, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func GetStudents(db *sql.DB, schoolID, classID string) ([]*models.Student, error) {
	query := `SELECT id, school_id, class_id, user_id, first_name, last_name, student_no, is_active, created_at, updated_at
			  FROM students
			  WHERE school_id = $1 AND is_active = true AND deleted_at IS NULL`
	args := []interface{}{schoolID}
	if classID != "" {
		query += ` AND class_id = $2`
		args = append(args, classID)
	}
	query += ` ORDER BY first_name, last_name`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := []*models.Student{}
	for rows.Next() {
		s := &models.Student{}
		err := rows.Scan(&s.ID, &s.SchoolID, &s.ClassID, &s.UserID, &s.FirstName,
			&s.LastName, &s.StudentNo, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, nil
}

func GetStudentByID(db *sql.DB, schoolID, studentID string) (*models.Student, error) {
	s := &models.Student{}
	query := `SELECT id, school_id, class_id, user_id, first_name, last_name, student_no, is_active, created_at, updated_at
			  FROM students
			  WHERE id = $1 AND school_id = $2 AND deleted_at IS NULL`

	err := db.QueryRow(query, studentID, schoolID).Scan(
		&s.ID, &s.SchoolID, &s.ClassID, &s.UserID, &s.FirstName,
		&s.LastName, &s.StudentNo, &s.IsActive, &s.CreatedAt, &s.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}
