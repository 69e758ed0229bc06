package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"coursemanager/internal/entity"
)

// CourseData carries the four mutable course fields for create/update.
type CourseData struct {
	Name          string
	StartDatetime time.Time
	EndDatetime   time.Time
	Status        string
}

type CourseRepository struct {
	db *sql.DB
}

func NewCourseRepository(db *sql.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// buildGetAllQuery maps sort/status options onto a parameterized query.
// Unknown sort values fall back to name ascending.
func buildGetAllQuery(sort, status string) (string, []any) {
	query := `SELECT id, name, start_datetime, end_datetime, status, created_at FROM courses`
	var args []any

	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}

	switch sort {
	case "z_a":
		query += ` ORDER BY name DESC`
	case "date_desc":
		query += ` ORDER BY created_at DESC`
	case "date_asc":
		query += ` ORDER BY created_at ASC`
	default: // a_z
		query += ` ORDER BY name ASC`
	}

	return query, args
}

// GetAll returns courses filtered by status (empty = all) and ordered
// by the given sort option.
func (r *CourseRepository) GetAll(ctx context.Context, sort, status string) ([]entity.Course, error) {
	query, args := buildGetAllQuery(sort, status)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var courses []entity.Course
	for rows.Next() {
		var c entity.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.StartDatetime, &c.EndDatetime, &c.Status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	return courses, nil
}

func (r *CourseRepository) GetByID(ctx context.Context, id int) (*entity.Course, error) {
	var c entity.Course
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, start_datetime, end_datetime, status, created_at
		FROM courses WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.StartDatetime, &c.EndDatetime, &c.Status, &c.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get course %d: %w", id, err)
	}
	return &c, nil
}

// Create inserts one course row. Status defaults to active when empty.
func (r *CourseRepository) Create(ctx context.Context, data CourseData) error {
	if data.Status == "" {
		data.Status = entity.StatusActive
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO courses (name, start_datetime, end_datetime, status)
		VALUES ($1, $2, $3, $4)
	`, data.Name, data.StartDatetime, data.EndDatetime, data.Status)
	if err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Update replaces the four mutable fields by id. Updating a row that
// does not exist reports ErrNotFound.
func (r *CourseRepository) Update(ctx context.Context, id int, data CourseData) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE courses SET
			name = $1,
			start_datetime = $2,
			end_datetime = $3,
			status = $4
		WHERE id = $5
	`, data.Name, data.StartDatetime, data.EndDatetime, data.Status, id)
	if err != nil {
		return fmt.Errorf("update course %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update course %d: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a course row. Deleting a row that is already gone
// reports ErrNotFound.
func (r *CourseRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete course %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete course %d: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
