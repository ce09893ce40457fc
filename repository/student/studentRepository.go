package studentrepo

import (
	"context"
	"database/sql"
	"errors"

	"librarydesk/model"
)

type Repo interface {
	Create(ctx context.Context, s *model.Student) error
	List(ctx context.Context) ([]model.Student, error)
	Get(ctx context.Context, id int64) (*model.Student, error)
	Update(ctx context.Context, s *model.Student) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, s *model.Student) error {
	const q = `
INSERT INTO students (name, department, roll_no, phone_number, email)
VALUES ($1,$2,$3,$4,$5)
RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q,
		s.Name, s.Department, s.RollNo, s.PhoneNumber, s.Email,
	).Scan(&s.ID, &s.CreatedAt)
}

func (r *repo) List(ctx context.Context) ([]model.Student, error) {
	const q = `
SELECT id, name, department, roll_no, phone_number, email, created_at
FROM students
ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Student
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.Name, &s.Department, &s.RollNo, &s.PhoneNumber, &s.Email, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repo) Get(ctx context.Context, id int64) (*model.Student, error) {
	const q = `
SELECT id, name, department, roll_no, phone_number, email, created_at
FROM students
WHERE id = $1`
	var s model.Student
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&s.ID, &s.Name, &s.Department, &s.RollNo, &s.PhoneNumber, &s.Email, &s.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repo) Update(ctx context.Context, s *model.Student) (bool, error) {
	const q = `
UPDATE students
SET name = $2, department = $3, roll_no = $4, phone_number = $5, email = $6
WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, s.ID, s.Name, s.Department, s.RollNo, s.PhoneNumber, s.Email)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}
