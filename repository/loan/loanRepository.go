package loanrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"librarydesk/model"
)

// Row is a loan joined with the student and book display fields.
type Row struct {
	ID          int64      `json:"id"`
	StudentID   int64      `json:"student_id"`
	StudentName string     `json:"student_name"`
	RollNo      string     `json:"roll_no"`
	BookID      int64      `json:"book_id"`
	BookName    string     `json:"book_name"`
	Author      string     `json:"author"`
	CopyID      string     `json:"copy_id"`
	IssueDate   time.Time  `json:"issue_date"`
	DueDate     time.Time  `json:"due_date"`
	ReturnDate  *time.Time `json:"return_date,omitempty"`
}

type Repo interface {
	Insert(ctx context.Context, l *model.Loan) error
	Get(ctx context.Context, id int64) (*model.Loan, error)
	Save(ctx context.Context, l *model.Loan) (bool, error)
	SetReturnDate(ctx context.Context, id int64, at time.Time) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)

	// ListOpenByBook returns the open loans for one book, newest first.
	ListOpenByBook(ctx context.Context, bookID int64) ([]model.Loan, error)

	// ListDetailed returns all loans joined with display fields,
	// most recently issued first.
	ListDetailed(ctx context.Context) ([]Row, error)
	GetDetailed(ctx context.Context, id int64) (*Row, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Insert(ctx context.Context, l *model.Loan) error {
	const q = `
INSERT INTO loans (student_id, book_id, copy_id, issue_date, due_date)
VALUES ($1,$2,$3,$4,$5)
RETURNING id, created_at`
	return r.db.QueryRowContext(ctx, q,
		l.StudentID, l.BookID, l.CopyID, l.IssueDate, l.DueDate,
	).Scan(&l.ID, &l.CreatedAt)
}

func (r *repo) Get(ctx context.Context, id int64) (*model.Loan, error) {
	const q = `
SELECT id, student_id, book_id, copy_id, issue_date, due_date, return_date, created_at
FROM loans
WHERE id = $1`
	var l model.Loan
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&l.ID, &l.StudentID, &l.BookID, &l.CopyID, &l.IssueDate, &l.DueDate, &l.ReturnDate, &l.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repo) Save(ctx context.Context, l *model.Loan) (bool, error) {
	const q = `
UPDATE loans
SET student_id = $2, book_id = $3, copy_id = $4, issue_date = $5, due_date = $6
WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, l.ID, l.StudentID, l.BookID, l.CopyID, l.IssueDate, l.DueDate)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) SetReturnDate(ctx context.Context, id int64, at time.Time) (bool, error) {
	const q = `
UPDATE loans
SET return_date = $2
WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, at)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM loans WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) ListOpenByBook(ctx context.Context, bookID int64) ([]model.Loan, error) {
	const q = `
SELECT id, student_id, book_id, copy_id, issue_date, due_date, return_date, created_at
FROM loans
WHERE book_id = $1 AND return_date IS NULL
ORDER BY issue_date DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Loan
	for rows.Next() {
		var l model.Loan
		if err := rows.Scan(&l.ID, &l.StudentID, &l.BookID, &l.CopyID, &l.IssueDate, &l.DueDate, &l.ReturnDate, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

const detailedSelect = `
SELECT
	l.id          AS id,
	l.student_id  AS student_id,
	s.name        AS student_name,
	s.roll_no     AS roll_no,
	l.book_id     AS book_id,
	b.book_name   AS book_name,
	b.author      AS author,
	l.copy_id     AS copy_id,
	l.issue_date  AS issue_date,
	l.due_date    AS due_date,
	l.return_date AS return_date
FROM loans l
JOIN students s ON s.id = l.student_id
JOIN books b    ON b.id = l.book_id`

func (r *repo) ListDetailed(ctx context.Context) ([]Row, error) {
	const q = detailedSelect + `
ORDER BY l.issue_date DESC, l.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var h Row
		if err := rows.Scan(
			&h.ID, &h.StudentID, &h.StudentName, &h.RollNo,
			&h.BookID, &h.BookName, &h.Author, &h.CopyID,
			&h.IssueDate, &h.DueDate, &h.ReturnDate,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *repo) GetDetailed(ctx context.Context, id int64) (*Row, error) {
	const q = detailedSelect + `
WHERE l.id = $1`
	var h Row
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&h.ID, &h.StudentID, &h.StudentName, &h.RollNo,
		&h.BookID, &h.BookName, &h.Author, &h.CopyID,
		&h.IssueDate, &h.DueDate, &h.ReturnDate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}
