package bookrepo

import (
	"context"
	"database/sql"
	"errors"

	"librarydesk/model"
)

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	List(ctx context.Context) ([]model.Book, error)
	Get(ctx context.Context, id int64) (*model.Book, error)
	Update(ctx context.Context, b *model.Book) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)

	AddCopy(ctx context.Context, bookID int64, copyID string) (bool, error)
	RemoveCopy(ctx context.Context, bookID int64, copyID string) (bool, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, b *model.Book) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const q = `
INSERT INTO books (book_name, author, publication, year)
VALUES ($1,$2,$3,$4)
RETURNING id, created_at`
	if err = tx.QueryRowContext(ctx, q, b.BookName, b.Author, b.Publication, b.Year).Scan(&b.ID, &b.CreatedAt); err != nil {
		return err
	}

	const ins = `INSERT INTO book_copies (book_id, copy_id) VALUES ($1,$2) ON CONFLICT DO NOTHING`
	for _, cid := range b.CopyIDs {
		if _, err = tx.ExecContext(ctx, ins, b.ID, cid); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *repo) List(ctx context.Context) ([]model.Book, error) {
	const q = `
SELECT id, book_name, author, publication, year, created_at
FROM books
ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	idx := map[int64]int{}
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.BookName, &b.Author, &b.Publication, &b.Year, &b.CreatedAt); err != nil {
			return nil, err
		}
		idx[b.ID] = len(out)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	const qc = `SELECT book_id, copy_id FROM book_copies ORDER BY id`
	crows, err := r.db.QueryContext(ctx, qc)
	if err != nil {
		return nil, err
	}
	defer crows.Close()
	for crows.Next() {
		var bookID int64
		var copyID string
		if err := crows.Scan(&bookID, &copyID); err != nil {
			return nil, err
		}
		if i, ok := idx[bookID]; ok {
			out[i].CopyIDs = append(out[i].CopyIDs, copyID)
		}
	}
	return out, crows.Err()
}

func (r *repo) Get(ctx context.Context, id int64) (*model.Book, error) {
	const q = `
SELECT id, book_name, author, publication, year, created_at
FROM books
WHERE id = $1`
	var b model.Book
	err := r.db.QueryRowContext(ctx, q, id).Scan(&b.ID, &b.BookName, &b.Author, &b.Publication, &b.Year, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	const qc = `SELECT copy_id FROM book_copies WHERE book_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, qc, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var cid string
		if err := rows.Scan(&cid); err != nil {
			return nil, err
		}
		b.CopyIDs = append(b.CopyIDs, cid)
	}
	return &b, rows.Err()
}

func (r *repo) Update(ctx context.Context, b *model.Book) (bool, error) {
	const q = `
UPDATE books
SET book_name = $2, author = $3, publication = $4, year = $5
WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, b.ID, b.BookName, b.Author, b.Publication, b.Year)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

// AddCopy registers one more physical copy; duplicates are a no-op.
func (r *repo) AddCopy(ctx context.Context, bookID int64, copyID string) (bool, error) {
	const q = `
INSERT INTO book_copies (book_id, copy_id)
VALUES ($1,$2)
ON CONFLICT (book_id, copy_id) DO NOTHING`
	res, err := r.db.ExecContext(ctx, q, bookID, copyID)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) RemoveCopy(ctx context.Context, bookID int64, copyID string) (bool, error) {
	const q = `DELETE FROM book_copies WHERE book_id = $1 AND copy_id = $2`
	res, err := r.db.ExecContext(ctx, q, bookID, copyID)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}
