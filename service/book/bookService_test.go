// service/book/book_service_test.go
package booksvc_test

import (
	"context"
	"errors"
	"testing"

	"librarydesk/model"
	booksvc "librarydesk/service/book"
)

type repoMock struct {
	createFn     func(ctx context.Context, b *model.Book) error
	listFn       func(ctx context.Context) ([]model.Book, error)
	getFn        func(ctx context.Context, id int64) (*model.Book, error)
	updateFn     func(ctx context.Context, b *model.Book) (bool, error)
	deleteFn     func(ctx context.Context, id int64) (bool, error)
	addCopyFn    func(ctx context.Context, bookID int64, copyID string) (bool, error)
	removeCopyFn func(ctx context.Context, bookID int64, copyID string) (bool, error)
}

func (m *repoMock) Create(ctx context.Context, b *model.Book) error { return m.createFn(ctx, b) }
func (m *repoMock) List(ctx context.Context) ([]model.Book, error)  { return m.listFn(ctx) }
func (m *repoMock) Get(ctx context.Context, id int64) (*model.Book, error) {
	return m.getFn(ctx, id)
}
func (m *repoMock) Update(ctx context.Context, b *model.Book) (bool, error) {
	return m.updateFn(ctx, b)
}
func (m *repoMock) Delete(ctx context.Context, id int64) (bool, error) { return m.deleteFn(ctx, id) }
func (m *repoMock) AddCopy(ctx context.Context, bookID int64, copyID string) (bool, error) {
	return m.addCopyFn(ctx, bookID, copyID)
}
func (m *repoMock) RemoveCopy(ctx context.Context, bookID int64, copyID string) (bool, error) {
	return m.removeCopyFn(ctx, bookID, copyID)
}

func TestCreate_Validation(t *testing.T) {
	s := booksvc.New(&repoMock{})
	if err := s.Create(context.Background(), &model.Book{Author: "Knuth"}); !errors.Is(err, booksvc.ErrBadInput) {
		t.Fatalf("expected ErrBadInput for empty name, got %v", err)
	}
	if err := s.Create(context.Background(), &model.Book{BookName: "TAOCP"}); !errors.Is(err, booksvc.ErrBadInput) {
		t.Fatalf("expected ErrBadInput for empty author, got %v", err)
	}
	if err := s.Create(context.Background(), &model.Book{BookName: "TAOCP", Author: "Knuth", CopyIDs: []string{" "}}); !errors.Is(err, booksvc.ErrBadInput) {
		t.Fatalf("expected ErrBadInput for blank copy id, got %v", err)
	}
}

func TestCreate_Success(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book) error {
			if b.BookName != "SICP" || b.Author != "Abelson" || len(b.CopyIDs) != 2 {
				return errors.New("bad args")
			}
			b.ID = 42
			return nil
		},
	}
	s := booksvc.New(m)
	b := &model.Book{BookName: "SICP", Author: "Abelson", CopyIDs: []string{"C1", "C2"}}
	if err := s.Create(context.Background(), b); err != nil || b.ID != 42 {
		t.Fatalf("got id=%v err=%v; want 42 nil", b.ID, err)
	}
}

func TestGet_NotFound(t *testing.T) {
	m := &repoMock{
		getFn: func(ctx context.Context, id int64) (*model.Book, error) { return nil, nil },
	}
	s := booksvc.New(m)
	if _, err := s.Get(context.Background(), 99); !errors.Is(err, booksvc.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddCopy(t *testing.T) {
	added := false
	m := &repoMock{
		getFn: func(ctx context.Context, id int64) (*model.Book, error) {
			b := &model.Book{ID: id, BookName: "SICP", Author: "Abelson", CopyIDs: []string{"C1"}}
			if added {
				b.CopyIDs = append(b.CopyIDs, "C2")
			}
			return b, nil
		},
		addCopyFn: func(ctx context.Context, bookID int64, copyID string) (bool, error) {
			if copyID != "C2" {
				return false, errors.New("bad copy id")
			}
			added = true
			return true, nil
		},
	}
	s := booksvc.New(m)

	if _, err := s.AddCopy(context.Background(), 7, "  "); !errors.Is(err, booksvc.ErrBadInput) {
		t.Fatalf("expected ErrBadInput for blank copy id, got %v", err)
	}

	b, err := s.AddCopy(context.Background(), 7, "C2")
	if err != nil {
		t.Fatalf("AddCopy error: %v", err)
	}
	if len(b.CopyIDs) != 2 {
		t.Fatalf("got copy ids %v; want 2 entries", b.CopyIDs)
	}
}

func TestRemoveCopy_BookMissing(t *testing.T) {
	m := &repoMock{
		getFn: func(ctx context.Context, id int64) (*model.Book, error) { return nil, nil },
	}
	s := booksvc.New(m)
	if _, err := s.RemoveCopy(context.Background(), 7, "C1"); !errors.Is(err, booksvc.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPassThroughs(t *testing.T) {
	m := &repoMock{
		listFn:   func(ctx context.Context) ([]model.Book, error) { return nil, nil },
		deleteFn: func(ctx context.Context, id int64) (bool, error) { return true, nil },
		updateFn: func(ctx context.Context, b *model.Book) (bool, error) { return true, nil },
	}
	s := booksvc.New(m)

	if _, err := s.List(context.Background()); err != nil {
		t.Fatalf("List error: %v", err)
	}
	if err := s.Delete(context.Background(), 7); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := s.Update(context.Background(), &model.Book{ID: 7, BookName: "SICP", Author: "Abelson"}); err != nil {
		t.Fatalf("Update error: %v", err)
	}
}
