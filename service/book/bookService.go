package booksvc

import (
	"context"
	"errors"
	"strings"

	"librarydesk/model"
)

var (
	ErrBadInput = errors.New("bad input")
	ErrNotFound = errors.New("book not found")
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

type Service interface {
	Create(ctx context.Context, b *model.Book) error
	List(ctx context.Context) ([]model.Book, error)
	Get(ctx context.Context, id int64) (*model.Book, error)
	Update(ctx context.Context, b *model.Book) error
	Delete(ctx context.Context, id int64) error

	// AddCopy registers another physical copy; adding an existing
	// copy id is a no-op. Returns the refreshed book.
	AddCopy(ctx context.Context, bookID int64, copyID string) (*model.Book, error)

	// RemoveCopy drops a damaged/lost copy from the book.
	RemoveCopy(ctx context.Context, bookID int64, copyID string) (*model.Book, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r} }

func (s *service) Create(ctx context.Context, b *model.Book) error {
	b.BookName = strings.TrimSpace(b.BookName)
	b.Author = strings.TrimSpace(b.Author)
	if b.BookName == "" || b.Author == "" {
		return ErrBadInput
	}
	for i, cid := range b.CopyIDs {
		b.CopyIDs[i] = strings.TrimSpace(cid)
		if b.CopyIDs[i] == "" {
			return ErrBadInput
		}
	}
	return s.r.Create(ctx, b)
}

func (s *service) List(ctx context.Context) ([]model.Book, error) { return s.r.List(ctx) }

func (s *service) Get(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *service) Update(ctx context.Context, b *model.Book) error {
	if b.BookName == "" || b.Author == "" {
		return ErrBadInput
	}
	ok, err := s.r.Update(ctx, b)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	ok, err := s.r.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *service) AddCopy(ctx context.Context, bookID int64, copyID string) (*model.Book, error) {
	copyID = strings.TrimSpace(copyID)
	if copyID == "" {
		return nil, ErrBadInput
	}
	b, err := s.Get(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if _, err := s.r.AddCopy(ctx, b.ID, copyID); err != nil {
		return nil, err
	}
	return s.Get(ctx, bookID)
}

func (s *service) RemoveCopy(ctx context.Context, bookID int64, copyID string) (*model.Book, error) {
	b, err := s.Get(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if _, err := s.r.RemoveCopy(ctx, b.ID, copyID); err != nil {
		return nil, err
	}
	return s.Get(ctx, bookID)
}
