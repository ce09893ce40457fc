package studentsvc

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"librarydesk/model"
)

var (
	ErrBadInput    = errors.New("bad input")
	ErrNotFound    = errors.New("student not found")
	ErrRollNoTaken = errors.New("roll number already registered")
)

type Repo interface {
	Create(ctx context.Context, s *model.Student) error
	List(ctx context.Context) ([]model.Student, error)
	Get(ctx context.Context, id int64) (*model.Student, error)
	Update(ctx context.Context, s *model.Student) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type Service interface {
	Create(ctx context.Context, s *model.Student) error
	List(ctx context.Context) ([]model.Student, error)
	Get(ctx context.Context, id int64) (*model.Student, error)
	Update(ctx context.Context, s *model.Student) error
	Delete(ctx context.Context, id int64) error
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r} }

func (s *service) Create(ctx context.Context, st *model.Student) error {
	st.Name = strings.TrimSpace(st.Name)
	st.RollNo = strings.TrimSpace(st.RollNo)
	if st.Name == "" || st.Department == "" || st.RollNo == "" || st.PhoneNumber == "" || st.Email == "" {
		return ErrBadInput
	}
	if err := s.r.Create(ctx, st); err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return derr
		}
		return err
	}
	return nil
}

func mapDuplicateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		cn := strings.ToLower(pgErr.ConstraintName)
		msg := strings.ToLower(pgErr.Message)
		if strings.Contains(cn, "roll_no") || strings.Contains(msg, "roll_no") {
			return ErrRollNoTaken
		}
		return ErrBadInput
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]model.Student, error) { return s.r.List(ctx) }

func (s *service) Get(ctx context.Context, id int64) (*model.Student, error) {
	st, err := s.r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, ErrNotFound
	}
	return st, nil
}

func (s *service) Update(ctx context.Context, st *model.Student) error {
	if st.Name == "" || st.Department == "" || st.RollNo == "" || st.PhoneNumber == "" || st.Email == "" {
		return ErrBadInput
	}
	ok, err := s.r.Update(ctx, st)
	if err != nil {
		if derr := mapDuplicateErr(err); derr != nil {
			return derr
		}
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
