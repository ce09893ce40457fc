package studentsvc

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"librarydesk/model"
)

type mockRepo struct {
	createFn func(ctx context.Context, s *model.Student) error
	listFn   func(ctx context.Context) ([]model.Student, error)
	getFn    func(ctx context.Context, id int64) (*model.Student, error)
	updateFn func(ctx context.Context, s *model.Student) (bool, error)
	deleteFn func(ctx context.Context, id int64) (bool, error)
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, s *model.Student) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, s)
}

func (m *mockRepo) List(ctx context.Context) ([]model.Student, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx)
}

func (m *mockRepo) Get(ctx context.Context, id int64) (*model.Student, error) {
	if m.getFn == nil {
		return nil, nil
	}
	return m.getFn(ctx, id)
}

func (m *mockRepo) Update(ctx context.Context, s *model.Student) (bool, error) {
	if m.updateFn == nil {
		return true, nil
	}
	return m.updateFn(ctx, s)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if m.deleteFn == nil {
		return true, nil
	}
	return m.deleteFn(ctx, id)
}

func valid() *model.Student {
	return &model.Student{
		Name:        "Asha Rao",
		Department:  "CS",
		RollNo:      "CS-101",
		PhoneNumber: "555-0100",
		Email:       "asha@example.com",
	}
}

// --- tests ---

func TestCreate_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, s *model.Student) error {
			s.ID = 42
			return nil
		},
	}
	svc := New(m)

	st := valid()
	require.NoError(t, svc.Create(ctx, st))
	require.Equal(t, int64(42), st.ID)
}

func TestCreate_BadInput(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{})

	st := valid()
	st.RollNo = "  "
	err := svc.Create(ctx, st)
	require.ErrorIs(t, err, ErrBadInput)
}

func TestCreate_RollNoTaken(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(ctx context.Context, s *model.Student) error {
			return &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "students_roll_no_uq",
			}
		},
	}
	svc := New(m)

	err := svc.Create(ctx, valid())
	require.ErrorIs(t, err, ErrRollNoTaken)
}

func TestCreate_OtherErrorsPassThrough(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection reset")
	m := &mockRepo{
		createFn: func(ctx context.Context, s *model.Student) error { return boom },
	}
	svc := New(m)

	err := svc.Create(ctx, valid())
	require.ErrorIs(t, err, boom)
}

func TestGet_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := New(&mockRepo{})

	_, err := svc.Get(ctx, 99)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_NotFound(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		updateFn: func(ctx context.Context, s *model.Student) (bool, error) { return false, nil },
	}
	svc := New(m)

	err := svc.Update(ctx, valid())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		deleteFn: func(ctx context.Context, id int64) (bool, error) { return false, nil },
	}
	svc := New(m)

	require.ErrorIs(t, svc.Delete(ctx, 99), ErrNotFound)
}
