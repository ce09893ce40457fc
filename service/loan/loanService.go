package loansvc

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"librarydesk/model"
	loanrepo "librarydesk/repository/loan"
	"librarydesk/util/fine"
)

// errors used by controllers

type ErrCode string

const (
	ErrStudentNotFound ErrCode = "STUDENT_NOT_FOUND"
	ErrBookNotFound    ErrCode = "BOOK_NOT_FOUND"
	ErrLoanNotFound    ErrCode = "LOAN_NOT_FOUND"
	ErrInvalidCopy     ErrCode = "INVALID_COPY"
	ErrCopyTaken       ErrCode = "COPY_TAKEN"
	ErrAlreadyReturned ErrCode = "ALREADY_RETURNED"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts the error code, "" for uncoded errors.
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// dto

type IssueReq struct {
	StudentID int64
	BookID    int64
	CopyID    string
	IssueDate time.Time
	DueDate   time.Time
}

// UpdateReq carries the fields an edit may change; nil means keep.
// ReturnDate has its own operation and is never edited here.
type UpdateReq struct {
	StudentID *int64
	BookID    *int64
	CopyID    *string
	IssueDate *time.Time
	DueDate   *time.Time
}

// View is a loan joined with display fields and enriched with the
// computed fine. Status is derived: Returned when a return date is
// set, Overdue when open past the grace period, otherwise Issued.
type View struct {
	ID          int64            `json:"id"`
	StudentID   int64            `json:"student_id"`
	StudentName string           `json:"student_name"`
	RollNo      string           `json:"roll_no"`
	BookID      int64            `json:"book_id"`
	BookName    string           `json:"book_name"`
	Author      string           `json:"author"`
	CopyID      string           `json:"copy_id"`
	IssueDate   time.Time        `json:"issue_date"`
	DueDate     time.Time        `json:"due_date"`
	ReturnDate  *time.Time       `json:"return_date,omitempty"`
	Status      model.LoanStatus `json:"status"`
	Fine        int64            `json:"fine"`
	FineDisplay string           `json:"fine_display"`
	DaysOverdue int64            `json:"days_overdue"`
}

type Repo interface {
	Insert(ctx context.Context, l *model.Loan) error
	Get(ctx context.Context, id int64) (*model.Loan, error)
	Save(ctx context.Context, l *model.Loan) (bool, error)
	SetReturnDate(ctx context.Context, id int64, at time.Time) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	ListOpenByBook(ctx context.Context, bookID int64) ([]model.Loan, error)
	ListDetailed(ctx context.Context) ([]loanrepo.Row, error)
	GetDetailed(ctx context.Context, id int64) (*loanrepo.Row, error)
}

type Students interface {
	Get(ctx context.Context, id int64) (*model.Student, error)
}

type Books interface {
	Get(ctx context.Context, id int64) (*model.Book, error)
}

type Service interface {
	// Issue creates a loan for one physical copy. Fails with
	// ErrCopyTaken when an open loan already holds the copy.
	Issue(ctx context.Context, req IssueReq) (*View, error)

	// Return stamps the return date on an open loan.
	Return(ctx context.Context, loanID int64) (*View, error)

	// Update merges the supplied fields, re-checking availability
	// when the book or copy changes.
	Update(ctx context.Context, loanID int64, req UpdateReq) (*View, error)

	Delete(ctx context.Context, loanID int64) error

	// List returns all loans, most recently issued first.
	List(ctx context.Context) ([]View, error)
}

// ----- Service implementation -----

type service struct {
	r        Repo
	students Students
	books    Books
	now      func() time.Time
}

func New(r Repo, students Students, books Books) Service {
	return &service{r: r, students: students, books: books, now: time.Now}
}

func (s *service) Issue(ctx context.Context, req IssueReq) (*View, error) {
	st, err := s.students.Get(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, makeErr(ErrStudentNotFound)
	}

	bk, err := s.books.Get(ctx, req.BookID)
	if err != nil {
		return nil, err
	}
	if bk == nil {
		return nil, makeErr(ErrBookNotFound)
	}
	if req.CopyID == "" || !validCopy(bk, req.CopyID) {
		return nil, makeErr(ErrInvalidCopy)
	}

	open, err := s.r.ListOpenByBook(ctx, req.BookID)
	if err != nil {
		return nil, err
	}
	if copyIssued(open, req.BookID, req.CopyID, 0) {
		return nil, makeErr(ErrCopyTaken)
	}

	issueDate := req.IssueDate
	if issueDate.IsZero() {
		issueDate = s.now().UTC()
	}

	l := &model.Loan{
		StudentID: req.StudentID,
		BookID:    req.BookID,
		CopyID:    req.CopyID,
		IssueDate: issueDate,
		DueDate:   req.DueDate,
	}
	if err := s.r.Insert(ctx, l); err != nil {
		// concurrent issuer won the race; the partial unique index
		// over open loans is the authoritative check
		if isOpenCopyConflict(err) {
			return nil, makeErr(ErrCopyTaken)
		}
		return nil, err
	}

	return s.view(l, st, bk), nil
}

func (s *service) Return(ctx context.Context, loanID int64) (*View, error) {
	l, err := s.r.Get(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, makeErr(ErrLoanNotFound)
	}
	if l.ReturnDate != nil {
		return nil, makeErr(ErrAlreadyReturned)
	}

	at := s.now().UTC()
	ok, err := s.r.SetReturnDate(ctx, loanID, at)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, makeErr(ErrLoanNotFound)
	}

	return s.detailedView(ctx, loanID)
}

func (s *service) Update(ctx context.Context, loanID int64, req UpdateReq) (*View, error) {
	l, err := s.r.Get(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, makeErr(ErrLoanNotFound)
	}

	if req.StudentID != nil && *req.StudentID != l.StudentID {
		st, err := s.students.Get(ctx, *req.StudentID)
		if err != nil {
			return nil, err
		}
		if st == nil {
			return nil, makeErr(ErrStudentNotFound)
		}
		l.StudentID = *req.StudentID
	}

	copyChanged := false
	if req.BookID != nil && *req.BookID != l.BookID {
		l.BookID = *req.BookID
		copyChanged = true
	}
	if req.CopyID != nil && *req.CopyID != l.CopyID {
		l.CopyID = *req.CopyID
		copyChanged = true
	}
	if copyChanged {
		bk, err := s.books.Get(ctx, l.BookID)
		if err != nil {
			return nil, err
		}
		if bk == nil {
			return nil, makeErr(ErrBookNotFound)
		}
		if l.CopyID == "" || !validCopy(bk, l.CopyID) {
			return nil, makeErr(ErrInvalidCopy)
		}
		if l.ReturnDate == nil {
			open, err := s.r.ListOpenByBook(ctx, l.BookID)
			if err != nil {
				return nil, err
			}
			if copyIssued(open, l.BookID, l.CopyID, l.ID) {
				return nil, makeErr(ErrCopyTaken)
			}
		}
	}

	if req.IssueDate != nil {
		l.IssueDate = *req.IssueDate
	}
	if req.DueDate != nil {
		l.DueDate = *req.DueDate
	}

	ok, err := s.r.Save(ctx, l)
	if err != nil {
		if isOpenCopyConflict(err) {
			return nil, makeErr(ErrCopyTaken)
		}
		return nil, err
	}
	if !ok {
		return nil, makeErr(ErrLoanNotFound)
	}

	return s.detailedView(ctx, loanID)
}

func (s *service) Delete(ctx context.Context, loanID int64) error {
	ok, err := s.r.Delete(ctx, loanID)
	if err != nil {
		return err
	}
	if !ok {
		return makeErr(ErrLoanNotFound)
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]View, error) {
	rows, err := s.r.ListDetailed(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	out := make([]View, 0, len(rows))
	for _, h := range rows {
		out = append(out, rowView(h, now))
	}
	return out, nil
}

func (s *service) detailedView(ctx context.Context, loanID int64) (*View, error) {
	h, err := s.r.GetDetailed(ctx, loanID)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, makeErr(ErrLoanNotFound)
	}
	v := rowView(*h, s.now().UTC())
	return &v, nil
}

func (s *service) view(l *model.Loan, st *model.Student, bk *model.Book) *View {
	v := rowView(loanrepo.Row{
		ID:          l.ID,
		StudentID:   st.ID,
		StudentName: st.Name,
		RollNo:      st.RollNo,
		BookID:      bk.ID,
		BookName:    bk.BookName,
		Author:      bk.Author,
		CopyID:      l.CopyID,
		IssueDate:   l.IssueDate,
		DueDate:     l.DueDate,
		ReturnDate:  l.ReturnDate,
	}, s.now().UTC())
	return &v
}

func rowView(h loanrepo.Row, now time.Time) View {
	amount := fine.Compute(h.IssueDate, h.ReturnDate, now)
	overdue := fine.DaysOverdue(h.IssueDate, h.ReturnDate, now)

	status := model.LoanIssued
	switch {
	case h.ReturnDate != nil:
		status = model.LoanReturned
	case overdue > 0:
		status = model.LoanOverdue
	}

	return View{
		ID:          h.ID,
		StudentID:   h.StudentID,
		StudentName: h.StudentName,
		RollNo:      h.RollNo,
		BookID:      h.BookID,
		BookName:    h.BookName,
		Author:      h.Author,
		CopyID:      h.CopyID,
		IssueDate:   h.IssueDate,
		DueDate:     h.DueDate,
		ReturnDate:  h.ReturnDate,
		Status:      status,
		Fine:        amount,
		FineDisplay: fine.Format(amount),
		DaysOverdue: overdue,
	}
}

func isOpenCopyConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
