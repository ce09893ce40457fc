package model

import "time"

type LoanStatus string

const (
	LoanIssued   LoanStatus = "Issued"
	LoanReturned LoanStatus = "Returned"
	LoanOverdue  LoanStatus = "Overdue"
)

// Loan records one physical copy issued to one student. Status is
// derived from return_date presence, never stored.
type Loan struct {
	ID         int64      `json:"id"`
	StudentID  int64      `json:"student_id"`
	BookID     int64      `json:"book_id"`
	CopyID     string     `json:"copy_id"`
	IssueDate  time.Time  `json:"issue_date"`
	DueDate    time.Time  `json:"due_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (l Loan) Open() bool {
	return l.ReturnDate == nil
}

func (l Loan) Status() LoanStatus {
	if l.ReturnDate != nil {
		return LoanReturned
	}
	return LoanIssued
}
