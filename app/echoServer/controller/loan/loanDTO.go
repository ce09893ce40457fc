package loan

type CreateLoanReq struct {
	StudentID int64  `json:"student_id" validate:"required,gt=0"`
	BookID    int64  `json:"book_id" validate:"required,gt=0"`
	CopyID    string `json:"copy_id" validate:"required"`
	IssueDate string `json:"issue_date"` // optional, defaults to now
	DueDate   string `json:"due_date" validate:"required"`
}

type UpdateLoanReq struct {
	StudentID *int64  `json:"student_id" validate:"omitempty,gt=0"`
	BookID    *int64  `json:"book_id" validate:"omitempty,gt=0"`
	CopyID    *string `json:"copy_id"`
	IssueDate *string `json:"issue_date"`
	DueDate   *string `json:"due_date"`
}
