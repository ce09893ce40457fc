package student

type StudentReq struct {
	Name        string `json:"name" validate:"required"`
	Department  string `json:"department" validate:"required"`
	RollNo      string `json:"roll_no" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
}
