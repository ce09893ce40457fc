package book

type CreateBookReq struct {
	BookName    string   `json:"book_name" validate:"required"`
	Author      string   `json:"author" validate:"required"`
	Publication string   `json:"publication"`
	Year        int      `json:"year" validate:"omitempty,gte=0"`
	CopyIDs     []string `json:"copy_ids"`
}

type UpdateBookReq struct {
	BookName    string `json:"book_name" validate:"required"`
	Author      string `json:"author" validate:"required"`
	Publication string `json:"publication"`
	Year        int    `json:"year" validate:"omitempty,gte=0"`
}

type AddCopyReq struct {
	CopyID string `json:"copy_id" validate:"required"`
}
