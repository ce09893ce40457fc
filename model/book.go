package model

import "time"

// Book is a title; each physical copy is tracked by a copy id unique
// within the book. A book with no enumerated copies has one implicit
// copy whose id is the book id itself.
type Book struct {
	ID          int64     `json:"id"`
	BookName    string    `json:"book_name"`
	Author      string    `json:"author"`
	Publication string    `json:"publication,omitempty"`
	Year        int       `json:"year,omitempty"`
	CopyIDs     []string  `json:"copy_ids"`
	CreatedAt   time.Time `json:"created_at"`
}
