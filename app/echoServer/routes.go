package echoServer

import (
	"github.com/labstack/echo/v4"

	"librarydesk/app/echoServer/controller/book"
	"librarydesk/app/echoServer/controller/loan"
	"librarydesk/app/echoServer/controller/student"
)

type C struct {
	Student *student.Controller
	Book    *book.Controller
	Loan    *loan.Controller
}

func Register(e *echo.Echo, c C) {
	v1 := e.Group("/v1")

	// Students
	v1.GET("/students", c.Student.List)
	v1.POST("/students", c.Student.Create)
	v1.GET("/students/:id", c.Student.Detail)
	v1.PUT("/students/:id", c.Student.Update)
	v1.DELETE("/students/:id", c.Student.Delete)

	// Books
	v1.GET("/books", c.Book.List)
	v1.POST("/books", c.Book.Create)
	v1.GET("/books/:id", c.Book.Detail)
	v1.PUT("/books/:id", c.Book.Update)
	v1.DELETE("/books/:id", c.Book.Delete)
	// Copy management
	v1.PUT("/books/:id/copies", c.Book.AddCopy)
	v1.DELETE("/books/:id/copies/:copyId", c.Book.RemoveCopy)

	// Loans
	v1.GET("/loans", c.Loan.List)
	v1.POST("/loans", c.Loan.Create)
	v1.PUT("/loans/:id", c.Loan.Update)
	v1.PUT("/loans/:id/return", c.Loan.Return)
	v1.DELETE("/loans/:id", c.Loan.Delete)
}
