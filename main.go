// Package main library loan API.
//
// @title           Library Desk API
// @version         1.0
// @description     library management service (students, books, loans, fines).
// @BasePath        /
// @schemes         http
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"librarydesk/app/echoServer"
	bookctrl "librarydesk/app/echoServer/controller/book"
	loanctrl "librarydesk/app/echoServer/controller/loan"
	studentctrl "librarydesk/app/echoServer/controller/student"
	"librarydesk/app/echoServer/validation"
	"librarydesk/config"
	bookrepo "librarydesk/repository/book"
	loanrepo "librarydesk/repository/loan"
	studentrepo "librarydesk/repository/student"
	booksvc "librarydesk/service/book"
	loansvc "librarydesk/service/loan"
	studentsvc "librarydesk/service/student"
	"librarydesk/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	sr := studentrepo.New(db.SQL)
	br := bookrepo.New(db.SQL)
	lr := loanrepo.New(db.SQL)

	// services
	ss := studentsvc.New(sr)
	bs := booksvc.New(br)
	lsvc := loansvc.New(lr, sr, br)

	// controllers
	v := validator.New()
	studentC := &studentctrl.Controller{Svc: ss, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bs, V: v, Log: log}
	loanC := &loanctrl.Controller{Svc: lsvc, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Student: studentC,
		Book:    bookC,
		Loan:    loanC,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	slog.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
