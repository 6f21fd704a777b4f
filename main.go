// Package main library management API.
//
// @title           Library Management API
// @version         1.0
// @description     Library service (authors, books, members, loans, fines).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	echoSwagger "github.com/swaggo/echo-swagger"

	"libraryms/app/echoServer"
	authctrl "libraryms/app/echoServer/controller/auth"
	authorctrl "libraryms/app/echoServer/controller/author"
	bookctrl "libraryms/app/echoServer/controller/book"
	loanctrl "libraryms/app/echoServer/controller/loan"
	memberctrl "libraryms/app/echoServer/controller/member"
	"libraryms/app/echoServer/validation"
	"libraryms/config"
	authorrepo "libraryms/repository/author"
	bookrepo "libraryms/repository/book"
	loanrepo "libraryms/repository/loan"
	memberrepo "libraryms/repository/member"
	staffrepo "libraryms/repository/staff"
	authsvc "libraryms/service/auth"
	librarysvc "libraryms/service/library"
	"libraryms/util/database"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	fineRate, err := decimal.NewFromString(cfg.FineDailyRate)
	if err != nil {
		log.Error("invalid FINE_DAILY_RATE", "value", cfg.FineDailyRate, "err", err)
		os.Exit(1)
	}

	// DB: *sql.DB
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ar := authorrepo.New(db.DB)
	br := bookrepo.New(db.DB)
	mr := memberrepo.New(db.DB)
	lr := loanrepo.New(db.DB)
	sr := staffrepo.New(db.DB)

	// services
	lib := librarysvc.New(db, ar, br, mr, lr, fineRate)
	as := authsvc.New(sr, cfg.JWTSecret)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	authorC := &authorctrl.Controller{Svc: lib, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: lib, V: v, Log: log}
	memberC := &memberctrl.Controller{Svc: lib, V: v, Log: log}
	loanC := &loanctrl.Controller{Svc: lib, V: v, Log: log}

	// echo
	e := echo.New()
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{"status": "ok"})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:      authC,
		Author:    authorC,
		Book:      bookC,
		Member:    memberC,
		Loan:      loanC,
		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env, "fine_daily_rate", fineRate)

	e.Logger.Fatal(e.Start(":" + port))
}
