package echoServer

import (
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	authctrl "libraryms/app/echoServer/controller/auth"
	authorctrl "libraryms/app/echoServer/controller/author"
	bookctrl "libraryms/app/echoServer/controller/book"
	loanctrl "libraryms/app/echoServer/controller/loan"
	memberctrl "libraryms/app/echoServer/controller/member"
)

type C struct {
	Auth      *authctrl.Controller
	Author    *authorctrl.Controller
	Book      *bookctrl.Controller
	Member    *memberctrl.Controller
	Loan      *loanctrl.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/v1")
	pub.POST("/staff/register", c.Auth.Register)
	pub.POST("/staff/login", c.Auth.Login)

	// Everything else needs a staff token.
	api := e.Group("/v1")
	api.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))

	// Catalog
	api.POST("/authors", c.Author.Create)
	api.GET("/authors", c.Author.List)
	api.GET("/authors/:id", c.Author.Detail)
	api.PUT("/authors/:id", c.Author.Update)
	api.DELETE("/authors/:id", c.Author.Delete)

	api.POST("/books", c.Book.Create)
	api.GET("/books", c.Book.List)
	api.GET("/books/:id", c.Book.Detail)
	api.PUT("/books/:id", c.Book.Update)
	api.DELETE("/books/:id", c.Book.Delete)

	// Members
	api.POST("/members", c.Member.Create)
	api.GET("/members", c.Member.List)
	api.GET("/members/:id", c.Member.Detail)
	api.GET("/members/:id/loans", c.Member.Loans)
	api.PUT("/members/:id", c.Member.Update)
	api.DELETE("/members/:id", c.Member.Delete)

	// Circulation. Static routes before :id so "active" never parses as one.
	api.POST("/loans", c.Loan.Issue)
	api.GET("/loans/active", c.Loan.ListActive)
	api.GET("/loans/overdue", c.Loan.ListOverdue)
	api.GET("/loans/:id", c.Loan.Detail)
	api.POST("/loans/:id/return", c.Loan.Return)

	// Operations
	api.POST("/reconciliation", c.Loan.Reconcile)
	api.GET("/statistics", c.Loan.Statistics)
}
