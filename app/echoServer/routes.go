package echoServer

import (
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"librarymgmt/app/echoServer/controller/auth"
	"librarymgmt/app/echoServer/controller/book"
	"librarymgmt/app/echoServer/controller/borrow"
	"librarymgmt/app/echoServer/controller/inventory"
	"librarymgmt/app/echoServer/controller/member"
	"librarymgmt/app/echoServer/controller/penalty"
	"librarymgmt/app/echoServer/controller/returns"
)

type C struct {
	Auth      *auth.Controller
	Book      *book.Controller
	Member    *member.Controller
	Inventory *inventory.Controller
	Borrow    *borrow.Controller
	Return    *returns.Controller
	Penalty   *penalty.Controller

	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	api := e.Group("/api")

	// mutating routes require a resolvable staff identity
	guard := echojwt.WithConfig(echojwt.Config{
		SigningKey:    []byte(c.JWTSecret),
		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization:Bearer ",
	})

	// Auth
	api.POST("/auth/signup", c.Auth.Signup)
	api.POST("/auth/signin", c.Auth.Signin)

	// Books
	api.GET("/books", c.Book.List)
	api.GET("/books/:id", c.Book.Detail)
	api.POST("/books", c.Book.Create, guard)
	api.PATCH("/books/:id", c.Book.Update, guard)
	api.DELETE("/books/:id", c.Book.Delete, guard)

	// Members
	api.GET("/members", c.Member.List)
	api.GET("/members/search", c.Member.Search)
	api.GET("/members/:id", c.Member.Detail)
	api.POST("/members", c.Member.Create, guard)
	api.DELETE("/members/:id", c.Member.Delete, guard)

	// Inventory
	api.GET("/inventory", c.Inventory.List)
	api.GET("/inventory/:id", c.Inventory.Detail)
	api.POST("/inventory", c.Inventory.Create, guard)
	api.PATCH("/inventory/:id", c.Inventory.Patch, guard)

	// Borrow workflow
	api.GET("/borrow", c.Borrow.List)
	api.GET("/borrow/:id", c.Borrow.Detail)
	api.POST("/borrow", c.Borrow.Create, guard)

	// Return workflow
	api.GET("/return", c.Return.List)
	api.GET("/return/:id", c.Return.Detail)
	api.POST("/return/:id", c.Return.Create, guard)

	// Penalty ledger
	api.GET("/penalty", c.Penalty.List)
	api.GET("/penalty/value", c.Penalty.Value)
	api.GET("/penalty/:id", c.Penalty.Detail)
	api.POST("/penalty", c.Penalty.Create, guard)
}
