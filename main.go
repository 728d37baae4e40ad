// Package main library API.
//
// @title           Library Management API
// @version         1.0
// @description     library service (books, members, inventory, borrows, returns, penalties).
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

	"librarymgmt/app/echoServer"
	authctrl "librarymgmt/app/echoServer/controller/auth"
	bookctrl "librarymgmt/app/echoServer/controller/book"
	borrowctrl "librarymgmt/app/echoServer/controller/borrow"
	inventoryctrl "librarymgmt/app/echoServer/controller/inventory"
	memberctrl "librarymgmt/app/echoServer/controller/member"
	penaltyctrl "librarymgmt/app/echoServer/controller/penalty"
	returnctrl "librarymgmt/app/echoServer/controller/returns"
	"librarymgmt/app/echoServer/validation"
	"librarymgmt/config"
	bookrepo "librarymgmt/repository/book"
	borrowrepo "librarymgmt/repository/borrow"
	employeerepo "librarymgmt/repository/employee"
	inventoryrepo "librarymgmt/repository/inventory"
	memberrepo "librarymgmt/repository/member"
	penaltyrepo "librarymgmt/repository/penalty"
	returnrepo "librarymgmt/repository/returns"
	"librarymgmt/scheduler"
	authsvc "librarymgmt/service/auth"
	booksvc "librarymgmt/service/book"
	borrowsvc "librarymgmt/service/borrow"
	inventorysvc "librarymgmt/service/inventory"
	membersvc "librarymgmt/service/member"
	penaltysvc "librarymgmt/service/penalty"
	returnsvc "librarymgmt/service/returns"
	"librarymgmt/util/database"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// DB: *sql.DB, migrated on boot
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	er := employeerepo.New(db)
	mr := memberrepo.New(db)
	bkr := bookrepo.New(db)
	ivr := inventoryrepo.New(db)
	br := borrowrepo.New(db)
	rr := returnrepo.New(db)
	pr := penaltyrepo.New(db)

	// services
	as := authsvc.New(db, er, mr, cfg.JWTSecret, cfg.SignupSecret)
	ms := membersvc.New(mr)
	bks := booksvc.New(db, bkr, ivr)
	ivs := inventorysvc.New(db, ivr)
	bs := borrowsvc.New(db, br, ivr)
	rs := returnsvc.New(db, rr, br, ivr, pr, cfg.PenaltyRate)
	ps := penaltysvc.New(pr, cfg.PenaltyRate)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	bookC := &bookctrl.Controller{Svc: bks, V: v, Log: log}
	memberC := &memberctrl.Controller{Svc: ms, V: v, Log: log}
	inventoryC := &inventoryctrl.Controller{Svc: ivs, V: v, Log: log}
	borrowC := &borrowctrl.Controller{Svc: bs, V: v, Log: log}
	returnC := &returnctrl.Controller{Svc: rs, Log: log}
	penaltyC := &penaltyctrl.Controller{Svc: ps, V: v, Log: log}

	// nightly overdue report
	sched, err := scheduler.New(cfg.OverdueCron, br, log)
	if err != nil {
		log.Error("scheduler setup failed", "err", err)
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	// echo
	e := echo.New()
	e.JSONSerializer = echoServer.JSONSerializer{}
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
		Auth:      authC,
		Book:      bookC,
		Member:    memberC,
		Inventory: inventoryC,
		Borrow:    borrowC,
		Return:    returnC,
		Penalty:   penaltyC,

		JWTSecret: cfg.JWTSecret,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "env", cfg.Env, "chosen_port", port)

	e.Logger.Fatal(e.Start(":" + port))
}
