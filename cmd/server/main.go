// Package main ShareIt API.
//
// @title           ShareIt API
// @version         1.0
// @description     Peer-to-peer item rental: users, items, bookings, requests, comments.
// @BasePath        /
// @schemes         http
package main

import (
	"context"
	"log/slog"
	"os"

	"shareit/app/echoserver"
	bookingctrl "shareit/app/echoserver/controller/booking"
	itemctrl "shareit/app/echoserver/controller/item"
	requestctrl "shareit/app/echoserver/controller/request"
	userctrl "shareit/app/echoserver/controller/user"
	"shareit/app/echoserver/validation"
	"shareit/config"
	bookingrepo "shareit/repository/booking"
	commentrepo "shareit/repository/comment"
	itemrepo "shareit/repository/item"
	requestrepo "shareit/repository/request"
	userrepo "shareit/repository/user"
	bookingsvc "shareit/service/booking"
	commentsvc "shareit/service/comment"
	itemsvc "shareit/service/item"
	requestsvc "shareit/service/request"
	usersvc "shareit/service/user"
	"shareit/util/database"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
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
	ur := userrepo.New()
	ir := itemrepo.New()
	rr := requestrepo.New()
	br := bookingrepo.New()
	cr := commentrepo.New()

	// services
	us := usersvc.New(db, ur)
	bs := bookingsvc.New(db, br, ur, ir)
	is := itemsvc.New(db, ir, ur, rr, cr, bs)
	rs := requestsvc.New(db, rr, ir, ur)
	cs := commentsvc.New(db, cr, br, ir, ur)

	// controllers
	userC := &userctrl.Controller{Svc: us, Log: log}
	itemC := &itemctrl.Controller{Svc: is, Comments: cs, Log: log}
	bookingC := &bookingctrl.Controller{Svc: bs, Log: log}
	requestC := &requestctrl.Controller{Svc: rs, Log: log}

	// echo
	e := echo.New()
	echoserver.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoserver.Register(e, echoserver.C{
		User:    userC,
		Item:    itemC,
		Booking: bookingC,
		Request: requestC,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}
	if port == "" {
		port = "8080"
	}

	slog.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
