package echoserver

import (
	"shareit/app/echoserver/controller/booking"
	"shareit/app/echoserver/controller/item"
	"shareit/app/echoserver/controller/request"
	"shareit/app/echoserver/controller/user"

	"github.com/labstack/echo/v4"
)

type C struct {
	User    *user.Controller
	Item    *item.Controller
	Booking *booking.Controller
	Request *request.Controller
}

func Register(e *echo.Echo, c C) {
	// Users
	e.POST("/users", c.User.Create)
	e.GET("/users", c.User.All)
	e.GET("/users/:id", c.User.Get)
	e.PATCH("/users/:id", c.User.Update)
	e.DELETE("/users/:id", c.User.Delete)

	// Items
	e.POST("/items", c.Item.Create)
	e.GET("/items", c.Item.OwnerItems)
	e.GET("/items/search", c.Item.Search)
	e.GET("/items/:id", c.Item.Get)
	e.PATCH("/items/:id", c.Item.Update)
	e.DELETE("/items/:id", c.Item.Delete)
	e.POST("/items/:id/comment", c.Item.CreateComment)

	// Bookings
	e.POST("/bookings", c.Booking.Create)
	e.GET("/bookings", c.Booking.UserBookings)
	e.GET("/bookings/owner", c.Booking.OwnerBookings)
	e.GET("/bookings/:id", c.Booking.Get)
	e.PATCH("/bookings/:id", c.Booking.UpdateStatus)
	e.DELETE("/bookings/:id", c.Booking.Delete)

	// Item requests
	e.POST("/requests", c.Request.Create)
	e.GET("/requests", c.Request.OwnerRequests)
	e.GET("/requests/all", c.Request.AllOther)
	e.GET("/requests/:id", c.Request.Get)
	e.DELETE("/requests/:id", c.Request.Delete)
}
