// Package gateway is the validating tier in front of the backend: it checks
// request shapes and the caller header, then proxies everything else through.
package gateway

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"shareit/app/gateway/client"
	"shareit/util/identity"
)

type G struct {
	Cli *client.Client
	Log *slog.Logger
}

func RegisterMiddlewares(e *echo.Echo) {

	e.Use(middleware.Recover())

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string { return uuid.NewString() },
	}))

	e.Use(Slog())
}

func Slog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			lat := time.Since(start).Milliseconds()

			rid := c.Response().Header().Get(echo.HeaderXRequestID)
			slog.Info("gateway",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", c.Response().Status,
				"latency_ms", lat,
				"req_id", rid,
				"ip", c.RealIP(),
			)
			return err
		}
	}
}

func Register(e *echo.Echo, g *G) {
	// Users
	e.POST("/users", g.CreateUser)
	e.GET("/users", g.AllUsers)
	e.GET("/users/:id", g.GetUser)
	e.PATCH("/users/:id", g.UpdateUser)
	e.DELETE("/users/:id", g.DeleteUser)

	// Items
	e.POST("/items", g.CreateItem)
	e.GET("/items", g.OwnerItems)
	e.GET("/items/search", g.SearchItems)
	e.GET("/items/:id", g.GetItem)
	e.PATCH("/items/:id", g.UpdateItem)
	e.DELETE("/items/:id", g.DeleteItem)
	e.POST("/items/:id/comment", g.CreateComment)

	// Bookings
	e.POST("/bookings", g.CreateBooking)
	e.GET("/bookings", g.UserBookings)
	e.GET("/bookings/owner", g.OwnerBookings)
	e.GET("/bookings/:id", g.GetBooking)
	e.PATCH("/bookings/:id", g.UpdateBookingStatus)
	e.DELETE("/bookings/:id", g.DeleteBooking)

	// Item requests
	e.POST("/requests", g.CreateRequest)
	e.GET("/requests", g.OwnerRequests)
	e.GET("/requests/all", g.AllOtherRequests)
	e.GET("/requests/:id", g.GetRequest)
	e.DELETE("/requests/:id", g.DeleteRequest)
}

// relay writes the backend response through unchanged.
func (g *G) relay(c echo.Context, status int, body []byte, err error) error {
	if err != nil {
		rid := c.Response().Header().Get(echo.HeaderXRequestID)
		g.Log.Error("proxy failed", "err", err, "req_id", rid, "path", c.Path())
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "backend unavailable"})
	}
	if len(body) == 0 {
		return c.NoContent(status)
	}
	return c.Blob(status, echo.MIMEApplicationJSON, body)
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

// checkedBody reads the raw body, validates it against dst's schema, and
// returns the raw bytes so the backend receives exactly what the client sent.
func checkedBody(c echo.Context, dst any) ([]byte, error) {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return nil, err
	}
	if err := c.Validate(dst); err != nil {
		return nil, err
	}
	return raw, nil
}

// rawBody passes partial-update bodies through without schema checks; field
// rules for partial updates live in the backend.
func rawBody(c echo.Context) ([]byte, error) {
	return io.ReadAll(c.Request().Body)
}

func caller(c echo.Context) (string, bool) {
	v := c.Request().Header.Get(identity.Header)
	return v, v != ""
}
