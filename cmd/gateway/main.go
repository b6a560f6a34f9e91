package main

import (
	"log/slog"
	"os"

	"shareit/app/gateway"
	"shareit/app/gateway/client"
	"shareit/app/gateway/validation"
	"shareit/config"

	"github.com/labstack/echo/v4"
)

func main() {

	cfg := config.LoadGateway()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	g := &gateway.G{
		Cli: client.New(cfg.ServerURL),
		Log: log,
	}

	e := echo.New()
	gateway.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{"status": "ok"})
	})

	gateway.Register(e, g)

	port := cfg.GatewayPort
	if port == "" {
		port = "8081"
	}

	slog.Info("starting gateway", "port", port, "server_url", cfg.ServerURL)

	e.Logger.Fatal(e.Start(":" + port))
}
