package config

import (
	"log/slog"
	"os"
)

func Load() App {
	cfg := App{
		Port:        getenv("APP_PORT", "8080"),
		GatewayPort: getenv("GATEWAY_PORT", "8081"),
		DatabaseURL: must("DATABASE_URL"),
		ServerURL:   getenv("SHAREIT_SERVER_URL", "http://localhost:8080"),
		Env:         getenv("APP_ENV", "dev"),
	}
	return cfg
}

// LoadGateway reads only what the gateway tier needs; the gateway has no
// database of its own.
func LoadGateway() App {
	return App{
		GatewayPort: getenv("GATEWAY_PORT", "8081"),
		ServerURL:   getenv("SHAREIT_SERVER_URL", "http://localhost:8080"),
		Env:         getenv("APP_ENV", "dev"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
