package config

type App struct {
	Port        string `env:"APP_PORT" default:"8080"`
	GatewayPort string `env:"GATEWAY_PORT" default:"8081"`
	DatabaseURL string `env:"DATABASE_URL,required"`
	ServerURL   string `env:"SHAREIT_SERVER_URL" default:"http://localhost:8080"`
	Env         string `env:"APP_ENV" default:"dev"`
}
