package config

type App struct {
	Port          string `env:"APP_PORT" default:"8080"`
	DatabaseURL   string `env:"DATABASE_URL,required"`
	JWTSecret     string `env:"JWT_SECRET,required"`
	FineDailyRate string `env:"FINE_DAILY_RATE" default:"1.00"`
	Env           string `env:"APP_ENV" default:"dev"`
}
