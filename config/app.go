package config

type App struct {
	Port         string  `env:"APP_PORT" default:"8080"`
	DatabaseURL  string  `env:"DATABASE_URL,required"`
	JWTSecret    string  `env:"JWT_SECRET,required"`
	SignupSecret string  `env:"SIGNUP_SECRET,required"`
	PenaltyRate  float64 `env:"PENALTY_RATE" default:"5"`
	OverdueCron  string  `env:"OVERDUE_CRON" default:"0 0 6 * * *"`
	Env          string  `env:"APP_ENV" default:"dev"`
}
