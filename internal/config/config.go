package config

import (
	"time"

	"github.com/Netflix/go-env"
)

type Config struct {
	Port          string        `env:"PORT,default=8080"`
	JWTSecret     string        `env:"JWT_SECRET,required=true"`
	TokenDuration time.Duration `env:"TOKEN_DURATION,default=24h"`
	RedisURL      string        `env:"REDIS_URL,required=true"`
	TypingTTL     time.Duration `env:"TYPING_TTL,default=3s"`

	// Буфер исходящих на соединение: переполнение = пропуск события
	SendBufferSize int `env:"SEND_BUFFER_SIZE,default=256"`
}

// Load читает конфигурацию из окружения (.env уже загружен godotenv)
func Load() (Config, error) {
	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
