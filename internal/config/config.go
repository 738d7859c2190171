// Package config предоставляет структуры и функцию для парсинга и загрузки конфига.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек.
//
// Заполняется один раз при старте процесса и дальше передаётся компонентам
// явно, без глобальных обращений. Обязательные значения без которых сервис
// не может работать (строка подключения, секретный ключ) приводят к
// завершению процесса ещё на старте.
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING" env-required:"true"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:"0.0.0.0:8000"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env:"HTTP_TIMEOUT" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

// JWTToken структура для работы с токенами доступа.
type JWTToken struct {
	JWTSecretKey    string `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY" env-required:"true"`
	JWTAlgorithm    string `yaml:"jwt_algorithm" env:"JWT_ALGORITHM" env-default:"HS256"`
	TokenTTLMinutes int    `yaml:"token_ttl_minutes" env:"ACCESS_TOKEN_EXPIRE_MINUTES" env-default:"30"`
}

// TokenTTL возвращает срок жизни токена как time.Duration.
func (j JWTToken) TokenTTL() time.Duration {
	return time.Duration(j.TokenTTLMinutes) * time.Minute
}

// MustLoad загружает конфиг и завершает процесс при любой ошибке.
//
// Если переменная CONFIG_PATH задана, значения читаются из yaml-файла с
// возможностью переопределения из окружения; иначе — только из окружения.
func MustLoad() *Config {
	var cfg Config

	configPath := os.Getenv("CONFIG_PATH")
	if configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			log.Fatalf("file: %s - does not exist", configPath)
		}
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			log.Fatalf("cannot read config: %s", err)
		}
		return &cfg
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}
	return &cfg
}
