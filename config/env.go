package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"nyx-engine/logger"
)

// Env описывает переменные окружения движка.
type Env struct {
	AppEnv     string `env:"APP_ENV" env-default:"development"`
	TablesPath string `env:"ENGINE_TABLES_PATH" env-default:""` // Путь к YAML с таблицами (опционально)
	Logger     logger.Config
}

// FromEnv загружает конфигурацию из переменных окружения и .env файла.
// Если ENGINE_TABLES_PATH задан, таблицы читаются поверх дефолтных.
func FromEnv() (*Config, *Env, error) {
	// Загружаем .env файл (игнорируем ошибку, если файла нет)
	_ = godotenv.Load()

	var env Env
	if err := cleanenv.ReadEnv(&env); err != nil {
		return nil, nil, fmt.Errorf("error loading engine environment: %w", err)
	}

	if env.TablesPath == "" {
		return Default(), &env, nil
	}
	cfg, err := Load(env.TablesPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, &env, nil
}
