package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DB      DBConfig
	Store   StoreConfig
	Kitchen KitchenConfig
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

type StoreConfig struct {
	Driver     string // "postgres", "sqlite" or "memory"
	SQLitePath string
}

type KitchenConfig struct {
	BotToken string // telegram bot that posts dockets to the kitchen chat
	ChatID   int64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	port, _ := strconv.Atoi(getEnv("DB_PORT", "5432"))
	chatID, _ := strconv.ParseInt(getEnv("KITCHEN_CHAT_ID", "0"), 10, 64)

	return &Config{
		DB: DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     port,
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "docket"),
		},
		Store: StoreConfig{
			Driver:     getEnv("STORE_DRIVER", "postgres"),
			SQLitePath: getEnv("SQLITE_PATH", "docket.db"),
		},
		Kitchen: KitchenConfig{
			BotToken: getEnv("KITCHEN_BOT_TOKEN", ""),
			ChatID:   chatID,
		},
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
