package config

import (
	"os"
)

type Config struct {
	DBDriver      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	RedisHost     string
	RedisPort     string
	SessionSecret string
	GinMode       string
	ListenAddr    string
}

func Load() *Config {
	driver := getEnv("DB_DRIVER", "mysql")

	return &Config{
		DBDriver:      driver,
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", defaultDBPort(driver)),
		DBUser:        getEnv("DB_USER", "fsauth"),
		DBPassword:    getEnv("DB_PASSWORD", "fsauth"),
		DBName:        getEnv("DB_NAME", "gathering_registration"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		SessionSecret: getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		ListenAddr:    getEnv("LISTEN_ADDR", ":8080"),
	}
}

func defaultDBPort(driver string) string {
	if driver == "postgres" {
		return "5432"
	}
	return "3306"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
