package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Database backend. "mysql" talks to a server, "sqlite" uses an
	// embedded file (or ":memory:").
	DBDriver   string
	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string
	DBPoolSize int
	SQLitePath string

	// Empty disables event publishing.
	RabbitURL string

	// What to do with cart entries whose product no longer exists:
	// "skip" drops them from the order, "fail" rejects the whole order.
	MissingProductPolicy string
}

func Load() Config {
	// Best effort; env vars win over the .env file.
	_ = godotenv.Load()

	return Config{
		Port: getenv("PORT", "8080"),

		DBDriver:   strings.ToLower(getenv("DB_DRIVER", "mysql")),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBPort:     getenvInt("DB_PORT", 3306),
		DBName:     getenv("DB_NAME", "ordering"),
		DBUser:     getenv("DB_USER", "root"),
		DBPassword: getenv("DB_PASSWORD", ""),
		DBPoolSize: getenvInt("DB_POOL_SIZE", 5),
		SQLitePath: getenv("SQLITE_PATH", "ordering.db"),

		RabbitURL: getenv("RABBITMQ_URL", ""),

		MissingProductPolicy: strings.ToLower(getenv("MISSING_PRODUCT_POLICY", "skip")),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
