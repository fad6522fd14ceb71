package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort      string
	AppEnv          string
	ClientOrigin    string
	MySQLDSN        string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	JWTSecret       string
	CountriesAPIURL string
	SwaggerHost     string
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is merged in first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		AppEnv:          getEnv("APP_ENV", "development"),
		ClientOrigin:    getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		MySQLDSN:        getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/countryhub?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RedisPass:       os.Getenv("REDIS_PASSWORD"),
		JWTSecret:       getEnv("JWT_SECRET", "change-me"),
		CountriesAPIURL: getEnv("COUNTRIES_API_URL", "https://restcountries.com/v3.1"),
		SwaggerHost:     os.Getenv("SWAGGER_HOST"),
	}
}

// IsProduction reports whether the app runs in production mode.
// Session cookies are marked Secure only in production.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
