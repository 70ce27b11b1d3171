package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var defaultClientURLs = []string{
	"http://localhost:5173",
	"http://localhost:5174",
}

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	AppPort string
	AppEnv  string

	JWTSecret string
	JWTTTL    time.Duration

	ClientURLs []string

	RabbitMQURL   string
	OrderExchange string

	ShippingPrice float64
	TaxRate       float64
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		DBHost:        os.Getenv("DB_HOST"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    getEnvFromFile("DB_PASSWORD_FILE", "DB_PASSWORD", ""),
		DBName:        os.Getenv("DB_NAME"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBSSLMode:     getEnv("DB_SSLMODE", "disable"),
		AppPort:       getEnv("APP_PORT", "5000"),
		AppEnv:        getEnv("APP_ENV", "development"),
		JWTSecret:     getEnvFromFile("JWT_SECRET_FILE", "JWT_SECRET", ""),
		JWTTTL:        getDuration("JWT_TTL", 30*24*time.Hour),
		ClientURLs:    clientURLs(os.Getenv("CLIENT_URLS")),
		RabbitMQURL:   os.Getenv("RABBITMQ_URL"),
		OrderExchange: getEnv("ORDER_EXCHANGE", "orders_exchange"),
		ShippingPrice: getFloat("SHIPPING_PRICE", 10),
		TaxRate:       getFloat("TAX_RATE", 0.10),
	}
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	if c.DBHost == "" {
		return errors.New("DB_HOST is not set")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFromFile(fileKey, envKey, defaultValue string) string {
	if filePath := os.Getenv(fileKey); filePath != "" {
		if content, err := os.ReadFile(filePath); err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return getEnv(envKey, defaultValue)
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) float64 {
	if f, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil && f >= 0 {
		return f
	}
	return defaultValue
}

func clientURLs(raw string) []string {
	urls := append([]string{}, defaultClientURLs...)
	for _, u := range strings.Split(raw, ",") {
		u = strings.TrimRight(strings.TrimSpace(u), "/")
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
