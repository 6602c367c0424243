package config

import (
	"os"
	"strings"
)

type Config struct {
	HTTPAddr            string
	PostgresDSN         string
	FrontendURL         string
	StripeSecretKey     string
	StripeWebhookSecret string
	AdminAPIKey         string
	AuthSecret          string
	GoogleClientID      string
	GoogleClientSecret  string
	BaseURL             string
	RedisAddr           string
	KafkaBrokers        []string
	KafkaTopic          string
}

func Load() Config {
	return Config{
		HTTPAddr:            getenv("HTTP_ADDR", ":8080"),
		PostgresDSN:         getenv("DB_DSN", "host=localhost user=postgres password=postgres dbname=storeadmin port=5432 sslmode=disable"),
		FrontendURL:         getenv("FRONTEND_STORE_URL", "http://localhost:3001"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		AdminAPIKey:         os.Getenv("ADMIN_API_KEY"),
		AuthSecret:          getenv("AUTH_SECRET", "dev-insecure"),
		GoogleClientID:      os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:  os.Getenv("GOOGLE_CLIENT_SECRET"),
		BaseURL:             getenv("BASE_URL", "http://localhost:8080"),
		RedisAddr:           os.Getenv("REDIS_ADDR"),
		KafkaBrokers:        splitCSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:          getenv("KAFKA_TOPIC", "store.orders"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
