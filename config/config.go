package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port      string
	MongoURI  string
	MongoDB   string
	JWTSecret string

	AllowedOrigins []string
	UploadsDir     string

	LowStockThreshold int
	SMTPHost          string
	SMTPPort          int
	SMTPUser          string
	SMTPPassword      string
	AlertFrom         string
	AlertEmail        string
}

// Load collects configuration from the environment. MONGO_URI may be left
// empty, in which case the server runs on the in-memory store.
func Load() Config {
	return Config{
		Port:      envOr("PORT", "5000"),
		MongoURI:  os.Getenv("MONGO_URI"),
		MongoDB:   envOr("MONGO_DB", "pos"),
		JWTSecret: envOr("JWT_SECRET", "secretkey123"),

		AllowedOrigins: splitList(envOr("CORS_ORIGINS", "*")),
		UploadsDir:     envOr("UPLOADS_DIR", "./uploads"),

		LowStockThreshold: envInt("LOW_STOCK_THRESHOLD", 5),
		SMTPHost:          os.Getenv("SMTP_HOST"),
		SMTPPort:          envInt("SMTP_PORT", 465),
		SMTPUser:          os.Getenv("SMTP_USER"),
		SMTPPassword:      os.Getenv("SMTP_PASSWORD"),
		AlertFrom:         os.Getenv("ALERT_FROM"),
		AlertEmail:        os.Getenv("ALERT_EMAIL"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
