package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config regroupe la configuration du client
type Config struct {
	APIBaseURL  string
	HTTPTimeout time.Duration

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
}

// LoadConfig charge la configuration depuis l'environnement (.env optionnel)
func LoadConfig() (*Config, error) {
	// Le .env est facultatif : en production les variables viennent de l'environnement
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:          getEnv("API_BASE_URL", "http://localhost:8080"),
		HTTPTimeout:         getDuration("HTTP_TIMEOUT", 15*time.Second),
		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
