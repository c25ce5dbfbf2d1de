package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string
	Env        string
	PublicURL  string
}

// LoadConfig loads configuration from a .env file when present, falling back
// to the process environment.
func LoadConfig() (*Config, error) {
	// A missing .env is fine in containerized deployments
	_ = godotenv.Load()

	config := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		Port:       os.Getenv("PORT"),
		Env:        os.Getenv("ENV"),
		PublicURL:  os.Getenv("PUBLIC_URL"),
	}

	if config.Port == "" {
		config.Port = "8080"
	}
	if config.PublicURL == "" {
		config.PublicURL = "http://localhost:" + config.Port
	}

	return config, nil
}

// IsProduction reports whether the app runs with ENV=production. The
// impact_email cookie is only marked Secure in production.
func IsProduction() bool {
	return os.Getenv("ENV") == "production"
}
