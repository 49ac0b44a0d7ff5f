package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	GinMode             string
	Database            DatabaseConfig
	JWT                 JWTConfig
	Admin               AdminConfig
	UploadDir           string
	StatementSigningKey string
}

type DatabaseConfig struct {
	URL string
}

type JWTConfig struct {
	Secret string
}

// AdminConfig seeds the default administrator account on first boot.
type AdminConfig struct {
	Username string
	Password string
}

func Load() (*Config, error) {
	godotenv.Load()

	return &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "secret123"),
		},
		Admin: AdminConfig{
			Username: getEnv("DEFAULT_ADMIN_USERNAME", "admin"),
			Password: getEnv("DEFAULT_ADMIN_PASSWORD", "admin123"),
		},
		UploadDir:           getEnv("UPLOAD_DIR", "uploads"),
		StatementSigningKey: getEnv("STATEMENT_SIGNING_KEY", ""),
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
