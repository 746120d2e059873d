package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	DataDir string // store JSON por defecto
	DBDSN   string // si viene, se usa Postgres en vez de archivos

	AIAPIKey  string
	AIBaseURL string
	AIModel   string
}

func Load() Config {
	// .env es opcional (dev); en producción todo llega por entorno.
	_ = godotenv.Load()

	return Config{
		Port:      getEnvOrDefault("PORT", "8080"),
		DataDir:   getEnvOrDefault("DATA_DIR", "data"),
		DBDSN:     os.Getenv("DB_DSN"),
		AIAPIKey:  os.Getenv("AI_API_KEY"),
		AIBaseURL: getEnvOrDefault("AI_BASE_URL", "https://api.openai.com/v1"),
		AIModel:   getEnvOrDefault("AI_MODEL", "gpt-4o-mini"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
