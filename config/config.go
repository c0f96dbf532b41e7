package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Env           string
	ServerPort    string
	DatabaseDSN   string
	AccessSecret  string
	KafkaBroker   string
	KafkaTopic    string
	KafkaUsername string
	KafkaPassword string
	CORSOrigins   string
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Warn().Err(err).Msg("env file not found or could not be loaded")
		}
	}

	cfg := Config{
		Env:           getEnv("ENV", "dev"),
		ServerPort:    getEnv("SERVER_PORT", ":3000"),
		DatabaseDSN:   os.Getenv("DATABASE_DSN"),
		AccessSecret:  os.Getenv("ACCESS_SECRET"),
		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "docs-events"),
		KafkaUsername: os.Getenv("KAFKA_USERNAME"),
		KafkaPassword: os.Getenv("KAFKA_PASSWORD"),
		CORSOrigins:   getEnv("CORS_ORIGINS", "*"),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
