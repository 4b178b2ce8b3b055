package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr        string
	DatabaseURL string

	// S3 / MinIO
	S3EndpointURL string
	S3Region      string
	S3AccessKey   string
	S3SecretKey   string
	S3Bucket      string

	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// Valkey; empty address means progress stays in process memory
	ValkeyAddress  string
	ValkeyPassword string

	// pipeline pacing
	ItemDelay  time.Duration
	BatchDelay time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: could not load .env file, using environment variables")
	}

	return &Config{
		Addr:           getEnv("LISTEN_ADDR", ":8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		S3EndpointURL:  os.Getenv("S3_ENDPOINT_URL"),
		S3Region:       getEnv("S3_REGION", "us-east-1"),
		S3AccessKey:    os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:    os.Getenv("S3_SECRET_KEY"),
		S3Bucket:       os.Getenv("S3_BUCKET_NAME"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		ValkeyAddress:  os.Getenv("VALKEY_URL"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),
		ItemDelay:      getDuration("ITEM_DELAY_MS", 200) * time.Millisecond,
		BatchDelay:     getDuration("BATCH_DELAY_MS", 1000) * time.Millisecond,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback int) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return time.Duration(fallback)
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		log.Printf("Warning: invalid %s=%q, using default", key, raw)
		return time.Duration(fallback)
	}
	return time.Duration(v)
}
