package config

import (
	"fmt"
	"log"
	"os"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/LearnGrowCode/water-timeout-backend/models"
	"github.com/LearnGrowCode/water-timeout-backend/storage"
)

var DB *gorm.DB

// Load reads .env into the environment. Missing files are fine in deployed
// environments where variables come from the platform.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
}

// InitStore builds the key-value store selected by STORE_DRIVER
// ("postgres" default, "redis", or "memory").
func InitStore() storage.Store {
	switch os.Getenv("STORE_DRIVER") {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     getenv("REDIS_ADDR", "localhost:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		return storage.NewRedisStore(client)
	case "memory":
		return storage.NewMemoryStore()
	default:
		initDB()
		return storage.NewGormStore(DB)
	}
}

func initDB() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = DB.AutoMigrate(&models.KVRecord{}); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
