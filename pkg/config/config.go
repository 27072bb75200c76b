package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	Upload UploadConfig
	Budget BudgetConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type UploadConfig struct {
	// MaxFileSizeMB caps a single uploaded statement.
	MaxFileSizeMB int
	// MaxFiles caps how many statements one request may carry.
	MaxFiles int
}

type BudgetConfig struct {
	FoodGoal          int
	SubscriptionsGoal int
	TravelGoal        int
	ShoppingGoal      int
}

// Load reads configuration from environment variables, preferring a local
// .env file when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "localhost"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Upload: UploadConfig{
			MaxFileSizeMB: getEnvAsInt("UPLOAD_MAX_FILE_SIZE_MB", 25),
			MaxFiles:      getEnvAsInt("UPLOAD_MAX_FILES", 12),
		},
		Budget: BudgetConfig{
			FoodGoal:          getEnvAsInt("BUDGET_FOOD_GOAL", 4000),
			SubscriptionsGoal: getEnvAsInt("BUDGET_SUBSCRIPTIONS_GOAL", 1000),
			TravelGoal:        getEnvAsInt("BUDGET_TRAVEL_GOAL", 2000),
			ShoppingGoal:      getEnvAsInt("BUDGET_SHOPPING_GOAL", 3000),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
