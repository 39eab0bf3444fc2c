package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Environment string
	API         APIConfig
	Session     SessionConfig
	Listing     ListingConfig
}

// APIConfig holds the marketplace backend configuration
type APIConfig struct {
	BaseURL     string
	BearerToken string
	PartnerCode string
	Timeout     time.Duration
}

// SessionConfig holds local session persistence configuration
type SessionConfig struct {
	Dir string
}

// ListingConfig holds listing page sizes per screen
type ListingConfig struct {
	AdsPageSize     int
	UserAdsPageSize int
}

// Load loads configuration from environment variables, reading a .env
// file first when one is present
func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		API: APIConfig{
			BaseURL:     getEnv("API_BASE_URL", "https://api.tokotitoh.co.id"),
			BearerToken: getEnv("API_BEARER_TOKEN", "tokotitohapi"),
			PartnerCode: getEnv("API_PARTNER_CODE", "id.marketplace.tokotitoh"),
			Timeout:     getEnvAsDuration("API_TIMEOUT", 30*time.Second),
		},
		Session: SessionConfig{
			Dir: getEnv("SESSION_DIR", defaultSessionDir()),
		},
		Listing: ListingConfig{
			AdsPageSize:     getEnvAsInt("ADS_PAGE_SIZE", 8),
			UserAdsPageSize: getEnvAsInt("USER_ADS_PAGE_SIZE", 10),
		},
	}, nil
}

func defaultSessionDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + "/tokotitoh"
	}
	return "."
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer with a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration gets an environment variable as a duration with a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
