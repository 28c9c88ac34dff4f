package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Server ServerConfig

	// Session configuration
	Session SessionConfig

	// Booking policy configuration
	Booking BookingConfig

	// Weather advisory configuration
	Weather WeatherConfig

	// CORS configuration
	CORS CORSConfig

	// Security configuration
	Security SecurityConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port        string
	Environment string // development, staging, production
	LogLevel    string // debug, info, warn, error
}

// SessionConfig holds signed session cookie configuration
type SessionConfig struct {
	Secret       string
	CookieName   string
	TokenExpiry  time.Duration
	CookieSecure bool
}

// BookingConfig holds pricing and booking policy configuration
type BookingConfig struct {
	// ElderlyMountainMultiplier is the policy multiplier applied to the
	// per-passenger price for elderly_mountain tours.
	ElderlyMountainMultiplier float64
	MaxPassengers             int
	MaxAdvanceDays            int // how far in the future a travel date may be
	CancelLeadDays            int // minimum days before travel for cancellation
}

// WeatherConfig holds OpenWeather client configuration
type WeatherConfig struct {
	Mode    string // "dev" returns canned data, "production" calls the API
	APIURL  string
	APIKey  string
	Timeout time.Duration
}

// CORSConfig holds CORS-related configuration
type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

// SecurityConfig holds security-related configuration
type SecurityConfig struct {
	BcryptCost     int
	EnableAuditLog bool

	// Seed credentials for the administrator account created at startup.
	// Registration only ever creates client accounts.
	AdminEmail    string
	AdminPassword string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8080"),
			Environment: getEnv("ENVIRONMENT", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Session: SessionConfig{
			Secret:       getEnv("SESSION_SECRET", ""),
			CookieName:   getEnv("SESSION_COOKIE_NAME", "tours_session"),
			TokenExpiry:  time.Duration(getEnvAsInt("SESSION_TOKEN_EXPIRY", 86400)) * time.Second,
			CookieSecure: getEnvAsBool("SESSION_COOKIE_SECURE", false),
		},
		Booking: BookingConfig{
			ElderlyMountainMultiplier: getEnvAsFloat("ELDERLY_MOUNTAIN_MULTIPLIER", 0.90),
			MaxPassengers:             getEnvAsInt("BOOKING_MAX_PASSENGERS", 10),
			MaxAdvanceDays:            getEnvAsInt("BOOKING_MAX_ADVANCE_DAYS", 365),
			CancelLeadDays:            getEnvAsInt("BOOKING_CANCEL_LEAD_DAYS", 3),
		},
		Weather: WeatherConfig{
			Mode:    getEnv("WEATHER_MODE", "dev"),
			APIURL:  getEnv("OPENWEATHER_API_URL", "https://api.openweathermap.org/data/2.5"),
			APIKey:  getEnv("OPENWEATHER_API_KEY", ""),
			Timeout: time.Duration(getEnvAsInt("OPENWEATHER_TIMEOUT_SECONDS", 5)) * time.Second,
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
			AllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			AllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Content-Type", "Authorization"}),
		},
		Security: SecurityConfig{
			BcryptCost:     getEnvAsInt("BCRYPT_COST", 12),
			EnableAuditLog: getEnvAsBool("ENABLE_AUDIT_LOGGING", true),
			AdminEmail:     getEnv("ADMIN_EMAIL", "admin@silvertrail.local"),
			AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
		},
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return fmt.Errorf("SESSION_SECRET is required")
	}

	if c.Booking.ElderlyMountainMultiplier <= 0 {
		return fmt.Errorf("ELDERLY_MOUNTAIN_MULTIPLIER must be positive")
	}

	if c.Booking.MaxPassengers < 1 {
		return fmt.Errorf("BOOKING_MAX_PASSENGERS must be at least 1")
	}

	if c.Weather.Mode == "production" && c.Weather.APIKey == "" {
		return fmt.Errorf("OPENWEATHER_API_KEY is required in production weather mode")
	}

	if c.Server.Environment == "production" && c.Security.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD is required in production")
	}

	return nil
}

// Helper functions to get environment variables

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Invalid float value for %s, using default: %g", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid boolean value for %s, using default: %t", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var result []string
	for _, v := range strings.Split(valueStr, ",") {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
