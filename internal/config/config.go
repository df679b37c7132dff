package config

import (
	"os" // For environment variables

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort    string // Application port
	DBUser     string // Database user
	DBPassword string // Database password
	DBHost     string // Database host
	DBPort     string // Database port
	DBName     string // Database name
	JWTSecret  string // JWT secret key
	RedisAddr  string // Redis server address
	RedisPass  string // Redis password
	RedisDB    int    // Redis database number
	UploadDir  string // Directory for uploaded photos
	GeocodeURL string // Geocoding service base URL
	IsProd     bool   // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	return &Config{
		AppPort:    getEnv("APP_PORT", "3001"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBName:     getEnv("DB_NAME", "travlog"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:  os.Getenv("REDIS_PASS"),
		RedisDB:    0,
		UploadDir:  getEnv("UPLOAD_DIR", "uploads"),
		GeocodeURL: getEnv("GEOCODE_URL", "https://nominatim.openstreetmap.org/search"),
		IsProd:     os.Getenv("IS_PROD") == "true",
	}
}

// getEnv reads a variable with a fallback default
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// DSN builds the MySQL data source name
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}
