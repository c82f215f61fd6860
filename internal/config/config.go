package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Gemini   GeminiConfig
	Storage  StorageConfig
}

type ServerConfig struct {
	Port string `validate:"required,numeric"`
	Env  string `validate:"required,oneof=development production test"`
}

type DatabaseConfig struct {
	// Enabled turns on the evaluation history log. Off by default.
	Enabled  bool
	Host     string `validate:"required_if=Enabled true"`
	Port     string `validate:"required_if=Enabled true"`
	User     string
	Password string
	DBName   string `validate:"required_if=Enabled true"`
}

type GeminiConfig struct {
	// APIKey may be empty. A missing key is reported to users, not fatal.
	APIKey       string
	Model        string  `validate:"required"`
	Temperature  float32 `validate:"gte=0,lte=2"`
	StrictSchema bool
}

type StorageConfig struct {
	MaxFileSize int64 `validate:"gt=0"`
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Enabled:  getEnvAsBool("HISTORY_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "smart_ats"),
		},
		Gemini: GeminiConfig{
			APIKey:       getEnv("GOOGLE_API_KEY", getEnv("GEMINI_API_KEY", "")),
			Model:        getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Temperature:  getEnvAsFloat32("GEMINI_TEMPERATURE", 0.3),
			StrictSchema: getEnvAsBool("GEMINI_STRICT_SCHEMA", true),
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
	}
}

// Validate checks the loaded values. The Gemini key is deliberately not
// checked here so the server can still start and explain the problem.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 32); err == nil {
		return float32(value)
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := strings.TrimSpace(getEnv(key, ""))
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
