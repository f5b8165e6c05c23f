package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL   string
	HTTPPort      string
	LogLevel      string
	JWTSecret     string
	AdminPassword string
	MaxSessions   int
	Timing        Timing
}

// Timing holds the fixed delays of the demo animations.
type Timing struct {
	TrainingStep2 time.Duration
	TrainingStep3 time.Duration
	Thinking      time.Duration
	WordInterval  time.Duration
	ChatReply     time.Duration
}

var AppConfig Config

// DefaultTiming returns the delays the demo was designed around.
func DefaultTiming() Timing {
	return Timing{
		TrainingStep2: 2000 * time.Millisecond,
		TrainingStep3: 4500 * time.Millisecond,
		Thinking:      500 * time.Millisecond,
		WordInterval:  100 * time.Millisecond,
		ChatReply:     800 * time.Millisecond,
	}
}

func LoadConfig() {
	err := godotenv.Load() // Load .env file if it exists
	if err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = FromEnv()

	if AppConfig.JWTSecret == "" || AppConfig.AdminPassword == "" {
		log.Println("JWT_SECRET or ADMIN_PASSWORD not set, response customization endpoints are unprotected")
	}
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() Config {
	defaults := DefaultTiming()
	return Config{
		// Shared-cache memory database: nothing survives a restart unless a file is configured.
		DatabaseURL:   getEnv("DATABASE_URL", "file:aibasics?mode=memory&cache=shared"),
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		MaxSessions:   getEnvAsInt("MAX_SESSIONS", 1000),
		Timing: Timing{
			TrainingStep2: getEnvAsMillis("TRAINING_STEP2_DELAY_MS", defaults.TrainingStep2),
			TrainingStep3: getEnvAsMillis("TRAINING_STEP3_DELAY_MS", defaults.TrainingStep3),
			Thinking:      getEnvAsMillis("THINKING_DELAY_MS", defaults.Thinking),
			WordInterval:  getEnvAsInterval("WORD_INTERVAL_MS", defaults.WordInterval),
			ChatReply:     getEnvAsMillis("CHAT_REPLY_DELAY_MS", defaults.ChatReply),
		},
	}
}

// AuthEnabled reports whether customization endpoints require a token.
func (c Config) AuthEnabled() bool {
	return c.JWTSecret != "" && c.AdminPassword != ""
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsMillis(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil && value >= 0 {
		return time.Duration(value) * time.Millisecond
	}
	return defaultValue
}

// getEnvAsInterval is getEnvAsMillis for repeating timers, which need a
// positive period.
func getEnvAsInterval(key string, defaultValue time.Duration) time.Duration {
	if d := getEnvAsMillis(key, defaultValue); d > 0 {
		return d
	}
	return defaultValue
}
