package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment.
type Config struct {
	DB struct {
		// DSN is optional: when empty the service runs on the in-memory
		// store with seeded demo data.
		DSN string
	}
	API struct {
		Port     string
		BasePath string
	}
	Log struct {
		Dir   string
		Level string
	}
	Routine struct {
		UnlockAt   string
		WarningAt  string
		DangerAt   string
		CriticalAt string
		Retention  int
	}
	Telegram struct {
		BotToken      string
		ChatID        int64
		RatePerSecond int
	}
	Email struct {
		SMTPServer string
		SMTPPort   int
		Username   string
		Password   string
		To         []string
	}
	Kafka struct {
		Broker string
		Topic  string
	}
}

// Load reads environment variables, applies defaults, and returns a Config.
func Load() (Config, error) {
	// Load .env if present
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("failed to load .env file: %w", err)
	}

	var cfg Config

	cfg.DB.DSN = os.Getenv("DB_DSN")

	cfg.API.Port = os.Getenv("API_PORT")
	cfg.API.BasePath = os.Getenv("API_BASE_PATH")

	cfg.Log.Dir = os.Getenv("LOG_DIR")
	cfg.Log.Level = os.Getenv("LOG_LEVEL")

	cfg.Routine.UnlockAt = os.Getenv("ROUTINE_UNLOCK_AT")
	cfg.Routine.WarningAt = os.Getenv("ROUTINE_WARNING_AT")
	cfg.Routine.DangerAt = os.Getenv("ROUTINE_DANGER_AT")
	cfg.Routine.CriticalAt = os.Getenv("ROUTINE_CRITICAL_AT")
	if r, err := strconv.Atoi(os.Getenv("ROUTINE_REPORT_RETENTION")); err == nil {
		cfg.Routine.Retention = r
	}

	cfg.Telegram.BotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if id, err := strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID"), 10, 64); err == nil {
		cfg.Telegram.ChatID = id
	}
	if r, err := strconv.Atoi(os.Getenv("TELEGRAM_RATE_PER_SECOND")); err == nil {
		cfg.Telegram.RatePerSecond = r
	}

	cfg.Email.SMTPServer = os.Getenv("EMAIL_SMTP_SERVER")
	if p, err := strconv.Atoi(os.Getenv("EMAIL_SMTP_PORT")); err == nil {
		cfg.Email.SMTPPort = p
	}
	cfg.Email.Username = os.Getenv("EMAIL_USERNAME")
	cfg.Email.Password = os.Getenv("EMAIL_PASSWORD")
	if to := os.Getenv("EMAIL_TO"); to != "" {
		cfg.Email.To = strings.Split(to, ",")
	}

	cfg.Kafka.Broker = os.Getenv("KAFKA_BROKER")
	cfg.Kafka.Topic = os.Getenv("KAFKA_TOPIC")

	// Validate partially-set channels so a typo fails at startup rather
	// than silently disabling alerts.
	missing := []string{}
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID == 0 {
		missing = append(missing, "TELEGRAM_CHAT_ID")
	}
	if cfg.Telegram.BotToken == "" && cfg.Telegram.ChatID != 0 {
		missing = append(missing, "TELEGRAM_BOT_TOKEN")
	}
	if cfg.Kafka.Broker != "" && cfg.Kafka.Topic == "" {
		missing = append(missing, "KAFKA_TOPIC")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("missing required configurations: %v", missing)
	}

	// Apply defaults
	if cfg.API.Port == "" {
		cfg.API.Port = ":8080"
	}
	if cfg.API.BasePath == "" {
		cfg.API.BasePath = "/api/v1"
	}
	if cfg.Log.Dir == "" {
		cfg.Log.Dir = "logs"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Routine.UnlockAt == "" {
		cfg.Routine.UnlockAt = "11:00"
	}
	if cfg.Routine.WarningAt == "" {
		cfg.Routine.WarningAt = "09:00"
	}
	if cfg.Routine.DangerAt == "" {
		cfg.Routine.DangerAt = "12:00"
	}
	if cfg.Routine.CriticalAt == "" {
		cfg.Routine.CriticalAt = "15:00"
	}
	if cfg.Routine.Retention == 0 {
		cfg.Routine.Retention = 15
	}
	if cfg.Telegram.RatePerSecond == 0 {
		cfg.Telegram.RatePerSecond = 1
	}

	return cfg, nil
}
