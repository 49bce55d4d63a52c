// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"ozish-bot/internal/models"
)

type Config struct {
	Telegram struct {
		Token   string
		AdminID int64
	}
	Payment struct {
		CardNumber string
		Promos     []models.Promo
	}
	Storage struct {
		DataDir string
	}
	Content struct {
		Dir string
	}
	Reminder struct {
		Hour   int
		Minute int
	}
	QuietHours struct {
		Start string // "06:30"
		End   string // "22:30"
	}
	Server struct {
		Port string
	}
	ShutdownTimeout time.Duration
}

// Load reads config.yaml (current dir, ./config, $HOME/.ozish-bot) with
// environment variables overriding; without a config file it falls back to
// environment variables alone.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("$HOME/.ozish-bot")

	v.SetDefault("Storage.DataDir", "database")
	v.SetDefault("Content.Dir", "data")
	v.SetDefault("Reminder.Hour", 8)
	v.SetDefault("Reminder.Minute", 0)
	v.SetDefault("QuietHours.Start", "06:30")
	v.SetDefault("QuietHours.End", "22:30")
	v.SetDefault("Server.Port", "8080")
	v.SetDefault("ShutdownTimeout", 10*time.Second)

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// No config file is the common deployment; everything comes from
		// the environment.
		cfg := &Config{}
		cfg.Telegram.Token = os.Getenv("BOT_TOKEN")
		adminID, err := strconv.ParseInt(os.Getenv("ADMIN_ID"), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_ID: %w", err)
		}
		cfg.Telegram.AdminID = adminID
		cfg.Payment.CardNumber = getEnvOr("CARD_NUMBER", "")
		cfg.Storage.DataDir = getEnvOr("DATA_DIR", "database")
		cfg.Content.Dir = getEnvOr("CONTENT_DIR", "data")
		cfg.Reminder.Hour = getEnvIntOr("REMINDER_HOUR", 8)
		cfg.Reminder.Minute = getEnvIntOr("REMINDER_MINUTE", 0)
		cfg.QuietHours.Start = getEnvOr("QUIET_START", "06:30")
		cfg.QuietHours.End = getEnvOr("QUIET_END", "22:30")
		cfg.Server.Port = getEnvOr("SERVER_PORT", "8080")
		cfg.ShutdownTimeout = 10 * time.Second
		return cfg, nil
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if cfg.Telegram.Token == "" {
		cfg.Telegram.Token = os.Getenv("BOT_TOKEN")
	}
	if cfg.Telegram.AdminID == 0 {
		if id, err := strconv.ParseInt(os.Getenv("ADMIN_ID"), 10, 64); err == nil {
			cfg.Telegram.AdminID = id
		}
	}
	if cfg.Payment.CardNumber == "" {
		cfg.Payment.CardNumber = os.Getenv("CARD_NUMBER")
	}
	return &cfg, nil
}

func getEnvOr(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOr(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
