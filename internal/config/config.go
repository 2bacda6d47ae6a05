package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Sify1999/telegram-bot-dollar-price/internal/application"
	defaults "github.com/Sify1999/telegram-bot-dollar-price/internal/infrastructure/config"
)

type Config struct {
	// Common
	Env      string
	LogLevel string
	HTTPAddr string
	Timezone string
	// Telegram
	Token     string
	AdminID   int64
	ChannelID int64
	BotDebug  bool
	// Storage
	Storage      string
	DatabaseURL  string
	SQLitePath   string
	StoreTimeout time.Duration
	// Redis (storage and idempotency)
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	IdempotencyBackend string
	IdempotencyTTL     time.Duration
	// Scraping
	SourcesFile     string
	ScrapeTimeout   time.Duration
	ScrapeUserAgent string
	QuoteRefresh    time.Duration
	// Reminder
	ReminderChannelID    int64
	ReminderDate         string
	ReminderAt           string
	ReminderTemplate     string
	ReminderStartupDelay time.Duration
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoiDef(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func atoi64Def(s string, def int64) int64 {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return def
	}
	return i
}

func msDef(key string, def time.Duration) time.Duration {
	return time.Duration(atoiDef(getEnv(key, ""), int(def.Milliseconds()))) * time.Millisecond
}

// Load reads environment variables and applies defaults.
func Load() Config {
	channel := atoi64Def(getEnv("CHANNEL_ID", ""), defaults.DefaultChannelID)
	return Config{
		Env:                  getEnv("ENV", "local"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		HTTPAddr:             getEnv("HTTP_ADDR", ""),
		Timezone:             getEnv("TIMEZONE", defaults.DefaultTimezone),
		Token:                getEnv("API", os.Getenv("TELEGRAM_BOT_TOKEN")),
		AdminID:              atoi64Def(getEnv("ADMIN_ID", ""), defaults.DefaultAdminID),
		ChannelID:            channel,
		BotDebug:             getEnv("BOT_DEBUG", "") == "1",
		Storage:              getEnv("STORAGE", "pg"),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		SQLitePath:           getEnv("SQLITE_PATH", "bot.db"),
		StoreTimeout:         msDef("STORE_TIMEOUT_MS", defaults.DefaultStoreTimeout),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:        getEnv("REDIS_PASSWORD", ""),
		RedisDB:              atoiDef(getEnv("REDIS_DB", "0"), 0),
		IdempotencyBackend:   getEnv("IDEMPOTENCY_BACKEND", "none"),
		IdempotencyTTL:       msDef("IDEMPOTENCY_TTL_MS", defaults.DefaultIdempotencyTTL),
		SourcesFile:          getEnv("SOURCES_FILE", ""),
		ScrapeTimeout:        msDef("SCRAPE_TIMEOUT_MS", defaults.DefaultScrapeTimeout),
		ScrapeUserAgent:      getEnv("SCRAPE_USER_AGENT", defaults.DefaultUserAgent),
		QuoteRefresh:         msDef("QUOTE_REFRESH_MS", 0),
		ReminderChannelID:    atoi64Def(getEnv("REMINDER_CHANNEL_ID", ""), channel),
		ReminderDate:         getEnv("REMINDER_DATE", ""),
		ReminderAt:           getEnv("REMINDER_AT", defaults.DefaultReminderAt),
		ReminderTemplate:     getEnv("REMINDER_TEMPLATE", ""),
		ReminderStartupDelay: msDef("REMINDER_STARTUP_DELAY_MS", defaults.DefaultReminderStartupDelay),
	}
}

// Validate rejects a configuration the bot cannot start with. It runs before
// any network or persistence call.
func (c Config) Validate() error {
	if c.Token == "" {
		return application.ErrMissingToken
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.ReminderDate != "" {
		if _, err := c.ReminderReference(); err != nil {
			return err
		}
		if _, _, err := c.ReminderClock(); err != nil {
			return err
		}
	}
	return nil
}

func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ReminderReference parses REMINDER_DATE as YYYY-MM-DD.
func (c Config) ReminderReference() (time.Time, error) {
	t, err := time.Parse(time.DateOnly, c.ReminderDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("REMINDER_DATE %q: %w", c.ReminderDate, err)
	}
	return t, nil
}

// ReminderClock parses REMINDER_AT as HH:MM.
func (c Config) ReminderClock() (hour, minute int, err error) {
	t, err := time.Parse("15:04", c.ReminderAt)
	if err != nil {
		return 0, 0, fmt.Errorf("REMINDER_AT %q: %w", c.ReminderAt, err)
	}
	return t.Hour(), t.Minute(), nil
}
