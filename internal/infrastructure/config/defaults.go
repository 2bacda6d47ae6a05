package config

import "time"

const (
	DefaultAdminID   = int64(119822289)
	DefaultChannelID = int64(-1003477481048)
	DefaultTimezone  = "Asia/Tehran"

	DefaultShutdownTimeout = 10 * time.Second
	DefaultStoreTimeout    = 3 * time.Second
	DefaultIdempotencyTTL  = 24 * time.Hour
	DefaultPGMaxConns      = 5
	DefaultPGMinConns      = 1

	DefaultScrapeTimeout = 10 * time.Second
	DefaultUserAgent     = "Mozilla/5.0"

	DefaultReminderAt           = "09:00"
	DefaultReminderStartupDelay = 5 * time.Second
	DefaultPollTimeout          = 60
	DefaultRequestTimeout       = 15 * time.Second
)
