package application

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

const DefaultReminderTemplate = "%d days remaining"

type ReminderConfig struct {
	ChannelID int64
	// Reference is the target calendar date; only its year, month and day are used.
	Reference time.Time
	Location  *time.Location
	// Template is a fmt format with a single %d verb for the day count.
	Template string
}

// Reminder sends a plain-text countdown to the reference date. It keeps no state.
type Reminder struct {
	cfg       ReminderConfig
	messenger Messenger
	clock     Clock
	log       *zap.Logger
}

func NewReminder(cfg ReminderConfig, messenger Messenger, clock Clock, log *zap.Logger) *Reminder {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Template == "" {
		cfg.Template = DefaultReminderTemplate
	}
	if clock == nil {
		clock = realClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Reminder{cfg: cfg, messenger: messenger, clock: clock, log: log}
}

// DaysRemaining counts calendar days from today to the reference date in loc.
func DaysRemaining(reference, now time.Time, loc *time.Location) int {
	y, m, d := now.In(loc).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	ry, rm, rd := reference.Date()
	target := time.Date(ry, rm, rd, 0, 0, 0, 0, time.UTC)
	return int(target.Sub(today).Hours() / 24)
}

// Run sends today's countdown. Past the reference date the count goes negative
// and is still sent.
func (r *Reminder) Run(ctx context.Context) error {
	days := DaysRemaining(r.cfg.Reference, r.clock.Now(), r.cfg.Location)
	log := r.log.With(zap.Int64("channel_id", r.cfg.ChannelID), zap.Int("days", days))
	if days < 0 {
		log.Warn("reminder.reference_passed")
	}
	if _, err := r.messenger.Send(ctx, r.cfg.ChannelID, fmt.Sprintf(r.cfg.Template, days)); err != nil {
		log.Warn("reminder.send_failed", zap.Error(err))
		return err
	}
	log.Info("reminder.sent")
	return nil
}
