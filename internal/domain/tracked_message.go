package domain

import "time"

// TrackedMessage is the last message the bot sent into a chat's tracked slot.
type TrackedMessage struct {
	ChatID    int64
	MessageID int
	UpdatedAt time.Time
}
