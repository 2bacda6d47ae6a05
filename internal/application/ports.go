package application

import (
	"context"

	"github.com/Sify1999/telegram-bot-dollar-price/internal/domain"
)

// TrackedMessageRepo persists the chat id -> message id mapping of tracked slots.
type TrackedMessageRepo interface {
	// Get returns domain.ErrNotFound when the chat has no tracked message.
	Get(ctx context.Context, chatID int64) (domain.TrackedMessage, error)
	Upsert(ctx context.Context, m domain.TrackedMessage) error
}

// Messenger is the outbound side of the chat platform.
type Messenger interface {
	Send(ctx context.Context, chatID int64, text string) (messageID int, err error)
	Edit(ctx context.Context, chatID int64, messageID int, text string) error
}

// FieldSource scrapes one quote field. Errors wrap domain.ErrFetch or domain.ErrExtract.
type FieldSource interface {
	Fetch(ctx context.Context) (string, error)
}
