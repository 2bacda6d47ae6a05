package application

import (
	"context"

	"github.com/Sify1999/telegram-bot-dollar-price/internal/domain"
)

// NoopTrackedMessages is the degraded store used when persistence is unavailable:
// every chat looks untracked and upserts are dropped, so every publish sends anew.
type NoopTrackedMessages struct{}

func (NoopTrackedMessages) Get(context.Context, int64) (domain.TrackedMessage, error) {
	return domain.TrackedMessage{}, domain.ErrNotFound
}

func (NoopTrackedMessages) Upsert(context.Context, domain.TrackedMessage) error { return nil }
