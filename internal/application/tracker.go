package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sify1999/telegram-bot-dollar-price/internal/domain"

	"go.uber.org/zap"
)

type OutcomeKind string

const (
	OutcomeSent   OutcomeKind = "sent"
	OutcomeEdited OutcomeKind = "edited"
	OutcomeFailed OutcomeKind = "failed"
)

// Outcome is the result of a publish into a chat's tracked slot.
type Outcome struct {
	Kind      OutcomeKind
	MessageID int
	// NotModified is set on Edited when the platform reported identical content.
	NotModified bool
	Err         error
}

func (o Outcome) OK() bool { return o.Kind != OutcomeFailed }

// Tracker keeps one evolving message per chat: it edits the tracked message when
// there is one and sends (and records) a new message otherwise.
//
// Lookup and upsert for the same chat are not locked against each other; callers
// are expected to publish into a given chat from a single goroutine.
type Tracker struct {
	repo      TrackedMessageRepo
	messenger Messenger
	clock     Clock
	log       *zap.Logger
}

type TrackerOption func(*Tracker)

func WithTrackerClock(c Clock) TrackerOption        { return func(t *Tracker) { t.clock = c } }
func WithTrackerLogger(l *zap.Logger) TrackerOption { return func(t *Tracker) { t.log = l } }

func NewTracker(repo TrackedMessageRepo, messenger Messenger, opts ...TrackerOption) *Tracker {
	t := &Tracker{repo: repo, messenger: messenger}
	for _, opt := range opts {
		opt(t)
	}
	if t.repo == nil {
		t.repo = NoopTrackedMessages{}
	}
	if t.clock == nil {
		t.clock = realClock{}
	}
	if t.log == nil {
		t.log = zap.NewNop()
	}
	return t
}

func (t *Tracker) PublishOrUpdate(ctx context.Context, chatID int64, text string) Outcome {
	log := t.log.With(zap.Int64("chat_id", chatID))

	tracked, err := t.repo.Get(ctx, chatID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return t.sendAndRecord(ctx, log, chatID, text)
	case err != nil:
		log.Warn("tracker.lookup_failed", zap.Error(err))
		return t.sendAndRecord(ctx, log, chatID, text)
	}

	log = log.With(zap.Int("message_id", tracked.MessageID))
	err = t.messenger.Edit(ctx, chatID, tracked.MessageID, text)
	switch {
	case err == nil:
		log.Info("tracker.edited")
		return Outcome{Kind: OutcomeEdited, MessageID: tracked.MessageID}
	case errors.Is(err, domain.ErrMessageNotModified):
		log.Info("tracker.not_modified")
		return Outcome{Kind: OutcomeEdited, MessageID: tracked.MessageID, NotModified: true}
	case !domain.IsPlatformAnswer(err):
		// outcome unknown: no resend
		log.Warn("tracker.edit_unreachable", zap.Error(err))
		return Outcome{Kind: OutcomeFailed, MessageID: tracked.MessageID, Err: fmt.Errorf("edit message: %w", err)}
	}

	log.Info("tracker.edit_rejected", zap.Error(err))
	return t.sendAndRecord(ctx, log, chatID, text)
}

func (t *Tracker) sendAndRecord(ctx context.Context, log *zap.Logger, chatID int64, text string) Outcome {
	id, err := t.messenger.Send(ctx, chatID, text)
	if err != nil {
		log.Warn("tracker.send_failed", zap.Error(err))
		return Outcome{Kind: OutcomeFailed, Err: fmt.Errorf("send message: %w", err)}
	}
	rec := domain.TrackedMessage{ChatID: chatID, MessageID: id, UpdatedAt: t.clock.Now().UTC()}
	if err := t.repo.Upsert(ctx, rec); err != nil {
		log.Warn("tracker.upsert_failed", zap.Int("new_message_id", id), zap.Error(err))
	}
	log.Info("tracker.sent", zap.Int("new_message_id", id))
	return Outcome{Kind: OutcomeSent, MessageID: id}
}
