package redisstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Sify1999/telegram-bot-dollar-price/internal/application"
	"github.com/Sify1999/telegram-bot-dollar-price/internal/domain"
	"github.com/Sify1999/telegram-bot-dollar-price/internal/infrastructure/logx"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// TrackedMessageRepo keeps one hash per chat: message_id and updated_at (unix ms).
type TrackedMessageRepo struct {
	Client *redis.Client
}

var _ application.TrackedMessageRepo = (*TrackedMessageRepo)(nil)

func NewTrackedMessageRepo(client *redis.Client) *TrackedMessageRepo {
	return &TrackedMessageRepo{Client: client}
}

func trackedKey(chatID int64) string {
	return keyPrefix + "tracked:" + strconv.FormatInt(chatID, 10)
}

func (r *TrackedMessageRepo) Get(ctx context.Context, chatID int64) (domain.TrackedMessage, error) {
	vals, err := r.Client.HMGet(ctx, trackedKey(chatID), "message_id", "updated_at").Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		logx.L().Error("redis.hmget_failed", zap.Int64("chat_id", chatID), zap.Error(err))
		return domain.TrackedMessage{}, err
	}
	if len(vals) < 2 || vals[0] == nil {
		return domain.TrackedMessage{}, application.ErrNotFound
	}
	msgID, err := strconv.Atoi(fmt.Sprint(vals[0]))
	if err != nil {
		return domain.TrackedMessage{}, fmt.Errorf("tracked message %d: bad message_id: %w", chatID, err)
	}
	out := domain.TrackedMessage{ChatID: chatID, MessageID: msgID}
	if vals[1] != nil {
		if ms, err := strconv.ParseInt(fmt.Sprint(vals[1]), 10, 64); err == nil {
			out.UpdatedAt = time.UnixMilli(ms).UTC()
		}
	}
	return out, nil
}

func (r *TrackedMessageRepo) Upsert(ctx context.Context, m domain.TrackedMessage) error {
	updatedAt := m.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	err := r.Client.HSet(ctx, trackedKey(m.ChatID),
		"message_id", m.MessageID,
		"updated_at", updatedAt.UnixMilli(),
	).Err()
	if err != nil {
		logx.L().Error("redis.hset_failed", zap.Int64("chat_id", m.ChatID), zap.Error(err))
		return err
	}
	return nil
}

// Ping reports whether the server answers.
func (r *TrackedMessageRepo) Ping(ctx context.Context) error {
	return r.Client.Ping(ctx).Err()
}
