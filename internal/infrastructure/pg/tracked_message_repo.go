package pg

import (
	"context"
	"errors"
	"time"

	"github.com/Sify1999/telegram-bot-dollar-price/internal/application"
	"github.com/Sify1999/telegram-bot-dollar-price/internal/domain"
	"github.com/Sify1999/telegram-bot-dollar-price/internal/infrastructure/logx"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type TrackedMessageRepo struct {
	db      *DB
	timeout time.Duration
}

var _ application.TrackedMessageRepo = (*TrackedMessageRepo)(nil)

func NewTrackedMessageRepo(db *DB, timeout time.Duration) *TrackedMessageRepo {
	return &TrackedMessageRepo{db: db, timeout: timeout}
}

func (r *TrackedMessageRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *TrackedMessageRepo) Get(ctx context.Context, chatID int64) (domain.TrackedMessage, error) {
	const q = `SELECT chat_id, message_id, updated_at FROM tracked_messages WHERE chat_id=$1`
	log := logx.L().With(
		zap.String("repo", "tracked_message"),
		zap.String("operation", "Get"),
		zap.Int64("chat_id", chatID),
	)
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var out domain.TrackedMessage
	var msgID int64
	err := r.db.Pool.QueryRow(ctx, q, chatID).Scan(&out.ChatID, &msgID, &out.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		log.Debug("sql.query_no_rows")
		return domain.TrackedMessage{}, application.ErrNotFound
	}
	if err != nil {
		log.Error("sql.query_failed", zap.Error(err))
		return domain.TrackedMessage{}, err
	}
	out.MessageID = int(msgID)
	log.Debug("sql.query_success", zap.Int("message_id", out.MessageID))
	return out, nil
}

func (r *TrackedMessageRepo) Upsert(ctx context.Context, m domain.TrackedMessage) error {
	const up = `
        INSERT INTO tracked_messages(chat_id, message_id, updated_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (chat_id) DO UPDATE
          SET message_id=EXCLUDED.message_id, updated_at=EXCLUDED.updated_at`
	log := logx.L().With(
		zap.String("repo", "tracked_message"),
		zap.String("operation", "Upsert"),
		zap.Int64("chat_id", m.ChatID),
		zap.Int("message_id", m.MessageID),
	)
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	updatedAt := m.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	tag, err := r.db.Pool.Exec(ctx, up, m.ChatID, int64(m.MessageID), updatedAt)
	if err != nil {
		log.Error("sql.exec_failed", zap.Error(err))
		return err
	}
	log.Info("sql.exec_success", zap.Int64("rows_affected", tag.RowsAffected()))
	return nil
}
