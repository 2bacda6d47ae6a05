package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Sify1999/telegram-bot-dollar-price/internal/application"
	"github.com/Sify1999/telegram-bot-dollar-price/internal/domain"
	"github.com/Sify1999/telegram-bot-dollar-price/internal/infrastructure/logx"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Open opens the database at path (":memory:" for a private in-memory one),
// applies pragmas and creates the schema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	// one writer; also keeps ":memory:" on a single connection
	db.SetMaxOpenConns(1)

	pragmas := []string{"PRAGMA busy_timeout = 5000", "PRAGMA synchronous = NORMAL"}
	if path != ":memory:" {
		pragmas = append(pragmas, "PRAGMA journal_mode = WAL")
	}
	for _, p := range append(pragmas, createTable) {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite init: %w", err)
		}
	}
	return db, nil
}

type TrackedMessageRepo struct {
	db *sql.DB
}

var _ application.TrackedMessageRepo = (*TrackedMessageRepo)(nil)

func NewTrackedMessageRepo(db *sql.DB) *TrackedMessageRepo {
	return &TrackedMessageRepo{db: db}
}

func (r *TrackedMessageRepo) Get(ctx context.Context, chatID int64) (domain.TrackedMessage, error) {
	var msgID, updatedMs int64
	switch err := r.db.QueryRowContext(ctx, selectByChatID, chatID).Scan(&msgID, &updatedMs); {
	case err == nil:
		return domain.TrackedMessage{
			ChatID:    chatID,
			MessageID: int(msgID),
			UpdatedAt: time.UnixMilli(updatedMs).UTC(),
		}, nil
	case errors.Is(err, sql.ErrNoRows):
		return domain.TrackedMessage{}, application.ErrNotFound
	default:
		logx.L().Error("sql.query_failed", zap.String("repo", "sqlite_tracked_message"), zap.Int64("chat_id", chatID), zap.Error(err))
		return domain.TrackedMessage{}, err
	}
}

func (r *TrackedMessageRepo) Upsert(ctx context.Context, m domain.TrackedMessage) error {
	updatedAt := m.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}
	if _, err := r.db.ExecContext(ctx, upsert, m.ChatID, m.MessageID, updatedAt.UnixMilli()); err != nil {
		logx.L().Error("sql.exec_failed", zap.String("repo", "sqlite_tracked_message"), zap.Int64("chat_id", m.ChatID), zap.Error(err))
		return err
	}
	return nil
}

func (r *TrackedMessageRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
