package pg_test

import (
	"context"
	"testing"
	"time"

	"github.com/Sify1999/telegram-bot-dollar-price/internal/domain"
	"github.com/Sify1999/telegram-bot-dollar-price/internal/infrastructure/pg"

	"github.com/stretchr/testify/require"
)

func TestTrackedMessageRepo_UpsertAndGet(t *testing.T) {
	db, teardown := withPostgres(t)
	defer teardown()
	ctx := context.Background()
	repo := pg.NewTrackedMessageRepo(db, 3*time.Second)

	_, err := repo.Get(ctx, 100)
	require.ErrorIs(t, err, domain.ErrNotFound)

	at := time.Date(2025, 10, 17, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Upsert(ctx, domain.TrackedMessage{ChatID: 100, MessageID: 7, UpdatedAt: at}))
	got, err := repo.Get(ctx, 100)
	require.NoError(t, err)
	require.Equal(t, 7, got.MessageID)
	require.True(t, at.Equal(got.UpdatedAt))

	require.NoError(t, repo.Upsert(ctx, domain.TrackedMessage{ChatID: 100, MessageID: 9, UpdatedAt: at.Add(time.Hour)}))
	got, err = repo.Get(ctx, 100)
	require.NoError(t, err)
	require.Equal(t, 9, got.MessageID)

	var n int
	require.NoError(t, db.Pool.QueryRow(ctx, `SELECT count(*) FROM tracked_messages WHERE chat_id=100`).Scan(&n))
	require.Equal(t, 1, n)
}

func TestTrackedMessageRepo_NegativeChatIDs(t *testing.T) {
	db, teardown := withPostgres(t)
	defer teardown()
	ctx := context.Background()
	repo := pg.NewTrackedMessageRepo(db, 0)

	channel := int64(-1003477481048)
	require.NoError(t, repo.Upsert(ctx, domain.TrackedMessage{ChatID: channel, MessageID: 1}))
	got, err := repo.Get(ctx, channel)
	require.NoError(t, err)
	require.Equal(t, channel, got.ChatID)
}

func TestOpen_BadURL(t *testing.T) {
	t.Parallel()
	_, err := pg.Open(context.Background(), "", time.Second)
	require.Error(t, err)

	_, err = pg.Open(context.Background(), "postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1", time.Second)
	require.Error(t, err)
}

func TestRunMigrations_StopsAtContextDeadline(t *testing.T) {
	t.Parallel()
	db, err := pg.Connect(context.Background(), "postgres://u:p@127.0.0.1:1/db?sslmode=disable&connect_timeout=1")
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()
	start := time.Now()
	require.Error(t, pg.RunMigrations(ctx, db))
	require.Less(t, time.Since(start), 3*time.Second)
}
