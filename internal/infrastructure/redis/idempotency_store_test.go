package redisstore_test

import (
	"context"
	"testing"
	"time"

	redisstore "github.com/Sify1999/telegram-bot-dollar-price/internal/infrastructure/redis"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestTryReserve(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := redisstore.New(client, time.Hour)

	ctx := context.Background()
	ok, err := store.TryReserve(ctx, "update:1")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = store.TryReserve(ctx, "update:1")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = store.TryReserve(ctx, "update:2")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestTryReserve_ExpiresAfterTTL(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := redisstore.New(client, time.Minute)
	ctx := context.Background()

	ok, err := store.TryReserve(ctx, "update:1")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Minute)
	ok, err = store.TryReserve(ctx, "update:1")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestConnect(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client, err := redisstore.Connect(context.Background(), mr.Addr(), "", 0, time.Second)
	require.NoError(t, err)
	require.NoError(t, client.Close())

	addr := mr.Addr()
	mr.Close()
	_, err = redisstore.Connect(context.Background(), addr, "", 0, 200*time.Millisecond)
	require.Error(t, err)
}
