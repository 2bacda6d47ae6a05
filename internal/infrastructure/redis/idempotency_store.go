package redisstore

import (
	"context"
	"time"

	"github.com/Sify1999/telegram-bot-dollar-price/internal/application"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "dollarbot:"

// Store de-duplicates inbound updates with SETNX; a key lives for TTL.
type Store struct {
	Client *redis.Client
	TTL    time.Duration
}

var _ application.IdempotencyStore = (*Store)(nil)

func New(client *redis.Client, ttl time.Duration) *Store {
	return &Store{Client: client, TTL: ttl}
}

func (s *Store) TryReserve(ctx context.Context, key string) (bool, error) {
	ok, err := s.Client.SetNX(ctx, keyPrefix+"idem:"+key, "1", s.TTL).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Connect builds a client and pings it within timeout.
func Connect(ctx context.Context, addr, password string, db int, timeout time.Duration) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
