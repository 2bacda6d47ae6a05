package bootstrap

import (
	"context"
	"errors"
	"net/http"

	"github.com/Sify1999/telegram-bot-dollar-price/internal/application"
	"github.com/Sify1999/telegram-bot-dollar-price/internal/config"
	infraconfig "github.com/Sify1999/telegram-bot-dollar-price/internal/infrastructure/config"
	"github.com/Sify1999/telegram-bot-dollar-price/internal/infrastructure/httpx"
	"github.com/Sify1999/telegram-bot-dollar-price/internal/infrastructure/pg"
	redisstore "github.com/Sify1999/telegram-bot-dollar-price/internal/infrastructure/redis"
	"github.com/Sify1999/telegram-bot-dollar-price/internal/infrastructure/scrape"
	"github.com/Sify1999/telegram-bot-dollar-price/internal/infrastructure/sqlite"
	"github.com/Sify1999/telegram-bot-dollar-price/internal/infrastructure/telegram"

	"go.uber.org/zap"
)

// Store is the tracked-message persistence plus its readiness probe.
type Store struct {
	Repo     application.TrackedMessageRepo
	Ping     func(ctx context.Context) error
	Degraded bool
}

var errStoreDegraded = errors.New("tracked-message store degraded")

// degraded keeps the bot running but reports not ready.
func degraded() Store {
	return Store{
		Repo:     application.NoopTrackedMessages{},
		Ping:     func(context.Context) error { return errStoreDegraded },
		Degraded: true,
	}
}

// ProvideStore never fails: when the configured backend is unreachable the bot
// runs with a store that forgets everything and always sends new messages.
func ProvideStore(ctx context.Context, log *zap.Logger, cfg config.Config) (Store, func()) {
	log = log.With(zap.String("storage", cfg.Storage))
	switch cfg.Storage {
	case "pg":
		db, err := pg.Open(ctx, cfg.DatabaseURL, cfg.StoreTimeout)
		if err != nil {
			log.Warn("store.degraded", zap.Error(err))
			return degraded(), func() {}
		}
		cleanup := func() {
			log.Info("closing pg")
			db.Close()
		}
		return Store{Repo: pg.NewTrackedMessageRepo(db, cfg.StoreTimeout), Ping: db.Ping}, cleanup

	case "sqlite":
		ctx, cancel := context.WithTimeout(ctx, cfg.StoreTimeout)
		defer cancel()
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			log.Warn("store.degraded", zap.Error(err))
			return degraded(), func() {}
		}
		repo := sqlite.NewTrackedMessageRepo(db)
		return Store{Repo: repo, Ping: repo.Ping}, func() { _ = db.Close() }

	case "redis":
		rdb, err := redisstore.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.StoreTimeout)
		if err != nil {
			log.Warn("store.degraded", zap.Error(err))
			return degraded(), func() {}
		}
		repo := redisstore.NewTrackedMessageRepo(rdb)
		return Store{Repo: repo, Ping: repo.Ping}, func() { _ = rdb.Close() }

	case "memory":
		return Store{Repo: application.NewMemoryTrackedMessages()}, func() {}

	default:
		log.Warn("store.degraded", zap.String("reason", "unknown STORAGE"))
		return degraded(), func() {}
	}
}

// ProvideIdempotency returns the update de-duplication store; Redis when
// IDEMPOTENCY_BACKEND=redis and reachable, otherwise a no-op.
func ProvideIdempotency(ctx context.Context, log *zap.Logger, cfg config.Config) (application.IdempotencyStore, func()) {
	if cfg.IdempotencyBackend != "redis" {
		return application.NoopIdempotency{}, func() {}
	}
	rdb, err := redisstore.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.StoreTimeout)
	if err != nil {
		log.Warn("idempotency.disabled", zap.Error(err))
		return application.NoopIdempotency{}, func() {}
	}
	return redisstore.New(rdb, cfg.IdempotencyTTL), func() { _ = rdb.Close() }
}

func ProvideQuoteService(log *zap.Logger, cfg config.Config, httpClient *http.Client) (*application.QuoteService, error) {
	sources, err := scrape.LoadSources(cfg.SourcesFile)
	if err != nil {
		return nil, err
	}
	fetcher := &httpx.Client{
		HTTP:       httpClient,
		UserAgent:  cfg.ScrapeUserAgent,
		Timeout:    cfg.ScrapeTimeout,
		MaxElapsed: cfg.ScrapeTimeout,
	}
	return application.NewQuoteService(
		scrape.NewFieldSource(fetcher, sources.Price),
		scrape.NewFieldSource(fetcher, sources.Date),
		log.With(zap.String("component", "quotes")),
	), nil
}

func ProvideBot(cfg config.Config, endpoint string, httpClient *http.Client) (*telegram.Client, error) {
	return telegram.New(cfg.Token, endpoint, httpClient, infraconfig.DefaultRequestTimeout, cfg.BotDebug)
}
