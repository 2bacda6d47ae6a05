package bootstrap

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/Sify1999/telegram-bot-dollar-price/internal/application"
	"github.com/Sify1999/telegram-bot-dollar-price/internal/config"
	infraconfig "github.com/Sify1999/telegram-bot-dollar-price/internal/infrastructure/config"
	httpserver "github.com/Sify1999/telegram-bot-dollar-price/internal/infrastructure/http"
	"github.com/Sify1999/telegram-bot-dollar-price/internal/infrastructure/logx"
	"github.com/Sify1999/telegram-bot-dollar-price/internal/infrastructure/telegram"
	"github.com/Sify1999/telegram-bot-dollar-price/internal/infrastructure/worker"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// App owns every long-lived component; nothing lives in package globals.
type App struct {
	Config     config.Config
	Bot        *telegram.Client
	Store      Store
	Quotes     *application.QuoteService
	Tracker    *application.Tracker
	Dispatcher *application.Dispatcher
	Reminder   *application.Reminder
	Ops        *httpserver.Server

	workers  []application.Worker
	cleanups []func()
	log      *zap.Logger
}

type options struct {
	telegramEndpoint string
	telegramClient   *http.Client
	scrapeClient     *http.Client
	logger           *zap.Logger
}

type Option func(*options)

// WithTelegramEndpoint points the bot at another Bot API server ("…/bot%s/%s").
func WithTelegramEndpoint(endpoint string, client *http.Client) Option {
	return func(o *options) { o.telegramEndpoint, o.telegramClient = endpoint, client }
}

func WithScrapeClient(client *http.Client) Option {
	return func(o *options) { o.scrapeClient = client }
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New validates cfg before touching the network or any store, then wires the bot.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := options{logger: logx.L()}
	for _, fn := range opts {
		fn(&o)
	}
	if o.telegramClient == nil {
		o.telegramClient = &http.Client{Timeout: time.Duration(infraconfig.DefaultPollTimeout+10) * time.Second}
	}
	if o.scrapeClient == nil {
		o.scrapeClient = &http.Client{Timeout: cfg.ScrapeTimeout}
	}
	log := o.logger
	loc, _ := cfg.Location()

	a := &App{Config: cfg, log: log}
	ok := false
	defer func() {
		if !ok {
			a.close()
		}
	}()

	_ = tgbotapi.SetLogger(logx.StdLog("telegram"))
	bot, err := ProvideBot(cfg, o.telegramEndpoint, o.telegramClient)
	if err != nil {
		return nil, err
	}
	a.Bot = bot
	log.Info("bot.authorized", zap.String("username", bot.Username()), zap.Int64("bot_id", bot.BotID()))

	store, cleanup := ProvideStore(ctx, log, cfg)
	a.Store = store
	a.cleanups = append(a.cleanups, cleanup)

	idem, cleanup := ProvideIdempotency(ctx, log, cfg)
	a.cleanups = append(a.cleanups, cleanup)

	quotes, err := ProvideQuoteService(log, cfg, o.scrapeClient)
	if err != nil {
		return nil, err
	}
	a.Quotes = quotes

	a.Tracker = application.NewTracker(store.Repo, bot, application.WithTrackerLogger(log.With(zap.String("component", "tracker"))))
	a.Dispatcher = application.NewDispatcher(application.DispatcherConfig{
		AdminID:   cfg.AdminID,
		ChannelID: cfg.ChannelID,
		BotID:     bot.BotID(),
	}, bot, quotes, a.Tracker, idem, log.With(zap.String("component", "dispatcher")))

	a.workers = append(a.workers, telegram.NewPoller(bot, a.Dispatcher, infraconfig.DefaultPollTimeout, log.With(zap.String("component", "poller"))))
	a.workers = append(a.workers, &worker.QuoteRefresher{Quotes: quotes, Every: cfg.QuoteRefresh, Log: log})

	if cfg.ReminderDate != "" {
		ref, _ := cfg.ReminderReference()
		hour, minute, _ := cfg.ReminderClock()
		a.Reminder = application.NewReminder(application.ReminderConfig{
			ChannelID: cfg.ReminderChannelID,
			Reference: ref,
			Location:  loc,
			Template:  cfg.ReminderTemplate,
		}, bot, nil, log.With(zap.String("component", "reminder")))
		a.workers = append(a.workers, &worker.DailyWorker{
			Name:         "reminder",
			Job:          a.Reminder.Run,
			Hour:         hour,
			Minute:       minute,
			Loc:          loc,
			StartupDelay: cfg.ReminderStartupDelay,
			Log:          log,
		})
	}

	if cfg.HTTPAddr != "" {
		srv := httpserver.NewServer(cfg.HTTPAddr, quotes, infraconfig.DefaultShutdownTimeout)
		if store.Ping != nil {
			srv.SetReadyCheck(store.Ping)
		}
		a.Ops = srv
		a.workers = append(a.workers, srv)
	}

	ok = true
	return a, nil
}

// Run starts every worker and blocks until ctx is cancelled and all of them
// have returned. Stores are closed afterwards.
func (a *App) Run(ctx context.Context) error {
	defer a.close()
	var wg sync.WaitGroup
	for _, w := range a.workers {
		wg.Add(1)
		go func(w application.Worker) {
			defer wg.Done()
			w.Start(ctx)
		}(w)
	}
	a.log.Info("app.started", zap.Int("workers", len(a.workers)), zap.Bool("store_degraded", a.Store.Degraded))
	<-ctx.Done()
	wg.Wait()
	a.log.Info("app.stopped")
	return nil
}

func (a *App) close() {
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		a.cleanups[i]()
	}
	a.cleanups = nil
}
