package worker

import (
	"context"
	"time"

	"github.com/Sify1999/telegram-bot-dollar-price/internal/application"
	"github.com/Sify1999/telegram-bot-dollar-price/internal/domain"
	"go.uber.org/zap"
)

var _ application.Worker = (*QuoteRefresher)(nil)

// QuoteSource is refreshed on every tick; fallbacks happen inside it.
type QuoteSource interface {
	Quote(ctx context.Context) domain.QuoteSnapshot
}

// QuoteRefresher keeps the quote cache warm so fallbacks stay recent.
type QuoteRefresher struct {
	Quotes QuoteSource
	Every  time.Duration
	Log    *zap.Logger
}

func (w *QuoteRefresher) Start(ctx context.Context) {
	log := w.Log
	if log == nil {
		log = zap.NewNop()
	}
	if w.Every <= 0 {
		log.Info("quote_refresher_disabled")
		return
	}

	t := time.NewTicker(w.Every)
	defer t.Stop()

	log.Info("quote_refresher_started", zap.Duration("every", w.Every))
	for {
		select {
		case <-ctx.Done():
			log.Info("quote_refresher_stopped")
			return
		case <-t.C:
			q := w.Quotes.Quote(ctx)
			log.Debug("quote_refreshed", zap.String("price", q.Price), zap.String("date", q.Date))
		}
	}
}
