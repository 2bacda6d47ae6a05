package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/Sify1999/telegram-bot-dollar-price/internal/domain"

	"go.uber.org/zap"
)

// QuoteService scrapes the price and date fields and remembers the last good value
// of each. Its accessors never fail: a scrape failure yields the cached value.
type QuoteService struct {
	price FieldSource
	date  FieldSource
	log   *zap.Logger

	mu   sync.RWMutex
	last domain.QuoteSnapshot
}

func NewQuoteService(price, date FieldSource, log *zap.Logger) *QuoteService {
	if log == nil {
		log = zap.NewNop()
	}
	return &QuoteService{price: price, date: date, log: log, last: domain.UnknownSnapshot()}
}

func (s *QuoteService) Price(ctx context.Context) string {
	return s.field(ctx, "price", s.price, func(q *domain.QuoteSnapshot) *string { return &q.Price })
}

func (s *QuoteService) Date(ctx context.Context) string {
	return s.field(ctx, "date", s.date, func(q *domain.QuoteSnapshot) *string { return &q.Date })
}

// Quote scrapes both fields.
func (s *QuoteService) Quote(ctx context.Context) domain.QuoteSnapshot {
	return domain.QuoteSnapshot{Price: s.Price(ctx), Date: s.Date(ctx)}
}

// Snapshot returns the cached values without scraping.
func (s *QuoteService) Snapshot() domain.QuoteSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

func (s *QuoteService) field(ctx context.Context, name string, src FieldSource, slot func(*domain.QuoteSnapshot) *string) string {
	var (
		v   string
		err error
	)
	if src == nil {
		err = fmt.Errorf("%w: no source configured", domain.ErrFetch)
	} else {
		v, err = src.Fetch(ctx)
	}
	if err == nil && v == "" {
		err = fmt.Errorf("%w: empty value", domain.ErrExtract)
	}

	if err != nil {
		s.mu.RLock()
		cached := *slot(&s.last)
		s.mu.RUnlock()
		s.log.Warn("quotes.fetch_failed",
			zap.String("field", name),
			zap.String("fallback", cached),
			zap.Error(err),
		)
		return cached
	}

	s.mu.Lock()
	*slot(&s.last) = v
	s.mu.Unlock()
	s.log.Info("quotes.updated", zap.String("field", name), zap.String("value", v))
	return v
}

// FormatQuote renders the broadcast text for a quote.
func FormatQuote(q domain.QuoteSnapshot) string {
	return fmt.Sprintf("%s\nCurrent USD price: %s Rials", q.Date, q.Price)
}
