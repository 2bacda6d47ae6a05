package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Sify1999/telegram-bot-dollar-price/internal/application"
	"github.com/Sify1999/telegram-bot-dollar-price/internal/domain"
	"github.com/Sify1999/telegram-bot-dollar-price/internal/infrastructure/logx"
	"go.uber.org/zap"
)

var _ application.Worker = (*Server)(nil)

// Snapshotter returns the cached quote without scraping.
type Snapshotter interface {
	Snapshot() domain.QuoteSnapshot
}

// Server is the ops surface: liveness, readiness and the cached quote.
type Server struct {
	addr            string
	quotes          Snapshotter
	ping            func(ctx context.Context) error
	shutdownTimeout time.Duration
}

func NewServer(addr string, quotes Snapshotter, shutdownTimeout time.Duration) *Server {
	return &Server{addr: addr, quotes: quotes, shutdownTimeout: shutdownTimeout}
}

// SetReadyCheck installs the /readyz probe, typically the store ping.
func (s *Server) SetReadyCheck(fn func(ctx context.Context) error) { s.ping = fn }

type quoteResponse struct {
	Price string `json:"price"`
	Date  string `json:"date"`
	Text  string `json:"text"`
}

func (s *Server) getQuote(w http.ResponseWriter, _ *http.Request) {
	q := s.quotes.Snapshot()
	writeJSON(w, http.StatusOK, quoteResponse{Price: q.Price, Date: q.Date, Text: application.FormatQuote(q)})
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) {
	log := logx.L().With(zap.String("addr", s.addr))
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           NewRouter(s),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	log.Info("http_server_started")

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http_server_failed", zap.Error(err))
		}
	case <-ctx.Done():
		shCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shCtx); err != nil {
			log.Warn("http_server_shutdown_failed", zap.Error(err))
		}
		log.Info("http_server_stopped")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}
