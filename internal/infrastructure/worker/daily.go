package worker

import (
	"context"
	"time"

	"github.com/Sify1999/telegram-bot-dollar-price/internal/application"
	"go.uber.org/zap"
)

var _ application.Worker = (*DailyWorker)(nil)

// DailyWorker runs Job every day at Hour:Minute in Loc, plus once StartupDelay
// after start. A negative StartupDelay skips the startup run.
type DailyWorker struct {
	Name         string
	Job          func(ctx context.Context) error
	Hour, Minute int
	Loc          *time.Location
	StartupDelay time.Duration
	Log          *zap.Logger
	Now          func() time.Time
}

// NextRun is the first hour:minute in loc strictly after now.
func NextRun(now time.Time, hour, minute int, loc *time.Location) time.Time {
	local := now.In(loc)
	y, m, d := local.Date()
	next := time.Date(y, m, d, hour, minute, 0, 0, loc)
	if !next.After(local) {
		next = time.Date(y, m, d+1, hour, minute, 0, 0, loc)
	}
	return next
}

func (w *DailyWorker) Start(ctx context.Context) {
	log := w.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("worker", w.Name))
	now := w.Now
	if now == nil {
		now = time.Now
	}
	loc := w.Loc
	if loc == nil {
		loc = time.UTC
	}

	var startup <-chan time.Time
	if w.StartupDelay >= 0 {
		st := time.NewTimer(w.StartupDelay)
		defer st.Stop()
		startup = st.C
	}

	log.Info("daily_worker_started", zap.Int("hour", w.Hour), zap.Int("minute", w.Minute), zap.String("tz", loc.String()))
	for {
		next := NextRun(now(), w.Hour, w.Minute, loc)
		daily := time.NewTimer(next.Sub(now()))
		log.Debug("daily_worker_scheduled", zap.Time("next", next))

		select {
		case <-ctx.Done():
			daily.Stop()
			log.Info("daily_worker_stopped")
			return
		case <-startup:
			startup = nil
			daily.Stop()
			w.run(ctx, log, "startup")
		case <-daily.C:
			w.run(ctx, log, "scheduled")
		}
	}
}

func (w *DailyWorker) run(ctx context.Context, log *zap.Logger, trigger string) {
	if err := w.Job(ctx); err != nil {
		log.Warn("daily_worker_job_failed", zap.String("trigger", trigger), zap.Error(err))
		return
	}
	log.Info("daily_worker_job_done", zap.String("trigger", trigger))
}
