package logx

import (
	"strings"

	"github.com/Sify1999/telegram-bot-dollar-price/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.Logger
)

func init() {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Sampling = nil
	zapCfg.DisableStacktrace = true
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	appCfg := config.Load()
	if appCfg.LogLevel != "" {
		_ = zapCfg.Level.UnmarshalText([]byte(strings.ToLower(appCfg.LogLevel)))
	}

	var err error
	logger, err = zapCfg.Build(zap.AddCaller())
	if err != nil {
		panic(err)
	}
}

// L returns the package-level logger instance.
func L() *zap.Logger {
	return logger
}

// Named returns a child logger tagged with the component name.
func Named(component string) *zap.Logger {
	return logger.With(zap.String("component", component))
}

// StdLog adapts the logger for libraries that expect a *log.Logger-like Printf sink.
func StdLog(component string) *StdLogger {
	return &StdLogger{s: Named(component).Sugar()}
}

type StdLogger struct {
	s *zap.SugaredLogger
}

func (l *StdLogger) Println(v ...interface{}) { l.s.Debug(v...) }

func (l *StdLogger) Printf(format string, v ...interface{}) { l.s.Debugf(format, v...) }
