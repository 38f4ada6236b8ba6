package logger

import (
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/noah-isme/sma-enrollment-intake/pkg/config"
)

// withSentry tees error-level entries into Sentry. If the SDK cannot be
// initialised the plain logger is returned and the failure is logged.
func withSentry(l *zap.Logger, cfg *config.Config) (*zap.Logger, error) {
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.Sentry.DSN,
		Environment: cfg.Env,
	}); err != nil {
		l.Error("failed to initialize sentry", zap.Error(err))
		return l, nil
	}
	hub := sentry.CurrentHub()
	return l.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, newSentryCore(hub, zapcore.ErrorLevel))
	})), nil
}

// Flush waits for buffered Sentry events; a no-op when Sentry is disabled.
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}

type sentryCore struct {
	zapcore.LevelEnabler
	hub    *sentry.Hub
	fields []zapcore.Field
}

func newSentryCore(hub *sentry.Hub, level zapcore.LevelEnabler) *sentryCore {
	return &sentryCore{LevelEnabler: level, hub: hub}
}

func (s *sentryCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *s
	clone.fields = append(append([]zapcore.Field{}, s.fields...), fields...)
	return &clone
}

func (s *sentryCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if s.Enabled(entry.Level) {
		return checked.AddCore(entry, s)
	}
	return checked
}

func (s *sentryCore) Write(entry zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range append(append([]zapcore.Field{}, s.fields...), fields...) {
		f.AddTo(enc)
	}

	event := sentry.NewEvent()
	event.Level = sentryLevel(entry.Level)
	event.Message = entry.Message
	event.Logger = entry.LoggerName
	event.Timestamp = entry.Time
	event.Extra = enc.Fields
	if msg, ok := enc.Fields["error"].(string); ok {
		event.Exception = []sentry.Exception{{Type: entry.Message, Value: msg}}
	}
	s.hub.CaptureEvent(event)
	return nil
}

func (s *sentryCore) Sync() error {
	s.hub.Flush(2 * time.Second)
	return nil
}

func sentryLevel(level zapcore.Level) sentry.Level {
	switch level {
	case zapcore.DebugLevel:
		return sentry.LevelDebug
	case zapcore.InfoLevel:
		return sentry.LevelInfo
	case zapcore.WarnLevel:
		return sentry.LevelWarning
	case zapcore.ErrorLevel:
		return sentry.LevelError
	default:
		return sentry.LevelFatal
	}
}
