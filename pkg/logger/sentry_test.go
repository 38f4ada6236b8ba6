package logger

import (
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestSentryLevelMapping(t *testing.T) {
	assert.Equal(t, sentry.LevelWarning, sentryLevel(zapcore.WarnLevel))
	assert.Equal(t, sentry.LevelError, sentryLevel(zapcore.ErrorLevel))
	assert.Equal(t, sentry.LevelFatal, sentryLevel(zapcore.PanicLevel))
}

func TestSentryCoreOnlyHandlesErrors(t *testing.T) {
	core := newSentryCore(sentry.NewHub(nil, sentry.NewScope()), zapcore.ErrorLevel)

	assert.False(t, core.Enabled(zapcore.WarnLevel))
	assert.True(t, core.Enabled(zapcore.ErrorLevel))

	scoped := core.With([]zapcore.Field{zap.String("operation", "insert")}).(*sentryCore)
	assert.Len(t, scoped.fields, 1)
	assert.Empty(t, core.fields)
}
