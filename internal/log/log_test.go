package log

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonwraymond/utilkit/observe"
)

func TestInitLogger_LevelFromEnv(t *testing.T) {
	t.Setenv(EnvLevel, "INFO")
	var buf bytes.Buffer
	InitLoggerWithWriter(&buf)

	log.Debug("hidden")
	log.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), " I shown")
}

func TestInitLogger_BadLevelFallsBackToError(t *testing.T) {
	t.Setenv(EnvLevel, "chatty")
	var buf bytes.Buffer
	InitLoggerWithWriter(&buf)

	log.Warn("hidden")
	log.Error("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), " E shown")
}

func TestSetLevel(t *testing.T) {
	require.NoError(t, SetLevel("DEBUG"))
	assert.Error(t, SetLevel("loud"))
}

func TestObserve_FieldsAndRedaction(t *testing.T) {
	var buf bytes.Buffer
	logger := &log.Logger{Handler: log.HandlerFunc(func(e *log.Entry) error {
		buf.WriteString(e.Level.String() + " " + e.Message)
		for _, k := range e.Fields.Names() {
			buf.WriteString(" " + k + "=")
			if s, ok := e.Fields.Get(k).(string); ok {
				buf.WriteString(s)
			}
		}
		buf.WriteString("\n")
		return nil
	}), Level: log.DebugLevel}

	l := Observe(logger).With(observe.OpMeta{Component: "cli", Name: "crc"})
	l.Warn(context.Background(), "careful", observe.F("token", "abc"), observe.F("path", "x.txt"))
	l.Debug(context.Background(), "quiet", observe.F("err", errors.New("x")))

	out := buf.String()
	assert.Contains(t, out, "warn careful op=cli.crc path=x.txt token=[REDACTED]")
	assert.Contains(t, out, "debug quiet")
}
