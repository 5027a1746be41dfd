package log

import (
	"context"
	"io"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/apex/log"

	"github.com/jonwraymond/utilkit/logutils"
	"github.com/jonwraymond/utilkit/observe"
)

// EnvLevel names the variable that sets the initial log level.
const EnvLevel = "UTILKIT_LOG"

// InitLogger sets up Apex with the multi-line handler on stderr and a log
// level from the UTILKIT_LOG env variable.
func InitLogger() {
	InitLoggerWithWriter(os.Stderr)
}

// InitLoggerWithWriter is InitLogger writing to w.
func InitLoggerWithWriter(w io.Writer) {
	log.SetHandler(logutils.NewMultiLineIndentHandler(w, ""))
	level := os.Getenv(EnvLevel)
	if level == "" {
		level = "error"
	}
	if err := SetLevel(level); err != nil {
		log.SetLevel(log.ErrorLevel)
	}
}

// SetLevel changes the level of the default Apex logger.
func SetLevel(level string) error {
	l, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return err
	}
	log.SetLevel(l)
	return nil
}

// Observe adapts an Apex logger to observe.Logger so instrumented
// operations log through the same handler as the rest of the CLI.
func Observe(l log.Interface) observe.Logger {
	return &apexLogger{base: l, fields: log.Fields{}}
}

type apexLogger struct {
	base   log.Interface
	fields log.Fields
}

func (l *apexLogger) With(meta observe.OpMeta) observe.Logger {
	fields := maps.Clone(l.fields)
	fields["op"] = meta.ID()
	if meta.Version != "" {
		fields["op.version"] = meta.Version
	}
	return &apexLogger{base: l.base, fields: fields}
}

func (l *apexLogger) Debug(_ context.Context, msg string, fields ...observe.Field) {
	l.entry(fields).Debug(msg)
}

func (l *apexLogger) Info(_ context.Context, msg string, fields ...observe.Field) {
	l.entry(fields).Info(msg)
}

func (l *apexLogger) Warn(_ context.Context, msg string, fields ...observe.Field) {
	l.entry(fields).Warn(msg)
}

func (l *apexLogger) Error(_ context.Context, msg string, fields ...observe.Field) {
	l.entry(fields).Error(msg)
}

func (l *apexLogger) entry(fields []observe.Field) *log.Entry {
	all := maps.Clone(l.fields)
	for _, f := range fields {
		if slices.Contains(observe.RedactedFields, f.Key) {
			all[f.Key] = "[REDACTED]"
			continue
		}
		all[f.Key] = f.Value
	}
	return l.base.WithFields(all)
}
