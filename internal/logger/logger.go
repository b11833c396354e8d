package logger

import (
	"context"
	"log/slog"
	"os"
	"runtime/debug"
	"time"
)

// Logger emits structured JSON log lines tagged with the service name and
// hostname. The refID slot carries whatever identifies the unit of work:
// an order id, a stream connection id, or a job name.
type Logger struct {
	service  string
	hostname string
	handler  *slog.Logger
}

func New(service string) *Logger {
	hostname, _ := os.Hostname()

	handler := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	return &Logger{
		service:  service,
		hostname: hostname,
		handler:  handler,
	}
}

func (l *Logger) Info(action, refID, message string) {
	l.handler.LogAttrs(
		context.TODO(),
		slog.LevelInfo,
		message,
		l.baseAttrs(action, refID)...,
	)
}

func (l *Logger) Debug(action, refID, message string) {
	l.handler.LogAttrs(
		context.TODO(),
		slog.LevelDebug,
		message,
		l.baseAttrs(action, refID)...,
	)
}

func (l *Logger) Warn(action, refID, message string) {
	l.handler.LogAttrs(
		context.TODO(),
		slog.LevelWarn,
		message,
		l.baseAttrs(action, refID)...,
	)
}

func (l *Logger) Error(action, refID, message string, err error) {
	attrs := append(l.baseAttrs(action, refID),
		slog.Group("error",
			slog.String("msg", err.Error()),
			slog.String("stack", string(debug.Stack())),
		),
	)
	l.handler.LogAttrs(
		context.TODO(),
		slog.LevelError,
		message,
		attrs...,
	)
}

func (l *Logger) baseAttrs(action, refID string) []slog.Attr {
	return []slog.Attr{
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		slog.String("service", l.service),
		slog.String("hostname", l.hostname),
		slog.String("action", action),
		slog.String("ref_id", refID),
	}
}
