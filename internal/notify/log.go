package notify

import (
	"context"
	"log/slog"

	"github.com/mcoot/kabak/internal/model"
)

// LogSink records every notification in the structured log
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a sink writing to logger
func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger.With(slog.String("component", "notify-log"))}
}

func (s *LogSink) Deliver(ctx context.Context, n model.Notification) error {
	s.logger.InfoContext(ctx, "notification",
		slog.String("to", string(n.To)),
		slog.String("type", string(n.Type)),
		slog.String("message", n.Message),
	)
	return nil
}
