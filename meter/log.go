package meter

import (
	"log/slog"

	"github.com/smartreplyhq/smartreply"
)

// LogMeter logs submission events using slog.
type LogMeter struct {
	Logger *slog.Logger
}

var _ smartreply.Meter = (*LogMeter)(nil)

// NewLogMeter creates a LogMeter with the given logger.
// If logger is nil, slog.Default() is used.
func NewLogMeter(logger *slog.Logger) *LogMeter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMeter{Logger: logger}
}

func (m *LogMeter) OnSubmit(e smartreply.SubmitEvent) {
	m.Logger.Info("submit",
		"id", e.ID,
		"tone", e.Tone,
		"content_len", e.ContentLen,
		"remaining", e.Remaining,
	)
}

func (m *LogMeter) OnOutcome(e smartreply.OutcomeEvent) {
	if e.Kind == smartreply.OutcomeSuccess {
		m.Logger.Info("outcome",
			"id", e.ID,
			"kind", e.Kind.String(),
			"duration_ms", e.Duration.Milliseconds(),
			"used", e.Quota.Used,
			"remaining", e.Quota.Remaining,
		)
		return
	}
	m.Logger.Warn("outcome_error",
		"id", e.ID,
		"kind", e.Kind.String(),
		"duration_ms", e.Duration.Milliseconds(),
		"remaining", e.Quota.Remaining,
		"message", e.Message,
	)
}
