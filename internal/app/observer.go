package app

import (
	"log/slog"

	"github.com/murmurapp/murmur/internal/fsm"
)

// logObserver mirrors coordinator transitions into the runtime log. Level
// updates are deliberately unlogged; at ~30 Hz they would swamp the file.
type logObserver struct {
	logger *slog.Logger
}

func newLogObserver(logger *slog.Logger) *logObserver {
	return &logObserver{logger: logger}
}

func (o *logObserver) StateChanged(state fsm.State) {
	if o.logger != nil {
		o.logger.Info("state changed", "state", string(state))
	}
}

func (o *logObserver) LevelsUpdated([]float64) {}

func (o *logObserver) FormatModeChanged(mode string) {
	if o.logger != nil {
		o.logger.Info("format mode", "mode", mode)
	}
}
