package coordinator

import (
	"log/slog"

	"github.com/murmurapp/murmur/internal/audio"
	"github.com/murmurapp/murmur/internal/config"
	"github.com/murmurapp/murmur/internal/hotkey"
	"github.com/murmurapp/murmur/internal/inject"
	"github.com/murmurapp/murmur/internal/textproc"
	"github.com/murmurapp/murmur/internal/transcribe"
)

// Factories construct coordinator subsystems from config. Reload uses them
// to rebuild restart-keyed subsystems; tests substitute fakes.
type Factories struct {
	Engine    func(cfg config.Config, logger *slog.Logger) Engine
	Worker    func(cfg config.Config, logger *slog.Logger) Worker
	Formatter func(cfg config.Config, logger *slog.Logger) Formatter
	Injector  func(cfg config.Config, logger *slog.Logger) Injector
	Listener  func(detector *hotkey.Detector, logger *slog.Logger) Hooker
}

// DefaultFactories returns the production subsystem constructors.
func DefaultFactories() Factories {
	return Factories{
		Engine: func(cfg config.Config, logger *slog.Logger) Engine {
			return audio.NewEngine(cfg.Audio.InputDevice, logger)
		},
		Worker: func(cfg config.Config, logger *slog.Logger) Worker {
			return transcribe.NewWorker(cfg.Speech, logger)
		},
		Formatter: func(cfg config.Config, logger *slog.Logger) Formatter {
			return textproc.NewFormatter(cfg.Formatter, logger)
		},
		Injector: func(cfg config.Config, logger *slog.Logger) Injector {
			return inject.NewInjector(cfg, logger)
		},
		Listener: func(detector *hotkey.Detector, logger *slog.Logger) Hooker {
			return hotkey.NewListener(detector, logger)
		},
	}
}

// fillDefaults replaces nil constructors with production ones.
func (f *Factories) fillDefaults() {
	defaults := DefaultFactories()
	if f.Engine == nil {
		f.Engine = defaults.Engine
	}
	if f.Worker == nil {
		f.Worker = defaults.Worker
	}
	if f.Formatter == nil {
		f.Formatter = defaults.Formatter
	}
	if f.Injector == nil {
		f.Injector = defaults.Injector
	}
	if f.Listener == nil {
		f.Listener = defaults.Listener
	}
}
