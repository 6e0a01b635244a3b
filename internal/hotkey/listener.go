package hotkey

import (
	"log/slog"
	"sync"
	"time"

	hook "github.com/robotn/gohook"
)

// Listener adapts the global OS keyboard hook into detector key events.
// Start and Stop are idempotent; the hook runs for the listener lifetime.
type Listener struct {
	detector *Detector
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
	done    chan struct{}
}

// NewListener binds a listener to a detector.
func NewListener(detector *Detector, logger *slog.Logger) *Listener {
	return &Listener{detector: detector, logger: logger}
}

// Start installs the global hook and begins feeding the detector.
func (l *Listener) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		return nil
	}

	events := hook.Start()
	l.done = make(chan struct{})
	l.running = true

	go l.loop(events)

	if l.logger != nil {
		l.logger.Info("keyboard hook installed")
	}
	return nil
}

// Stop tears down the hook and resets detector flags without firing a stop.
func (l *Listener) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	done := l.done
	l.mu.Unlock()

	hook.End()
	if done != nil {
		<-done
	}
	l.detector.Reset()

	if l.logger != nil {
		l.logger.Info("keyboard hook removed")
	}
}

// loop drains hook events until the hook channel closes.
func (l *Listener) loop(events chan hook.Event) {
	defer close(l.done)

	for ev := range events {
		switch ev.Kind {
		case hook.KeyDown, hook.KeyHold:
			l.dispatch(ev, true)
		case hook.KeyUp:
			l.dispatch(ev, false)
		}
	}
}

// dispatch maps one hook event to a detector key event.
func (l *Listener) dispatch(ev hook.Event, down bool) {
	name := hook.RawcodetoKeychar(ev.Rawcode)
	if name == "" {
		return
	}
	l.detector.Handle(KeyEvent{Key: name, Down: down, At: time.Now()})
}
