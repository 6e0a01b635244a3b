// Package indicator surfaces dictation state as desktop notifications.
package indicator

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/murmurapp/murmur/internal/config"
	"github.com/murmurapp/murmur/internal/fsm"
)

const dispatchTimeout = 400 * time.Millisecond

// Desktop is a coordinator observer that mirrors dictation state into a
// single replaceable desktop notification. Disabled config makes every
// method a no-op; notification failures are debug-logged and ignored.
type Desktop struct {
	cfg    config.IndicatorConfig
	logger *slog.Logger

	// notify/dismiss are swappable in tests.
	notify  func(ctx context.Context, appName string, replaceID uint32, summary string, timeoutMS int) (uint32, error)
	dismiss func(ctx context.Context, id uint32) error

	mu             sync.Mutex
	notificationID uint32
}

// NewDesktop creates a desktop-notification observer from config.
func NewDesktop(cfg config.IndicatorConfig, logger *slog.Logger) *Desktop {
	return &Desktop{
		cfg:     cfg,
		logger:  logger,
		notify:  desktopNotify,
		dismiss: desktopDismiss,
	}
}

// StateChanged mirrors one FSM transition into the notification surface.
func (d *Desktop) StateChanged(state fsm.State) {
	if !d.cfg.Enable {
		return
	}

	switch state {
	case fsm.StateRecording:
		d.show("Recording…", 300000)
	case fsm.StateProcessing:
		d.show("Transcribing…", 300000)
	case fsm.StateIdle:
		d.hide()
	}
}

// LevelsUpdated is intentionally empty: loudness rendering belongs to richer
// UI collaborators, not the notification surface.
func (d *Desktop) LevelsUpdated([]float64) {}

// FormatModeChanged flashes the newly selected format mode.
func (d *Desktop) FormatModeChanged(mode string) {
	if !d.cfg.Enable {
		return
	}
	d.show("Format: "+strings.ReplaceAll(mode, "_", " "), 1200)
}

// show posts or replaces the active notification.
func (d *Desktop) show(summary string, timeoutMS int) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	d.mu.Lock()
	replaceID := d.notificationID
	d.mu.Unlock()

	id, err := d.notify(ctx, d.appName(), replaceID, summary, timeoutMS)
	if err != nil {
		d.log("indicator dispatch failed", err)
		return
	}

	d.mu.Lock()
	d.notificationID = id
	d.mu.Unlock()
}

// hide closes the active notification when one is up.
func (d *Desktop) hide() {
	d.mu.Lock()
	id := d.notificationID
	d.notificationID = 0
	d.mu.Unlock()

	if id == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()
	if err := d.dismiss(ctx, id); err != nil {
		d.log("indicator dismiss failed", err)
	}
}

func (d *Desktop) appName() string {
	name := strings.TrimSpace(d.cfg.AppName)
	if name == "" {
		name = "murmur"
	}
	return name
}

func (d *Desktop) log(message string, err error) {
	if d.logger == nil || err == nil {
		return
	}
	d.logger.Debug(message, "error", err.Error())
}
