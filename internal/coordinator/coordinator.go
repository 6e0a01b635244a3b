// Package coordinator wires hotkey intents to the capture, transcription,
// formatting, and injection subsystems around a strict dictation FSM.
package coordinator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/murmurapp/murmur/internal/config"
	"github.com/murmurapp/murmur/internal/fsm"
	"github.com/murmurapp/murmur/internal/hotkey"
	"github.com/murmurapp/murmur/internal/textproc"
	"github.com/murmurapp/murmur/internal/transcribe"
)

const (
	// levelPollInterval paces the live loudness feed (~30 updates/s).
	levelPollInterval = 33 * time.Millisecond

	// levelWindow is how many loudness samples each update carries.
	levelWindow = 30

	// processTimeout bounds one utterance's transcribe+format+inject chain.
	processTimeout = 90 * time.Second
)

// Engine is the coordinator-facing subset of audio capture behavior.
type Engine interface {
	OpenStream(ctx context.Context) error
	CloseStream()
	StartRecording()
	StopRecording() []float32
	GetLevels(count int) []float64
}

// Worker is the coordinator-facing subset of transcription behavior.
type Worker interface {
	LoadModel(ctx context.Context) error
	Transcribe(ctx context.Context, samples []float32, hints transcribe.Hints) (string, error)
}

// Formatter rewrites transcribed text per the active format mode.
type Formatter interface {
	Format(ctx context.Context, text, mode string, tone, detail int) string
}

// Injector delivers text into the focused application.
type Injector interface {
	Inject(ctx context.Context, text string) error
	ProbeContext(ctx context.Context) (string, bool)
}

// Hooker is the coordinator-facing subset of the keyboard listener.
type Hooker interface {
	Start() error
	Stop()
}

// Dictionary supplies recognition bias hints. May be nil.
type Dictionary interface {
	InitialPrompt() string
	Hotwords() string
}

// Observer receives synchronous lifecycle notifications. Implementations
// must return quickly; they run on the coordinator's calling goroutine.
type Observer interface {
	StateChanged(state fsm.State)
	LevelsUpdated(levels []float64)
	FormatModeChanged(mode string)
}

// Coordinator owns the dictation lifecycle: one FSM, one set of subsystems,
// at most one utterance in flight.
type Coordinator struct {
	logger    *slog.Logger
	factories Factories

	mu         sync.Mutex
	cfg        config.Config
	state      fsm.State
	formatMode string
	running    bool
	baseCtx    context.Context

	listener Hooker
	engine   Engine
	worker   Worker
	format   Formatter
	injector Injector
	dict     Dictionary

	levelStop chan struct{}

	observers []Observer
}

// New constructs a coordinator. Observers are notified in registration order.
func New(cfg config.Config, dict Dictionary, logger *slog.Logger, factories Factories, observers ...Observer) *Coordinator {
	factories.fillDefaults()
	return &Coordinator{
		logger:     logger,
		factories:  factories,
		cfg:        cfg,
		state:      fsm.StateLoading,
		formatMode: cfg.Formatter.Mode,
		dict:       dict,
		observers:  observers,
	}
}

// State returns the current FSM state snapshot.
func (c *Coordinator) State() fsm.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// FormatMode returns the active format mode.
func (c *Coordinator) FormatMode() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.formatMode
}

// Start brings up every subsystem and moves the FSM from loading to idle.
// Subsystem trouble is logged and degrades per-utterance rather than
// aborting startup; only an unusable hotkey combo is fatal.
func (c *Coordinator) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("coordinator already started")
	}
	cfg := c.cfg
	c.baseCtx = ctx
	c.mu.Unlock()

	c.notifyState(fsm.StateLoading)

	spec, err := hotkey.ParseSpec(cfg.Hotkey.Combo)
	if err != nil {
		return fmt.Errorf("parse hotkey %q: %w", cfg.Hotkey.Combo, err)
	}

	engine := c.factories.Engine(cfg, c.logger)
	worker := c.factories.Worker(cfg, c.logger)
	formatter := c.factories.Formatter(cfg, c.logger)
	injector := c.factories.Injector(cfg, c.logger)

	if err := worker.LoadModel(ctx); err != nil {
		if c.logger != nil {
			c.logger.Warn("model load failed; transcription degrades per utterance", "error", err.Error())
		}
	}
	if err := engine.OpenStream(ctx); err != nil {
		if c.logger != nil {
			c.logger.Error("audio stream unavailable; recordings will be empty", "error", err.Error())
		}
	}

	detector := hotkey.NewDetector(spec, c.HandleStart, c.HandleStop)
	detector.SetCycleHandler(c.CycleFormat)
	listener := c.factories.Listener(detector, c.logger)
	if err := listener.Start(); err != nil {
		engine.CloseStream()
		return fmt.Errorf("install keyboard hook: %w", err)
	}

	c.mu.Lock()
	c.listener = listener
	c.engine = engine
	c.worker = worker
	c.format = formatter
	c.injector = injector
	c.running = true
	if next, tErr := fsm.Transition(c.state, fsm.EventReady); tErr == nil {
		c.state = next
	}
	ready := c.state
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Info("dictation ready", "hotkey", spec.String(), "mode", cfg.Hotkey.Mode)
	}
	c.notifyState(ready)
	return nil
}

// HandleStart begins a recording session. Fired from the detector; only the
// idle state accepts it, so overlapping utterances are structurally impossible.
func (c *Coordinator) HandleStart() {
	c.mu.Lock()
	next, err := fsm.Transition(c.state, fsm.EventStart)
	if err != nil {
		c.mu.Unlock()
		if c.logger != nil {
			c.logger.Debug("start intent ignored", "error", err.Error())
		}
		return
	}
	c.state = next
	engine := c.engine
	stop := make(chan struct{})
	c.levelStop = stop
	c.mu.Unlock()

	engine.StartRecording()
	go c.pollLevels(engine, stop)

	if c.logger != nil {
		c.logger.Info("recording started")
	}
	c.notifyState(next)
}

// HandleStop ends the recording session and dispatches background processing.
func (c *Coordinator) HandleStop() {
	c.mu.Lock()
	next, err := fsm.Transition(c.state, fsm.EventStop)
	if err != nil {
		c.mu.Unlock()
		if c.logger != nil {
			c.logger.Debug("stop intent ignored", "error", err.Error())
		}
		return
	}
	c.state = next
	if c.levelStop != nil {
		close(c.levelStop)
		c.levelStop = nil
	}
	// Snapshot subsystems: a concurrent reload must not retarget the
	// utterance already in flight.
	engine := c.engine
	worker := c.worker
	formatter := c.format
	injector := c.injector
	mode := c.formatMode
	cfg := c.cfg
	c.mu.Unlock()

	samples := engine.StopRecording()
	c.notifyState(next)

	go c.process(samples, worker, formatter, injector, mode, cfg)
}

// process runs one utterance through transcribe, format, shape, and inject.
// Every outcome, including failure, returns the FSM to idle.
func (c *Coordinator) process(samples []float32, worker Worker, formatter Formatter, injector Injector, mode string, cfg config.Config) {
	utterance := uuid.NewString()
	started := time.Now()

	defer func() {
		c.mu.Lock()
		next, err := fsm.Transition(c.state, fsm.EventDone)
		if err == nil {
			c.state = next
		}
		c.mu.Unlock()
		if err == nil {
			c.notifyState(next)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), processTimeout)
	defer cancel()

	logger := c.logger
	if logger != nil {
		logger = logger.With("utterance", utterance)
	}

	var hints transcribe.Hints
	if c.dict != nil {
		hints = transcribe.Hints{InitialPrompt: c.dict.InitialPrompt(), Hotwords: c.dict.Hotwords()}
	}

	text, err := worker.Transcribe(ctx, samples, hints)
	if err != nil {
		if logger != nil {
			logger.Error("transcription failed", "samples", len(samples), "error", err.Error())
		}
		return
	}
	if text == "" {
		if logger != nil {
			logger.Info("no speech detected", "samples", len(samples))
		}
		return
	}

	text = formatter.Format(ctx, text, mode, cfg.Formatter.EmailTone, cfg.Formatter.PromptDetail)

	shaped := c.shape(ctx, text, injector, cfg)

	if err := injector.Inject(ctx, shaped); err != nil {
		if logger != nil {
			logger.Error("text injection failed", "error", err.Error())
		}
		return
	}

	if logger != nil {
		logger.Info("utterance committed",
			"chars", len(shaped),
			"mode", mode,
			"duration_ms", time.Since(started).Milliseconds(),
		)
	}
}

// shape applies spacing/bullet/email policies, probing the text before the
// cursor when smart spacing wants surrounding context.
func (c *Coordinator) shape(ctx context.Context, text string, injector Injector, cfg config.Config) string {
	opts := textproc.Options{
		SmartSpacing: cfg.Text.SmartSpacing,
		BulletMode:   cfg.Text.BulletMode,
		EmailMode:    cfg.Text.EmailMode,
	}

	if !opts.SmartSpacing && !opts.BulletMode {
		return textproc.Process("", text, opts)
	}

	preceding, ok := injector.ProbeContext(ctx)
	if !ok {
		preceding = ""
	}
	return textproc.Process(preceding, text, opts)
}

// CycleFormat steps the format mode by direction (-1 previous, +1 next).
func (c *Coordinator) CycleFormat(direction int) {
	c.mu.Lock()
	c.formatMode = textproc.CycleMode(c.formatMode, direction)
	mode := c.formatMode
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Info("format mode changed", "mode", mode)
	}
	for _, obs := range c.observers {
		obs.FormatModeChanged(mode)
	}
}

// pollLevels feeds observers the loudness window while recording is active.
func (c *Coordinator) pollLevels(engine Engine, stop chan struct{}) {
	timer := time.NewTimer(levelPollInterval)
	defer timer.Stop()

	for {
		select {
		case <-stop:
			return
		case <-timer.C:
			levels := engine.GetLevels(levelWindow)
			for _, obs := range c.observers {
				obs.LevelsUpdated(levels)
			}
			timer.Reset(levelPollInterval)
		}
	}
}

// ReloadConfig applies a new configuration. Cosmetic fields swap in place;
// changes to the hotkey, model, language, device, or service endpoints tear
// down and rebuild the listener, engine, and worker. A recording in progress
// is cancelled and its buffer discarded; an utterance already processing
// keeps its snapshot of the old subsystems.
func (c *Coordinator) ReloadConfig(cfg config.Config) error {
	validated, warnings := config.Validate(cfg)
	for _, w := range warnings {
		if c.logger != nil {
			c.logger.Warn("config reload", "warning", w.Message)
		}
	}

	c.mu.Lock()
	if !c.running {
		c.cfg = validated
		c.formatMode = validated.Formatter.Mode
		c.mu.Unlock()
		return nil
	}
	restart := needsRestart(c.cfg, validated)
	c.cfg = validated
	c.formatMode = validated.Formatter.Mode
	oldListener := c.listener
	oldEngine := c.engine
	baseCtx := c.baseCtx
	c.mu.Unlock()

	for _, obs := range c.observers {
		obs.FormatModeChanged(validated.Formatter.Mode)
	}

	if !restart {
		if c.logger != nil {
			c.logger.Info("config reloaded in place")
		}
		return nil
	}

	spec, err := hotkey.ParseSpec(validated.Hotkey.Combo)
	if err != nil {
		return fmt.Errorf("parse hotkey %q: %w", validated.Hotkey.Combo, err)
	}

	// An armed session cannot survive the teardown of its stream; cancel
	// the active recording and discard the partial buffer so the FSM is
	// back in idle before the old subsystems go away.
	c.mu.Lock()
	cancelled := false
	if c.state == fsm.StateRecording {
		if next, tErr := fsm.Transition(c.state, fsm.EventStop); tErr == nil {
			c.state = next
		}
		if next, tErr := fsm.Transition(c.state, fsm.EventDone); tErr == nil {
			c.state = next
		}
		if c.levelStop != nil {
			close(c.levelStop)
			c.levelStop = nil
		}
		cancelled = true
	}
	c.mu.Unlock()
	if cancelled {
		oldEngine.StopRecording()
		if c.logger != nil {
			c.logger.Warn("recording cancelled by config reload")
		}
		c.notifyState(fsm.StateIdle)
	}

	oldListener.Stop()
	oldEngine.CloseStream()

	engine := c.factories.Engine(validated, c.logger)
	worker := c.factories.Worker(validated, c.logger)
	formatter := c.factories.Formatter(validated, c.logger)
	injector := c.factories.Injector(validated, c.logger)

	if err := worker.LoadModel(baseCtx); err != nil && c.logger != nil {
		c.logger.Warn("model load failed after reload", "error", err.Error())
	}
	if err := engine.OpenStream(baseCtx); err != nil && c.logger != nil {
		c.logger.Error("audio stream unavailable after reload", "error", err.Error())
	}

	detector := hotkey.NewDetector(spec, c.HandleStart, c.HandleStop)
	detector.SetCycleHandler(c.CycleFormat)
	listener := c.factories.Listener(detector, c.logger)
	if err := listener.Start(); err != nil {
		engine.CloseStream()
		return fmt.Errorf("install keyboard hook after reload: %w", err)
	}

	c.mu.Lock()
	c.listener = listener
	c.engine = engine
	c.worker = worker
	c.format = formatter
	c.injector = injector
	c.mu.Unlock()

	if c.logger != nil {
		c.logger.Info("config reloaded with subsystem restart", "hotkey", spec.String())
	}
	return nil
}

// needsRestart reports whether a config change invalidates live subsystems.
func needsRestart(old, next config.Config) bool {
	return old.Hotkey.Combo != next.Hotkey.Combo ||
		old.Audio.InputDevice != next.Audio.InputDevice ||
		old.Speech != next.Speech ||
		old.Formatter.Enable != next.Formatter.Enable ||
		old.Formatter.BaseURL != next.Formatter.BaseURL ||
		old.Formatter.APIKeyEnv != next.Formatter.APIKeyEnv ||
		old.Formatter.Model != next.Formatter.Model
}

// Shutdown stops the listener, level feed, and stream. Safe to call
// repeatedly or before Start; an in-flight utterance finishes on its own.
func (c *Coordinator) Shutdown() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	listener := c.listener
	engine := c.engine
	if c.levelStop != nil {
		close(c.levelStop)
		c.levelStop = nil
	}
	c.running = false
	c.mu.Unlock()

	listener.Stop()
	engine.CloseStream()

	if c.logger != nil {
		c.logger.Info("dictation stopped")
	}
}

// notifyState pushes one state transition to all observers.
func (c *Coordinator) notifyState(state fsm.State) {
	for _, obs := range c.observers {
		obs.StateChanged(state)
	}
}
