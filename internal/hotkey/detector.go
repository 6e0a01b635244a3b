package hotkey

import (
	"sync"
	"time"
)

// HoldThreshold separates a quick tap from a deliberate hold. A press held
// at least this long stops on release (hold mode); a shorter press leaves
// recording running until the next trigger press (toggle mode).
const HoldThreshold = 200 * time.Millisecond

// Cycle key names observed only while recording is active.
const (
	cycleKeyUp   = "up"
	cycleKeyDown = "down"
)

// Detector resolves ambiguous key timing into discrete start/stop intents.
// It consumes KeyEvents from the OS hook thread; handlers must be fast and
// non-blocking since they run on that thread.
type Detector struct {
	spec    Spec
	onStart func()
	onStop  func()

	now func() time.Time

	mu           sync.Mutex
	onCycle      func(direction int)
	modsDown     map[string]bool
	triggerDown  bool
	recording    bool
	toggleActive bool
	pressedAt    time.Time
}

// NewDetector builds a detector for one hotkey spec.
func NewDetector(spec Spec, onStart, onStop func()) *Detector {
	return &Detector{
		spec:     spec,
		onStart:  onStart,
		onStop:   onStop,
		now:      time.Now,
		modsDown: make(map[string]bool),
	}
}

// SetCycleHandler wires the handler fired by up/down presses while recording.
func (d *Detector) SetCycleHandler(fn func(direction int)) {
	d.mu.Lock()
	d.onCycle = fn
	d.mu.Unlock()
}

// Recording reports whether the detector considers recording active.
func (d *Detector) Recording() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.recording
}

// Reset forcibly clears internal flags without firing a stop intent.
// Used when the hook is unregistered mid-hold.
func (d *Detector) Reset() {
	d.mu.Lock()
	d.triggerDown = false
	d.recording = false
	d.toggleActive = false
	d.modsDown = make(map[string]bool)
	d.mu.Unlock()
}

type intent int

const (
	intentNone intent = iota
	intentStart
	intentStop
)

// Handle consumes one key transition. Unknown keys are no-ops.
func (d *Detector) Handle(ev KeyEvent) {
	key := NormalizeKey(ev.Key)

	d.mu.Lock()
	fired, cycle, onCycle := d.apply(key, ev.Down)
	d.mu.Unlock()

	switch fired {
	case intentStart:
		if d.onStart != nil {
			d.onStart()
		}
	case intentStop:
		if d.onStop != nil {
			d.onStop()
		}
	}
	if cycle != 0 && onCycle != nil {
		onCycle(cycle)
	}
}

// apply mutates detector state under the lock and reports what to fire.
func (d *Detector) apply(key string, down bool) (intent, int, func(int)) {
	if d.isRequiredModifier(key) {
		d.modsDown[key] = down
		// Lifting a required modifier before the trigger ends a hold;
		// toggle mode survives modifier release.
		if !down && d.recording && !d.toggleActive {
			d.recording = false
			return intentStop, 0, nil
		}
		return intentNone, 0, nil
	}

	if key == d.spec.Trigger {
		if down {
			return d.applyTriggerDown(), 0, nil
		}
		return d.applyTriggerUp(), 0, nil
	}

	if d.recording && down {
		switch key {
		case cycleKeyUp:
			return intentNone, -1, d.onCycle
		case cycleKeyDown:
			return intentNone, +1, d.onCycle
		}
	}

	return intentNone, 0, nil
}

func (d *Detector) applyTriggerDown() intent {
	if d.triggerDown {
		// OS key-repeat while physically held; never re-trigger.
		return intentNone
	}
	d.triggerDown = true

	if d.recording {
		if d.toggleActive {
			// The next press after a quick tap is the stop gesture.
			d.recording = false
			d.toggleActive = false
			return intentStop
		}
		return intentNone
	}

	if !d.modifiersHeld() {
		return intentNone
	}

	d.pressedAt = d.now()
	d.recording = true
	d.toggleActive = false
	return intentStart
}

func (d *Detector) applyTriggerUp() intent {
	wasDown := d.triggerDown
	d.triggerDown = false

	if !d.recording || !wasDown {
		return intentNone
	}

	if d.now().Sub(d.pressedAt) >= HoldThreshold {
		d.recording = false
		return intentStop
	}

	// Quick tap: keep recording; the next trigger press stops it.
	d.toggleActive = true
	return intentNone
}

func (d *Detector) isRequiredModifier(key string) bool {
	for _, mod := range d.spec.Modifiers {
		if mod == key {
			return true
		}
	}
	return false
}

func (d *Detector) modifiersHeld() bool {
	for _, mod := range d.spec.Modifiers {
		if !d.modsDown[mod] {
			return false
		}
	}
	return true
}
