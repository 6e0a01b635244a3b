// Package hotkey turns raw key events into start/stop dictation intents.
package hotkey

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Spec is a parsed hotkey combination: ordered modifiers plus one trigger key.
type Spec struct {
	Modifiers []string
	Trigger   string
}

// KeyEvent is one key transition as delivered by the OS hook.
type KeyEvent struct {
	Key  string
	Down bool
	At   time.Time
}

var modifierAliases = map[string]string{
	"ctrl":          "ctrl",
	"lctrl":         "ctrl",
	"rctrl":         "ctrl",
	"left ctrl":     "ctrl",
	"right ctrl":    "ctrl",
	"control":       "ctrl",
	"shift":         "shift",
	"lshift":        "shift",
	"rshift":        "shift",
	"left shift":    "shift",
	"right shift":   "shift",
	"alt":           "alt",
	"lalt":          "alt",
	"ralt":          "alt",
	"left alt":      "alt",
	"right alt":     "alt",
	"meta":          "meta",
	"win":           "meta",
	"windows":       "meta",
	"left windows":  "meta",
	"right windows": "meta",
	"super":         "meta",
	"cmd":           "meta",
	"lcmd":          "meta",
	"rcmd":          "meta",
}

// NormalizeKey lowercases a key name and collapses left/right modifier
// variants to their canonical form.
func NormalizeKey(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := modifierAliases[name]; ok {
		return canonical
	}
	return name
}

// IsModifier reports whether a normalized key name is a modifier.
func IsModifier(name string) bool {
	_, ok := modifierAliases[NormalizeKey(name)]
	return ok
}

// ParseSpec splits a combination string like "ctrl+shift+space" into a Spec.
// Parsing is case-insensitive and whitespace-tolerant; a single-part string
// is a bare trigger with no modifiers.
func ParseSpec(combo string) (Spec, error) {
	combo = strings.TrimSpace(combo)
	if combo == "" {
		return Spec{}, errors.New("hotkey is empty")
	}

	parts := strings.Split(combo, "+")
	normalized := make([]string, 0, len(parts))
	for _, part := range parts {
		key := NormalizeKey(part)
		if key == "" {
			return Spec{}, fmt.Errorf("hotkey %q contains an empty key", combo)
		}
		normalized = append(normalized, key)
	}

	trigger := normalized[len(normalized)-1]
	if IsModifier(trigger) {
		return Spec{}, fmt.Errorf("hotkey %q trigger key %q is a modifier", combo, trigger)
	}

	modifiers := normalized[:len(normalized)-1]
	for _, mod := range modifiers {
		if !IsModifier(mod) {
			return Spec{}, fmt.Errorf("hotkey %q modifier %q is not a modifier key", combo, mod)
		}
	}

	return Spec{Modifiers: modifiers, Trigger: trigger}, nil
}

// String renders the spec back into combo form.
func (s Spec) String() string {
	if len(s.Modifiers) == 0 {
		return s.Trigger
	}
	return strings.Join(s.Modifiers, "+") + "+" + s.Trigger
}
