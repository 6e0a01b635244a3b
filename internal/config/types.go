// Package config resolves, parses, validates, and defaults murmur configuration.
package config

// Config is the fully materialized runtime configuration used by murmur.
type Config struct {
	Hotkey     HotkeyConfig
	Audio      AudioConfig
	Speech     SpeechConfig
	Formatter  FormatterConfig
	Text       TextConfig
	Overlay    OverlayConfig
	Indicator  IndicatorConfig
	Clipboard  CommandConfig
	Paste      CommandConfig
	Probe      ProbeConfig
	Dictionary DictionaryConfig
}

// HotkeyConfig controls the global dictation hotkey.
type HotkeyConfig struct {
	Combo string
	Mode  string // hold | toggle | smart
}

// AudioConfig controls input-source selection.
type AudioConfig struct {
	// InputDevice is a source name substring; empty selects the default source.
	InputDevice string
}

// SpeechConfig locates the OpenAI-compatible transcription endpoint.
type SpeechConfig struct {
	BaseURL   string
	APIKeyEnv string
	Model     string
	Language  string
}

// FormatterConfig controls the humanizer service and its request parameters.
type FormatterConfig struct {
	Enable       bool
	BaseURL      string
	APIKeyEnv    string
	Model        string
	Mode         string // normal | professional_email | ai_prompt
	EmailTone    int    // 1..5
	PromptDetail int    // 1..5
}

// TextConfig toggles post-transcription shaping policies.
type TextConfig struct {
	SmartSpacing bool
	BulletMode   bool
	EmailMode    bool
}

// OverlayConfig carries display preferences consumed by UI collaborators.
type OverlayConfig struct {
	Position    string
	AccentColor string
	BGColor     string
}

// IndicatorConfig controls desktop-notification state feedback.
type IndicatorConfig struct {
	Enable  bool
	AppName string
}

// CommandConfig stores a raw command string and its parsed argv form.
type CommandConfig struct {
	Raw  string
	Argv []string
}

// ProbeConfig describes the best-effort preceding-context probe commands.
type ProbeConfig struct {
	Enable  bool
	Select  CommandConfig
	Copy    CommandConfig
	Read    CommandConfig
	Restore CommandConfig
}

// DictionaryConfig locates the persisted vocabulary file.
type DictionaryConfig struct {
	Path string
}

// Warning is a non-fatal parse/validation message.
type Warning struct {
	Message string
}
