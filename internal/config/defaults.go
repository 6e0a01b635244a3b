package config

// Format mode identifiers shared with the text pipeline.
const (
	FormatModeNormal            = "normal"
	FormatModeProfessionalEmail = "professional_email"
	FormatModeAIPrompt          = "ai_prompt"
)

// Hotkey mode identifiers. The detector always disambiguates hold vs. toggle
// by press duration; the configured mode is surfaced to UI collaborators.
const (
	HotkeyModeHold   = "hold"
	HotkeyModeToggle = "toggle"
	HotkeyModeSmart  = "smart"
)

// Default returns the canonical runtime configuration used when no file is present.
func Default() Config {
	clipboard := "wl-copy --trim-newline"
	paste := "wtype -M ctrl -k v -m ctrl"
	probeSelect := "wtype -M shift -k Home -m shift"
	probeCopy := "wtype -M ctrl -k c -m ctrl"
	probeRead := "wl-paste --no-newline"
	probeRestore := "wtype -k Right"

	return Config{
		Hotkey: HotkeyConfig{
			Combo: "ctrl+shift+space",
			Mode:  HotkeyModeSmart,
		},
		Audio: AudioConfig{InputDevice: ""},
		Speech: SpeechConfig{
			BaseURL:   "http://127.0.0.1:8000/v1",
			APIKeyEnv: "MURMUR_SPEECH_API_KEY",
			Model:     "whisper-1",
			Language:  "en",
		},
		Formatter: FormatterConfig{
			Enable:       true,
			BaseURL:      "https://api.openai.com/v1",
			APIKeyEnv:    "OPENAI_API_KEY",
			Model:        "gpt-4o-mini",
			Mode:         FormatModeNormal,
			EmailTone:    3,
			PromptDetail: 3,
		},
		Text: TextConfig{
			SmartSpacing: true,
			BulletMode:   false,
			EmailMode:    false,
		},
		Overlay: OverlayConfig{
			Position:    "top_center",
			AccentColor: "#ff4466",
			BGColor:     "#1a1a2e",
		},
		Indicator: IndicatorConfig{
			Enable:  true,
			AppName: "murmur",
		},
		Clipboard: CommandConfig{Raw: clipboard, Argv: mustParseArgv(clipboard)},
		Paste:     CommandConfig{Raw: paste, Argv: mustParseArgv(paste)},
		Probe: ProbeConfig{
			Enable:  true,
			Select:  CommandConfig{Raw: probeSelect, Argv: mustParseArgv(probeSelect)},
			Copy:    CommandConfig{Raw: probeCopy, Argv: mustParseArgv(probeCopy)},
			Read:    CommandConfig{Raw: probeRead, Argv: mustParseArgv(probeRead)},
			Restore: CommandConfig{Raw: probeRestore, Argv: mustParseArgv(probeRestore)},
		},
		Dictionary: DictionaryConfig{Path: ""},
	}
}
