package config

import (
	"fmt"
	"regexp"
	"strings"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

var validOverlayPositions = map[string]struct{}{
	"top_center":    {},
	"top_left":      {},
	"top_right":     {},
	"bottom_center": {},
}

// Validate clamps out-of-range values back to defaults and reports each
// correction as a warning. Configuration problems never block startup.
func Validate(cfg Config) (Config, []Warning) {
	defaults := Default()
	warnings := make([]Warning, 0)

	clamp := func(field, got, fallback string) string {
		warnings = append(warnings, Warning{
			Message: fmt.Sprintf("%s %q is invalid; using %q", field, got, fallback),
		})
		return fallback
	}

	if strings.TrimSpace(cfg.Hotkey.Combo) == "" {
		cfg.Hotkey.Combo = clamp("hotkey", cfg.Hotkey.Combo, defaults.Hotkey.Combo)
	}
	switch strings.ToLower(strings.TrimSpace(cfg.Hotkey.Mode)) {
	case HotkeyModeHold, HotkeyModeToggle, HotkeyModeSmart:
		cfg.Hotkey.Mode = strings.ToLower(strings.TrimSpace(cfg.Hotkey.Mode))
	default:
		cfg.Hotkey.Mode = clamp("hotkey_mode", cfg.Hotkey.Mode, defaults.Hotkey.Mode)
	}

	if strings.TrimSpace(cfg.Speech.Language) == "" {
		cfg.Speech.Language = clamp("language", cfg.Speech.Language, defaults.Speech.Language)
	}
	if strings.TrimSpace(cfg.Speech.Model) == "" {
		cfg.Speech.Model = clamp("model", cfg.Speech.Model, defaults.Speech.Model)
	}
	if strings.TrimSpace(cfg.Speech.BaseURL) == "" {
		cfg.Speech.BaseURL = clamp("speech_base_url", cfg.Speech.BaseURL, defaults.Speech.BaseURL)
	}

	switch cfg.Formatter.Mode {
	case FormatModeNormal, FormatModeProfessionalEmail, FormatModeAIPrompt:
	default:
		cfg.Formatter.Mode = clamp("format_mode", cfg.Formatter.Mode, defaults.Formatter.Mode)
	}
	cfg.Formatter.EmailTone = clampScale(&warnings, "email_tone", cfg.Formatter.EmailTone, defaults.Formatter.EmailTone)
	cfg.Formatter.PromptDetail = clampScale(&warnings, "prompt_detail", cfg.Formatter.PromptDetail, defaults.Formatter.PromptDetail)
	if cfg.Formatter.Enable && strings.TrimSpace(cfg.Formatter.BaseURL) == "" {
		cfg.Formatter.BaseURL = clamp("formatter_base_url", cfg.Formatter.BaseURL, defaults.Formatter.BaseURL)
	}

	if _, ok := validOverlayPositions[cfg.Overlay.Position]; !ok {
		cfg.Overlay.Position = clamp("overlay_position", cfg.Overlay.Position, defaults.Overlay.Position)
	}
	if !hexColorPattern.MatchString(cfg.Overlay.AccentColor) {
		cfg.Overlay.AccentColor = clamp("accent_color", cfg.Overlay.AccentColor, defaults.Overlay.AccentColor)
	}
	if !hexColorPattern.MatchString(cfg.Overlay.BGColor) {
		cfg.Overlay.BGColor = clamp("bg_color", cfg.Overlay.BGColor, defaults.Overlay.BGColor)
	}

	if cfg.Indicator.Enable && strings.TrimSpace(cfg.Indicator.AppName) == "" {
		cfg.Indicator.AppName = clamp("indicator_app_name", cfg.Indicator.AppName, defaults.Indicator.AppName)
	}

	if len(cfg.Clipboard.Argv) == 0 {
		cfg.Clipboard = defaults.Clipboard
		warnings = append(warnings, Warning{Message: "clipboard_cmd is empty; using default"})
	}
	if cfg.Probe.Enable {
		probeCommands := []struct {
			name string
			cmd  *CommandConfig
			def  CommandConfig
		}{
			{"probe_select_cmd", &cfg.Probe.Select, defaults.Probe.Select},
			{"probe_copy_cmd", &cfg.Probe.Copy, defaults.Probe.Copy},
			{"probe_read_cmd", &cfg.Probe.Read, defaults.Probe.Read},
			{"probe_restore_cmd", &cfg.Probe.Restore, defaults.Probe.Restore},
		}
		for _, probe := range probeCommands {
			if len(probe.cmd.Argv) == 0 {
				*probe.cmd = probe.def
				warnings = append(warnings, Warning{Message: fmt.Sprintf("%s is empty; using default", probe.name)})
			}
		}
	}

	return cfg, warnings
}

// clampScale forces 1..5 scale values back to their default.
func clampScale(warnings *[]Warning, field string, got, fallback int) int {
	if got >= 1 && got <= 5 {
		return got
	}
	*warnings = append(*warnings, Warning{
		Message: fmt.Sprintf("%s %d is out of range 1..5; using %d", field, got, fallback),
	})
	return fallback
}
