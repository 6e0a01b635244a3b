package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Save writes the configuration back to disk in the on-disk JSON schema.
func Save(cfg Config, path string) error {
	file := fileConfig{
		Hotkey:             &cfg.Hotkey.Combo,
		HotkeyMode:         &cfg.Hotkey.Mode,
		InputDevice:        &cfg.Audio.InputDevice,
		Language:           &cfg.Speech.Language,
		Model:              &cfg.Speech.Model,
		SpeechBaseURL:      &cfg.Speech.BaseURL,
		SpeechAPIKeyEnv:    &cfg.Speech.APIKeyEnv,
		FormatterEnable:    &cfg.Formatter.Enable,
		FormatterBaseURL:   &cfg.Formatter.BaseURL,
		FormatterAPIKeyEnv: &cfg.Formatter.APIKeyEnv,
		FormatterModel:     &cfg.Formatter.Model,
		FormatMode:         &cfg.Formatter.Mode,
		EmailTone:          &cfg.Formatter.EmailTone,
		PromptDetail:       &cfg.Formatter.PromptDetail,
		SmartSpacing:       &cfg.Text.SmartSpacing,
		BulletMode:         &cfg.Text.BulletMode,
		EmailMode:          &cfg.Text.EmailMode,
		OverlayPosition:    &cfg.Overlay.Position,
		AccentColor:        &cfg.Overlay.AccentColor,
		BGColor:            &cfg.Overlay.BGColor,
		IndicatorEnable:    &cfg.Indicator.Enable,
		IndicatorAppName:   &cfg.Indicator.AppName,
		ClipboardCmd:       &cfg.Clipboard.Raw,
		PasteCmd:           &cfg.Paste.Raw,
		ProbeEnable:        &cfg.Probe.Enable,
		ProbeSelectCmd:     &cfg.Probe.Select.Raw,
		ProbeCopyCmd:       &cfg.Probe.Copy.Raw,
		ProbeReadCmd:       &cfg.Probe.Read.Raw,
		ProbeRestoreCmd:    &cfg.Probe.Restore.Raw,
		DictionaryPath:     &cfg.Dictionary.Path,
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %q: %w", path, err)
	}
	return nil
}
