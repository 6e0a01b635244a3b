package config

import (
	"encoding/json"
	"fmt"
	"strings"
)

// fileConfig is the on-disk JSON schema. Pointer fields distinguish absent
// keys from zero values so partial files overlay cleanly onto defaults.
type fileConfig struct {
	Hotkey     *string `json:"hotkey"`
	HotkeyMode *string `json:"hotkey_mode"`

	InputDevice *string `json:"input_device"`

	Language        *string `json:"language"`
	Model           *string `json:"model"`
	SpeechBaseURL   *string `json:"speech_base_url"`
	SpeechAPIKeyEnv *string `json:"speech_api_key_env"`

	FormatterEnable    *bool   `json:"formatter_enable"`
	FormatterBaseURL   *string `json:"formatter_base_url"`
	FormatterAPIKeyEnv *string `json:"formatter_api_key_env"`
	FormatterModel     *string `json:"formatter_model"`
	FormatMode         *string `json:"format_mode"`
	EmailTone          *int    `json:"email_tone"`
	PromptDetail       *int    `json:"prompt_detail"`

	SmartSpacing *bool `json:"smart_spacing"`
	BulletMode   *bool `json:"bullet_mode"`
	EmailMode    *bool `json:"email_mode"`

	OverlayPosition *string `json:"overlay_position"`
	AccentColor     *string `json:"accent_color"`
	BGColor         *string `json:"bg_color"`

	IndicatorEnable  *bool   `json:"indicator_enable"`
	IndicatorAppName *string `json:"indicator_app_name"`

	ClipboardCmd    *string `json:"clipboard_cmd"`
	PasteCmd        *string `json:"paste_cmd"`
	ProbeEnable     *bool   `json:"probe_enable"`
	ProbeSelectCmd  *string `json:"probe_select_cmd"`
	ProbeCopyCmd    *string `json:"probe_copy_cmd"`
	ProbeReadCmd    *string `json:"probe_read_cmd"`
	ProbeRestoreCmd *string `json:"probe_restore_cmd"`

	DictionaryPath *string `json:"dictionary_path"`
}

// Parse overlays file content onto a base config and validates the result.
func Parse(content string, base Config) (Config, []Warning, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		cfg, warnings := Validate(base)
		return cfg, warnings, nil
	}

	var file fileConfig
	if err := json.Unmarshal([]byte(trimmed), &file); err != nil {
		return Config{}, nil, fmt.Errorf("decode config JSON: %w", err)
	}

	cfg := base
	warnings := make([]Warning, 0)

	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}

	setString(&cfg.Hotkey.Combo, file.Hotkey)
	setString(&cfg.Hotkey.Mode, file.HotkeyMode)
	setString(&cfg.Audio.InputDevice, file.InputDevice)
	setString(&cfg.Speech.Language, file.Language)
	setString(&cfg.Speech.Model, file.Model)
	setString(&cfg.Speech.BaseURL, file.SpeechBaseURL)
	setString(&cfg.Speech.APIKeyEnv, file.SpeechAPIKeyEnv)
	setBool(&cfg.Formatter.Enable, file.FormatterEnable)
	setString(&cfg.Formatter.BaseURL, file.FormatterBaseURL)
	setString(&cfg.Formatter.APIKeyEnv, file.FormatterAPIKeyEnv)
	setString(&cfg.Formatter.Model, file.FormatterModel)
	setString(&cfg.Formatter.Mode, file.FormatMode)
	setInt(&cfg.Formatter.EmailTone, file.EmailTone)
	setInt(&cfg.Formatter.PromptDetail, file.PromptDetail)
	setBool(&cfg.Text.SmartSpacing, file.SmartSpacing)
	setBool(&cfg.Text.BulletMode, file.BulletMode)
	setBool(&cfg.Text.EmailMode, file.EmailMode)
	setString(&cfg.Overlay.Position, file.OverlayPosition)
	setString(&cfg.Overlay.AccentColor, file.AccentColor)
	setString(&cfg.Overlay.BGColor, file.BGColor)
	setBool(&cfg.Indicator.Enable, file.IndicatorEnable)
	setString(&cfg.Indicator.AppName, file.IndicatorAppName)
	setBool(&cfg.Probe.Enable, file.ProbeEnable)
	setString(&cfg.Dictionary.Path, file.DictionaryPath)

	commands := []struct {
		name string
		src  *string
		dst  *CommandConfig
	}{
		{"clipboard_cmd", file.ClipboardCmd, &cfg.Clipboard},
		{"paste_cmd", file.PasteCmd, &cfg.Paste},
		{"probe_select_cmd", file.ProbeSelectCmd, &cfg.Probe.Select},
		{"probe_copy_cmd", file.ProbeCopyCmd, &cfg.Probe.Copy},
		{"probe_read_cmd", file.ProbeReadCmd, &cfg.Probe.Read},
		{"probe_restore_cmd", file.ProbeRestoreCmd, &cfg.Probe.Restore},
	}
	for _, cmd := range commands {
		if cmd.src == nil {
			continue
		}
		argv, err := parseArgv(*cmd.src)
		if err != nil {
			warnings = append(warnings, Warning{Message: fmt.Sprintf("%s: %v; keeping previous value", cmd.name, err)})
			continue
		}
		*cmd.dst = CommandConfig{Raw: *cmd.src, Argv: argv}
	}

	validated, validateWarnings := Validate(cfg)
	return validated, append(warnings, validateWarnings...), nil
}
