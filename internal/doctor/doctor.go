// Package doctor runs runtime readiness diagnostics for config, tools,
// audio capture, and the speech endpoint.
package doctor

import (
	"context"
	"fmt"
	"net/http"
	"os/exec"
	"strings"
	"time"

	"github.com/murmurapp/murmur/internal/audio"
	"github.com/murmurapp/murmur/internal/config"
)

// Check is one doctor assertion result.
type Check struct {
	Name    string
	Pass    bool
	Message string
}

// Report is the full doctor output contract.
type Report struct {
	Checks []Check
}

// OK returns true when all checks pass.
func (r Report) OK() bool {
	for _, check := range r.Checks {
		if !check.Pass {
			return false
		}
	}
	return true
}

// String renders the report as user-facing text output.
func (r Report) String() string {
	var b strings.Builder
	for _, check := range r.Checks {
		status := "OK"
		if !check.Pass {
			status = "FAIL"
		}
		b.WriteString(fmt.Sprintf("[%s] %s: %s\n", status, check.Name, check.Message))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Run executes environment/config/runtime checks for a loaded config.
func Run(ctx context.Context, loaded config.Loaded) Report {
	cfg := loaded.Config
	checks := []Check{}

	configMsg := fmt.Sprintf("loaded %q", loaded.Path)
	if !loaded.Exists {
		configMsg = fmt.Sprintf("using defaults; %q does not exist", loaded.Path)
	}
	checks = append(checks, Check{Name: "config", Pass: true, Message: configMsg})

	checks = append(checks, checkHotkey(cfg.Hotkey.Combo))
	checks = append(checks, checkCommand(cfg.Clipboard.Argv, "clipboard_cmd"))
	checks = append(checks, checkCommand(cfg.Paste.Argv, "paste_cmd"))
	if cfg.Probe.Enable {
		checks = append(checks, checkCommand(cfg.Probe.Select.Argv, "probe_select_cmd"))
		checks = append(checks, checkCommand(cfg.Probe.Read.Argv, "probe_read_cmd"))
	}

	checks = append(checks, checkAudioSelection(ctx, cfg))
	checks = append(checks, checkSpeechEndpoint(cfg.Speech))
	checks = append(checks, checkFormatterCredential(cfg.Formatter))

	return Report{Checks: checks}
}

// checkHotkey validates that the configured combo parses.
func checkHotkey(combo string) Check {
	parts := strings.Split(combo, "+")
	trigger := strings.TrimSpace(parts[len(parts)-1])
	if trigger == "" {
		return Check{Name: "hotkey", Pass: false, Message: fmt.Sprintf("combo %q has no trigger key", combo)}
	}
	return Check{Name: "hotkey", Pass: true, Message: fmt.Sprintf("combo %q", combo)}
}

// checkCommand validates that argv contains a runnable command.
func checkCommand(argv []string, name string) Check {
	if len(argv) == 0 {
		return Check{Name: name, Pass: false, Message: "command is empty"}
	}
	return checkBinary(argv[0], fmt.Sprintf("%s command is available", name))
}

// checkBinary validates that a binary exists in PATH.
func checkBinary(bin string, okMsg string) Check {
	path, err := exec.LookPath(bin)
	if err != nil {
		return Check{Name: bin, Pass: false, Message: fmt.Sprintf("binary not found in PATH: %s", bin)}
	}
	return Check{Name: bin, Pass: true, Message: fmt.Sprintf("found at %s (%s)", path, okMsg)}
}

// checkAudioSelection enumerates Pulse sources and resolves the configured device.
func checkAudioSelection(ctx context.Context, cfg config.Config) Check {
	devices, err := audio.ListDevices(ctx)
	if err != nil {
		return Check{Name: "audio.device", Pass: false, Message: err.Error()}
	}
	device, err := audio.ResolveDevice(devices, cfg.Audio.InputDevice)
	if err != nil {
		return Check{Name: "audio.device", Pass: false, Message: err.Error()}
	}
	return Check{Name: "audio.device", Pass: true, Message: fmt.Sprintf("selected %s", audio.DescribeDevice(device))}
}

// checkSpeechEndpoint probes the OpenAI-compatible models listing over HTTP.
func checkSpeechEndpoint(cfg config.SpeechConfig) Check {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return Check{Name: "speech.endpoint", Pass: false, Message: "speech_base_url is empty"}
	}

	url := base + "/models"
	client := http.Client{Timeout: 2 * time.Second}
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return Check{Name: "speech.endpoint", Pass: false, Message: fmt.Sprintf("build request: %v", err)}
	}
	if key := config.APIKey(cfg.APIKeyEnv); key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}

	resp, err := client.Do(req)
	if err != nil {
		return Check{Name: "speech.endpoint", Pass: false, Message: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Check{Name: "speech.endpoint", Pass: false, Message: fmt.Sprintf("HTTP %d from %s", resp.StatusCode, url)}
	}
	return Check{Name: "speech.endpoint", Pass: true, Message: fmt.Sprintf("reachable at %s (model %s)", url, cfg.Model)}
}

// checkFormatterCredential verifies the API key env var when the formatter is on.
func checkFormatterCredential(cfg config.FormatterConfig) Check {
	if !cfg.Enable {
		return Check{Name: "formatter", Pass: true, Message: "disabled; template fallback only"}
	}
	if config.APIKey(cfg.APIKeyEnv) == "" {
		return Check{
			Name:    "formatter",
			Pass:    false,
			Message: fmt.Sprintf("enabled but %s is unset; template fallback will be used", cfg.APIKeyEnv),
		}
	}
	return Check{Name: "formatter", Pass: true, Message: fmt.Sprintf("credential present in %s (model %s)", cfg.APIKeyEnv, cfg.Model)}
}
