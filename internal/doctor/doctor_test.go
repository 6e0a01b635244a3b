package doctor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/murmurapp/murmur/internal/config"
)

func TestReportOK(t *testing.T) {
	report := Report{Checks: []Check{
		{Name: "a", Pass: true, Message: "fine"},
		{Name: "b", Pass: true, Message: "also fine"},
	}}
	require.True(t, report.OK())

	report.Checks = append(report.Checks, Check{Name: "c", Pass: false, Message: "broken"})
	require.False(t, report.OK())
}

func TestReportString(t *testing.T) {
	report := Report{Checks: []Check{
		{Name: "config", Pass: true, Message: "loaded"},
		{Name: "audio.device", Pass: false, Message: "no devices"},
	}}

	out := report.String()
	require.Contains(t, out, "[OK] config: loaded")
	require.Contains(t, out, "[FAIL] audio.device: no devices")
}

func TestCheckCommand(t *testing.T) {
	check := checkCommand(nil, "clipboard_cmd")
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "empty")

	// "sh" exists on any test host.
	check = checkCommand([]string{"sh", "-c", "true"}, "probe_cmd")
	require.True(t, check.Pass)

	check = checkCommand([]string{"definitely-not-a-binary-xyz"}, "paste_cmd")
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "not found in PATH")
}

func TestCheckHotkey(t *testing.T) {
	require.True(t, checkHotkey("ctrl+shift+space").Pass)
	require.False(t, checkHotkey("ctrl+").Pass)
}

func TestCheckFormatterCredential(t *testing.T) {
	check := checkFormatterCredential(config.FormatterConfig{Enable: false})
	require.True(t, check.Pass)

	check = checkFormatterCredential(config.FormatterConfig{
		Enable:    true,
		APIKeyEnv: "MURMUR_TEST_DOCTOR_KEY_UNSET",
	})
	require.False(t, check.Pass)

	t.Setenv("MURMUR_TEST_DOCTOR_KEY", "secret")
	check = checkFormatterCredential(config.FormatterConfig{
		Enable:    true,
		APIKeyEnv: "MURMUR_TEST_DOCTOR_KEY",
		Model:     "gpt-4o-mini",
	})
	require.True(t, check.Pass)
}

func TestCheckSpeechEndpointEmptyURL(t *testing.T) {
	check := checkSpeechEndpoint(config.SpeechConfig{})
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "speech_base_url is empty")
}

func TestCheckSpeechEndpointUnreachable(t *testing.T) {
	check := checkSpeechEndpoint(config.SpeechConfig{BaseURL: "http://127.0.0.1:1/v1"})
	require.False(t, check.Pass)
	require.Contains(t, check.Message, "request failed")
}
