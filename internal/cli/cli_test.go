package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDefaultsToRun(t *testing.T) {
	parsed, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, CommandRun, parsed.Command)
	require.False(t, parsed.ShowHelp)
	require.Empty(t, parsed.ConfigPath)
}

func TestParseCommands(t *testing.T) {
	for _, cmd := range []Command{CommandRun, CommandDevices, CommandDoctor, CommandVersion} {
		parsed, err := Parse([]string{string(cmd)})
		require.NoError(t, err)
		require.Equal(t, cmd, parsed.Command)
	}
}

func TestParseHelp(t *testing.T) {
	for _, args := range [][]string{{"-h"}, {"--help"}, {"help"}} {
		parsed, err := Parse(args)
		require.NoError(t, err)
		require.True(t, parsed.ShowHelp)
	}
}

func TestParseVersionFlag(t *testing.T) {
	parsed, err := Parse([]string{"--version"})
	require.NoError(t, err)
	require.Equal(t, CommandVersion, parsed.Command)
}

func TestParseListDevicesAlias(t *testing.T) {
	parsed, err := Parse([]string{"--list-devices"})
	require.NoError(t, err)
	require.Equal(t, CommandDevices, parsed.Command)
}

func TestParseConfigFlag(t *testing.T) {
	parsed, err := Parse([]string{"--config", "/tmp/murmur.json", "doctor"})
	require.NoError(t, err)
	require.Equal(t, CommandDoctor, parsed.Command)
	require.Equal(t, "/tmp/murmur.json", parsed.ConfigPath)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "config without path", args: []string{"--config"}},
		{name: "unknown flag", args: []string{"--verbose"}},
		{name: "unknown command", args: []string{"transmogrify"}},
		{name: "arguments after command", args: []string{"doctor", "extra"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.args)
			require.Error(t, err)
		})
	}
}

func TestHelpTextMentionsCommands(t *testing.T) {
	help := HelpText("murmur")
	require.Contains(t, help, "murmur [--config PATH]")
	require.Contains(t, help, "devices")
	require.Contains(t, help, "doctor")
	require.Contains(t, help, "--list-devices")
}
