package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseArgv(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty", input: "", want: nil},
		{name: "whitespace only", input: "   ", want: nil},
		{name: "comment", input: "# disabled", want: nil},
		{name: "simple", input: "wl-copy --trim-newline", want: []string{"wl-copy", "--trim-newline"}},
		{name: "extra spaces", input: "  wtype   -k   Right ", want: []string{"wtype", "-k", "Right"}},
		{name: "double quotes", input: `notify-send "hello world"`, want: []string{"notify-send", "hello world"}},
		{name: "single quotes", input: `sh -c 'echo hi'`, want: []string{"sh", "-c", "echo hi"}},
		{name: "escaped space", input: `run a\ b`, want: []string{"run", "a b"}},
		{name: "escaped quote", input: `echo \"x`, want: []string{"echo", `"x`}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			argv, err := parseArgv(tc.input)
			require.NoError(t, err)
			require.Equal(t, tc.want, argv)
		})
	}
}

func TestParseArgvErrors(t *testing.T) {
	_, err := parseArgv(`echo "unterminated`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unterminated quote")

	_, err = parseArgv(`echo trailing\`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unterminated escape")
}
