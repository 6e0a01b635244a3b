package hotkey

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSpecBasicCombo(t *testing.T) {
	spec, err := ParseSpec("ctrl+shift+space")
	require.NoError(t, err)
	require.Equal(t, []string{"ctrl", "shift"}, spec.Modifiers)
	require.Equal(t, "space", spec.Trigger)
	require.Equal(t, "ctrl+shift+space", spec.String())
}

func TestParseSpecBareTrigger(t *testing.T) {
	spec, err := ParseSpec("f9")
	require.NoError(t, err)
	require.Empty(t, spec.Modifiers)
	require.Equal(t, "f9", spec.Trigger)
	require.Equal(t, "f9", spec.String())
}

func TestParseSpecNormalizesCaseAndWhitespace(t *testing.T) {
	spec, err := ParseSpec("  Ctrl + Shift + Space  ")
	require.NoError(t, err)
	require.Equal(t, []string{"ctrl", "shift"}, spec.Modifiers)
	require.Equal(t, "space", spec.Trigger)
}

func TestParseSpecCollapsesModifierVariants(t *testing.T) {
	tests := []struct {
		combo string
		mods  []string
	}{
		{combo: "lctrl+space", mods: []string{"ctrl"}},
		{combo: "right shift+space", mods: []string{"shift"}},
		{combo: "super+space", mods: []string{"meta"}},
		{combo: "cmd+space", mods: []string{"meta"}},
	}
	for _, tc := range tests {
		spec, err := ParseSpec(tc.combo)
		require.NoError(t, err, tc.combo)
		require.Equal(t, tc.mods, spec.Modifiers, tc.combo)
	}
}

func TestParseSpecRejectsInvalidCombos(t *testing.T) {
	tests := []struct {
		name  string
		combo string
	}{
		{name: "empty", combo: ""},
		{name: "whitespace only", combo: "   "},
		{name: "empty part", combo: "ctrl++space"},
		{name: "trigger is modifier", combo: "ctrl+shift"},
		{name: "modifier is not a modifier", combo: "space+a"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSpec(tc.combo)
			require.Error(t, err)
		})
	}
}

func TestNormalizeKey(t *testing.T) {
	require.Equal(t, "ctrl", NormalizeKey("Left Ctrl"))
	require.Equal(t, "meta", NormalizeKey("WIN"))
	require.Equal(t, "space", NormalizeKey(" Space "))
	require.Equal(t, "a", NormalizeKey("A"))
}

func TestIsModifier(t *testing.T) {
	require.True(t, IsModifier("ctrl"))
	require.True(t, IsModifier("rshift"))
	require.False(t, IsModifier("space"))
	require.False(t, IsModifier("f9"))
}
