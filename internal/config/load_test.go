package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaultsWithWarning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	loaded, err := Load(path)
	require.NoError(t, err)
	require.False(t, loaded.Exists)
	require.Equal(t, path, loaded.Path)
	require.Equal(t, Default(), loaded.Config)
	require.Len(t, loaded.Warnings, 1)
	require.Contains(t, loaded.Warnings[0].Message, "not found")
}

func TestLoadMalformedFileUsesDefaultsWithWarning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.True(t, loaded.Exists)
	require.Equal(t, Default(), loaded.Config)
	require.Len(t, loaded.Warnings, 1)
	require.Contains(t, loaded.Warnings[0].Message, "malformed")
}

func TestLoadValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"hotkey": "alt+d"}`), 0o600))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.True(t, loaded.Exists)
	require.Empty(t, loaded.Warnings)
	require.Equal(t, "alt+d", loaded.Config.Hotkey.Combo)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.json")

	cfg := Default()
	cfg.Hotkey.Combo = "meta+d"
	cfg.Speech.Model = "whisper-large-v3"
	cfg.Formatter.EmailTone = 4
	cfg.Text.BulletMode = true

	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Empty(t, loaded.Warnings)
	require.Equal(t, cfg, loaded.Config)
}

func TestResolvePathPrefersExplicit(t *testing.T) {
	path, err := ResolvePath("/tmp/custom.json")
	require.NoError(t, err)
	require.Equal(t, "/tmp/custom.json", path)
}

func TestResolvePathUsesXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := ResolvePath("")
	require.NoError(t, err)
	require.Equal(t, "/tmp/xdg/murmur/config.json", path)
}

func TestResolveDictionaryPath(t *testing.T) {
	cfg := Default()
	require.Equal(t, "/etc/murmur/dictionary.json", ResolveDictionaryPath(cfg, "/etc/murmur/config.json"))

	cfg.Dictionary.Path = "/data/words.json"
	require.Equal(t, "/data/words.json", ResolveDictionaryPath(cfg, "/etc/murmur/config.json"))
}

func TestAPIKey(t *testing.T) {
	t.Setenv("MURMUR_TEST_KEY", "  secret  ")
	require.Equal(t, "secret", APIKey("MURMUR_TEST_KEY"))
	require.Empty(t, APIKey(""))
	require.Empty(t, APIKey("MURMUR_TEST_KEY_UNSET"))
}
