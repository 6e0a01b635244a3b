package inject

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/murmurapp/murmur/internal/config"
)

type call struct {
	argv  []string
	stdin string
}

// fakeRunner records command invocations and serves scripted results keyed
// by the command binary name.
type fakeRunner struct {
	calls   []call
	outputs map[string][]string
	fail    map[string]bool
}

func (f *fakeRunner) run(_ context.Context, argv []string, stdin string) (string, error) {
	if len(argv) == 0 {
		return "", errors.New("empty argv")
	}
	f.calls = append(f.calls, call{argv: argv, stdin: stdin})

	bin := argv[0]
	if f.fail[bin] {
		return "", fmt.Errorf("%s failed", bin)
	}
	if queued := f.outputs[bin]; len(queued) > 0 {
		out := queued[0]
		f.outputs[bin] = queued[1:]
		return out, nil
	}
	return "", nil
}

func (f *fakeRunner) binaries() []string {
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.argv[0])
	}
	return out
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Clipboard = config.CommandConfig{Raw: "wl-copy", Argv: []string{"wl-copy"}}
	cfg.Paste = config.CommandConfig{Raw: "wtype-paste", Argv: []string{"wtype-paste"}}
	cfg.Probe = config.ProbeConfig{
		Enable:  true,
		Select:  config.CommandConfig{Raw: "probe-select", Argv: []string{"probe-select"}},
		Copy:    config.CommandConfig{Raw: "probe-copy", Argv: []string{"probe-copy"}},
		Read:    config.CommandConfig{Raw: "probe-read", Argv: []string{"probe-read"}},
		Restore: config.CommandConfig{Raw: "probe-restore", Argv: []string{"probe-restore"}},
	}
	return cfg
}

func newTestInjector(runner *fakeRunner) *Injector {
	inj := NewInjector(testConfig(), nil)
	inj.run = runner.run
	return inj
}

func TestInjectWritesClipboardThenPastes(t *testing.T) {
	runner := &fakeRunner{}
	inj := newTestInjector(runner)

	require.NoError(t, inj.Inject(context.Background(), "hello world"))

	require.Equal(t, []string{"wl-copy", "wtype-paste"}, runner.binaries())
	require.Equal(t, "hello world", runner.calls[0].stdin)
	require.Empty(t, runner.calls[1].stdin)
}

func TestInjectEmptyTextIsNoOp(t *testing.T) {
	runner := &fakeRunner{}
	inj := newTestInjector(runner)

	require.NoError(t, inj.Inject(context.Background(), ""))
	require.Empty(t, runner.calls)
}

func TestInjectClipboardFailureReturnsError(t *testing.T) {
	runner := &fakeRunner{fail: map[string]bool{"wl-copy": true}}
	inj := newTestInjector(runner)

	err := inj.Inject(context.Background(), "hello")
	require.Error(t, err)
	require.Contains(t, err.Error(), "set clipboard")
	require.Equal(t, []string{"wl-copy"}, runner.binaries())
}

func TestInjectPasteFailureLeavesClipboardAndReturnsNil(t *testing.T) {
	runner := &fakeRunner{fail: map[string]bool{"wtype-paste": true}}
	inj := newTestInjector(runner)

	require.NoError(t, inj.Inject(context.Background(), "hello"))
	require.Equal(t, []string{"wl-copy", "wtype-paste"}, runner.binaries())
}

func TestInjectWithoutPasteCommandStopsAtClipboard(t *testing.T) {
	runner := &fakeRunner{}
	cfg := testConfig()
	cfg.Paste = config.CommandConfig{}
	inj := NewInjector(cfg, nil)
	inj.run = runner.run

	require.NoError(t, inj.Inject(context.Background(), "hello"))
	require.Equal(t, []string{"wl-copy"}, runner.binaries())
}

func TestProbeContextHappyPath(t *testing.T) {
	runner := &fakeRunner{outputs: map[string][]string{
		"probe-read": {"saved clipboard", "text before cursor"},
	}}
	inj := newTestInjector(runner)

	preceding, ok := inj.ProbeContext(context.Background())
	require.True(t, ok)
	require.Equal(t, "text before cursor", preceding)

	require.Equal(t, []string{
		"probe-read",    // save clipboard
		"probe-select",  // select back
		"probe-copy",    // copy selection
		"probe-read",    // read selection
		"probe-restore", // restore cursor
		"wl-copy",       // restore clipboard
	}, runner.binaries())
	require.Equal(t, "saved clipboard", runner.calls[5].stdin)
}

func TestProbeContextDisabled(t *testing.T) {
	runner := &fakeRunner{}
	cfg := testConfig()
	cfg.Probe.Enable = false
	inj := NewInjector(cfg, nil)
	inj.run = runner.run

	_, ok := inj.ProbeContext(context.Background())
	require.False(t, ok)
	require.Empty(t, runner.calls)
}

func TestProbeContextSelectFailureRestores(t *testing.T) {
	runner := &fakeRunner{
		outputs: map[string][]string{"probe-read": {"saved"}},
		fail:    map[string]bool{"probe-select": true},
	}
	inj := newTestInjector(runner)

	_, ok := inj.ProbeContext(context.Background())
	require.False(t, ok)
	require.Equal(t, []string{"probe-read", "probe-select", "probe-restore", "wl-copy"}, runner.binaries())
	require.Equal(t, "saved", runner.calls[3].stdin)
}

func TestProbeContextReadFailureRestores(t *testing.T) {
	runner := &fakeRunner{fail: map[string]bool{"probe-read": true}}
	inj := newTestInjector(runner)

	_, ok := inj.ProbeContext(context.Background())
	require.False(t, ok)
	// The initial clipboard save failed, so only the cursor is restored.
	require.Equal(t, []string{"probe-read", "probe-select", "probe-copy", "probe-read", "probe-restore"}, runner.binaries())
}

func TestProbeContextMissingCommands(t *testing.T) {
	runner := &fakeRunner{}
	cfg := testConfig()
	cfg.Probe.Copy = config.CommandConfig{}
	inj := NewInjector(cfg, nil)
	inj.run = runner.run

	_, ok := inj.ProbeContext(context.Background())
	require.False(t, ok)
	require.Empty(t, runner.calls)
}
