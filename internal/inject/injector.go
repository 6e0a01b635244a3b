// Package inject applies transcript commit side effects (clipboard and paste)
// and probes the text preceding the cursor for spacing decisions.
package inject

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/murmurapp/murmur/internal/config"
)

const (
	clipboardTimeout = 2 * time.Second
	pasteTimeout     = 2 * time.Second
	probeStepTimeout = time.Second

	// pasteSettleDelay lets the compositor observe the clipboard write
	// before the paste shortcut is dispatched.
	pasteSettleDelay = 100 * time.Millisecond

	// probeSettleDelay lets the copy command land in the clipboard before
	// it is read back.
	probeSettleDelay = 60 * time.Millisecond
)

// runFunc executes argv with optional stdin and returns captured stdout.
// Swappable in tests.
type runFunc func(ctx context.Context, argv []string, stdin string) (string, error)

// Injector delivers formatted text into the focused application via
// clipboard-and-paste, and optionally reads back the characters before
// the cursor so spacing can adapt to surrounding text.
type Injector struct {
	clipboard []string
	paste     []string
	probe     config.ProbeConfig
	logger    *slog.Logger
	run       runFunc
}

// NewInjector constructs an injector from runtime config.
func NewInjector(cfg config.Config, logger *slog.Logger) *Injector {
	return &Injector{
		clipboard: cfg.Clipboard.Argv,
		paste:     cfg.Paste.Argv,
		probe:     cfg.Probe,
		logger:    logger,
		run:       runCommand,
	}
}

// Inject writes text to the clipboard and dispatches the paste shortcut.
// Empty text is a no-op. A failed paste leaves the clipboard set and is
// reported through the log, not the error return.
func (i *Injector) Inject(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}

	clipboardCtx, cancel := context.WithTimeout(ctx, clipboardTimeout)
	defer cancel()
	if _, err := i.run(clipboardCtx, i.clipboard, text); err != nil {
		return fmt.Errorf("set clipboard: %w", err)
	}

	if len(i.paste) == 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(pasteSettleDelay):
	}

	pasteCtx, pasteCancel := context.WithTimeout(ctx, pasteTimeout)
	defer pasteCancel()
	if _, err := i.run(pasteCtx, i.paste, ""); err != nil {
		if i.logger != nil {
			i.logger.Error("paste dispatch failed; clipboard remains set", "error", err.Error())
		}
	}
	return nil
}

// ProbeContext samples the text immediately before the cursor: select
// backwards, copy, read the clipboard, then restore cursor position and the
// saved clipboard. Any failure aborts with ok=false after best-effort
// restoration; dictation proceeds without context.
func (i *Injector) ProbeContext(ctx context.Context) (string, bool) {
	if !i.probe.Enable {
		return "", false
	}
	if len(i.probe.Select.Argv) == 0 || len(i.probe.Copy.Argv) == 0 || len(i.probe.Read.Argv) == 0 {
		return "", false
	}

	saved, savedOK := i.step(ctx, i.probe.Read.Argv, "")

	if _, ok := i.step(ctx, i.probe.Select.Argv, ""); !ok {
		i.restore(ctx, saved, savedOK)
		return "", false
	}
	if _, ok := i.step(ctx, i.probe.Copy.Argv, ""); !ok {
		i.restore(ctx, saved, savedOK)
		return "", false
	}

	select {
	case <-ctx.Done():
		i.restore(ctx, saved, savedOK)
		return "", false
	case <-time.After(probeSettleDelay):
	}

	preceding, ok := i.step(ctx, i.probe.Read.Argv, "")
	i.restore(ctx, saved, savedOK)
	if !ok {
		return "", false
	}
	return preceding, true
}

// restore undoes probe side effects: collapses the selection back to the
// cursor and rewrites the saved clipboard contents.
func (i *Injector) restore(ctx context.Context, saved string, savedOK bool) {
	if len(i.probe.Restore.Argv) > 0 {
		if _, ok := i.step(ctx, i.probe.Restore.Argv, ""); !ok && i.logger != nil {
			i.logger.Warn("context probe cursor restore failed")
		}
	}
	if savedOK && saved != "" && len(i.clipboard) > 0 {
		if _, err := i.run(ctx, i.clipboard, saved); err != nil && i.logger != nil {
			i.logger.Warn("context probe clipboard restore failed", "error", err.Error())
		}
	}
}

// step runs one probe command with a short timeout, logging failures.
func (i *Injector) step(ctx context.Context, argv []string, stdin string) (string, bool) {
	stepCtx, cancel := context.WithTimeout(ctx, probeStepTimeout)
	defer cancel()

	out, err := i.run(stepCtx, argv, stdin)
	if err != nil {
		if i.logger != nil {
			i.logger.Debug("context probe step failed", "command", argv[0], "error", err.Error())
		}
		return "", false
	}
	return out, true
}

// runCommand executes argv, optionally writing input to stdin, and returns
// captured stdout.
func runCommand(ctx context.Context, argv []string, input string) (string, error) {
	if len(argv) == 0 {
		return "", fmt.Errorf("command argv cannot be empty")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stdout strings.Builder
	cmd.Stdout = &stdout

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return "", fmt.Errorf("open stdin for %s: %w", argv[0], err)
	}

	if err := cmd.Start(); err != nil {
		_ = stdin.Close()
		return "", fmt.Errorf("start command %s: %w", argv[0], err)
	}

	if input != "" {
		if _, err := stdin.Write([]byte(input)); err != nil {
			_ = stdin.Close()
			_ = cmd.Wait()
			return "", fmt.Errorf("write stdin for %s: %w", argv[0], err)
		}
	}
	_ = stdin.Close()

	if err := cmd.Wait(); err != nil {
		return "", fmt.Errorf("wait for %s: %w", argv[0], err)
	}
	return stdout.String(), nil
}
