// Package app wires CLI parsing, configuration, and the dictation runtime.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/murmurapp/murmur/internal/audio"
	"github.com/murmurapp/murmur/internal/cli"
	"github.com/murmurapp/murmur/internal/config"
	"github.com/murmurapp/murmur/internal/coordinator"
	"github.com/murmurapp/murmur/internal/dictionary"
	"github.com/murmurapp/murmur/internal/doctor"
	"github.com/murmurapp/murmur/internal/indicator"
	"github.com/murmurapp/murmur/internal/logging"
	"github.com/murmurapp/murmur/internal/version"
)

type Runner struct {
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	r := Runner{Stdout: stdout, Stderr: stderr}
	return r.Execute(ctx, args)
}

func (r Runner) Execute(ctx context.Context, args []string) int {
	parsed, err := cli.Parse(args)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n\n", err)
		fmt.Fprint(r.Stderr, cli.HelpText("murmur"))
		return 2
	}

	if parsed.ShowHelp {
		fmt.Fprint(r.Stdout, cli.HelpText("murmur"))
		return 0
	}

	if parsed.Command == cli.CommandVersion {
		fmt.Fprintln(r.Stdout, version.String())
		return 0
	}

	logRuntime, err := logging.New()
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: setup logging: %v\n", err)
		return 1
	}
	defer func() { _ = logRuntime.Close() }()

	logger := r.Logger
	if logger == nil {
		logger = logRuntime.Logger
	}

	config.LoadServiceEnv()

	cfgLoaded, err := config.Load(parsed.ConfigPath)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("load config failed", "error", err.Error())
		return 1
	}
	for _, w := range cfgLoaded.Warnings {
		fmt.Fprintf(r.Stderr, "warning: %s\n", w.Message)
		logger.Warn("config warning", "message", w.Message)
	}

	logger.Info("command start",
		"command", parsed.Command,
		"config", cfgLoaded.Path,
		"log", logRuntime.Path,
	)

	switch parsed.Command {
	case cli.CommandDoctor:
		report := doctor.Run(ctx, cfgLoaded)
		fmt.Fprintln(r.Stdout, report.String())
		if report.OK() {
			return 0
		}
		return 1
	case cli.CommandDevices:
		return r.commandDevices(ctx)
	case cli.CommandRun:
		return r.commandRun(ctx, cfgLoaded, logger)
	default:
		fmt.Fprintf(r.Stderr, "error: unsupported command %q\n", parsed.Command)
		return 2
	}
}

func (r Runner) commandDevices(ctx context.Context) int {
	devices, err := audio.ListDevices(ctx)
	if err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		return 1
	}
	if len(devices) == 0 {
		fmt.Fprintln(r.Stdout, "no audio devices found")
		return 1
	}

	for _, device := range devices {
		defaultMark := " "
		if device.Default {
			defaultMark = "*"
		}
		fmt.Fprintf(
			r.Stdout,
			"%s [%d] %s | channels=%d | rate=%d\n",
			defaultMark,
			device.Index,
			audio.DescribeDevice(device),
			device.Channels,
			device.SampleRate,
		)
	}

	return 0
}

// commandRun starts the dictation daemon and blocks until the context ends.
func (r Runner) commandRun(ctx context.Context, loaded config.Loaded, logger *slog.Logger) int {
	dict := dictionary.NewStore(config.ResolveDictionaryPath(loaded.Config, loaded.Path))
	if err := dict.Load(); err != nil {
		logger.Warn("dictionary load failed; continuing without hints", "error", err.Error())
	}

	observers := []coordinator.Observer{newLogObserver(logger)}
	if loaded.Config.Indicator.Enable {
		observers = append(observers, indicator.NewDesktop(loaded.Config.Indicator, logger))
	}

	coord := coordinator.New(loaded.Config, dict, logger, coordinator.DefaultFactories(), observers...)
	if err := coord.Start(ctx); err != nil {
		fmt.Fprintf(r.Stderr, "error: %v\n", err)
		logger.Error("startup failed", "error", err.Error())
		return 1
	}

	fmt.Fprintf(r.Stdout, "murmur ready (hotkey: %s)\n", loaded.Config.Hotkey.Combo)

	<-ctx.Done()

	coord.Shutdown()
	logger.Info("shutdown complete")
	return 0
}
