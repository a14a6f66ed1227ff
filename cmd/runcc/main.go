// Command runcc runs several commands concurrently, tagging each line
// of their combined output with a label, and tears the whole group
// down according to a configurable kill policy whenever one command
// exits or the process receives an interrupt.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/edirooss/runcc/internal/cli"
	"github.com/edirooss/runcc/internal/cmdbuild"
	"github.com/edirooss/runcc/internal/fleet"
	"github.com/edirooss/runcc/internal/plugin"
)

func main() {
	os.Exit(run())
}

func run() int {
	log := newLogger()
	defer log.Sync()

	// cargo subcommand invocation passes the subcommand name itself as
	// argv[1] (as in "cargo runcc ..."); strip it the same way the
	// original does so both invocation styles work.
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "runcc" {
		args = args[1:]
	}

	var exitCode int
	root := cli.NewRootCmd(func(opts cli.Options) error {
		exitCode = runFleet(log, opts)
		return nil
	})
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "runcc:", err)
		return 1
	}
	return exitCode
}

func runFleet(log *zap.Logger, opts cli.Options) int {
	cfg, err := opts.Resolve()
	if err != nil {
		fmt.Fprintln(os.Stderr, "runcc:", err)
		return 1
	}

	cmds := make([]fleet.Command, len(cfg.Commands))
	for i, d := range cfg.Commands {
		cmd, lbl := cmdbuild.Build(d, cmdbuild.Options{
			TopLevelEnvs:     cfg.Envs,
			MaxLabelLength:   cfg.MaxLabelLength,
			WindowsScriptEnv: cfg.WindowsScriptEnv,
		})
		cmds[i] = fleet.Command{Cmd: cmd, Label: lbl}
	}

	tee := plugin.NewTeePlugin(log)
	f := fleet.Spawn(cmds, cfg.Kill, tee)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	waitDone := make(chan fleet.Report, 1)
	go func() { waitDone <- f.Wait() }()

	var report fleet.Report
	select {
	case <-ctx.Done():
		f.ShareKiller().KillAll()
		report = <-waitDone
	case report = <-waitDone:
	}

	failed := report.Total - report.Successful
	if failed == 0 {
		return 0
	}
	return 2
}

func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.TimeKey = ""
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true

	if !isatty.IsTerminal(os.Stderr.Fd()) {
		cfg = zap.NewProductionConfig()
		cfg.DisableStacktrace = true
	}

	log := zap.Must(cfg.Build())
	return log.Named("runcc")
}
