package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/pokertourney/internal/sandbox"
	_ "github.com/lox/pokertourney/sdk/bots"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	LogLevel string           `help:"Log level (debug, info, warn, error)" default:"info" enum:"debug,info,warn,error"`

	Run    RunCmd    `cmd:"" help:"Play one tournament"`
	Batch  BatchCmd  `cmd:"" help:"Play many tournaments over consecutive seeds"`
	Agents AgentsCmd `cmd:"" help:"List registered agents"`
}

func main() {
	// Sandbox workers are this binary re-executed; they must not parse flags.
	if sandbox.IsWorker() {
		os.Exit(sandbox.RunWorker())
	}

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("pokertourney"),
		kong.Description("No-limit hold'em tournaments between sandboxed agents"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	level, err := log.ParseLevel(cli.LogLevel)
	kctx.FatalIfErrorf(err)
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kctx.BindTo(ctx, (*context.Context)(nil))
	err = kctx.Run(logger)
	kctx.FatalIfErrorf(err)
}
