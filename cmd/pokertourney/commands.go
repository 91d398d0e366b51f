package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/pokertourney/internal/fileutil"
	"github.com/lox/pokertourney/internal/tournament"
	"github.com/lox/pokertourney/sdk"
)

// TournamentFlags override the config file.
type TournamentFlags struct {
	Config    string   `short:"c" help:"HCL tournament file" default:"tournament.hcl" type:"path"`
	Seats     []string `help:"Comma-separated agent names, one per seat (replaces the file's seats)"`
	Seed      *int64   `help:"Shuffle seed for reproducible tournaments"`
	MaxHands  *int     `help:"Stop after this many hands (0 for no limit)"`
	InProcess bool     `help:"Run agents in-process instead of sandboxed"`
	Output    string   `short:"o" help:"Also write the result as JSON to this file" type:"path"`
}

func (f *TournamentFlags) load() (*tournament.Config, error) {
	cfg, err := tournament.LoadConfig(f.Config)
	if err != nil {
		return nil, err
	}
	if len(f.Seats) > 0 {
		cfg.UseAgents(f.Seats)
	}
	if f.Seed != nil {
		cfg.Seed = f.Seed
	}
	if f.MaxHands != nil {
		cfg.MaxHands = *f.MaxHands
	}
	if f.InProcess {
		cfg.Sandbox.Disabled = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (f *TournamentFlags) write(v any) error {
	if f.Output == "" {
		return nil
	}
	return fileutil.WriteJSON(f.Output, v)
}

type RunCmd struct {
	TournamentFlags `embed:""`
}

func (c *RunCmd) Run(ctx context.Context, logger *log.Logger) error {
	cfg, err := c.load()
	if err != nil {
		return err
	}
	result, err := tournament.Run(ctx, cfg, tournament.WithLogger(logger))
	if err != nil {
		return err
	}
	fmt.Println(renderStandings(result))
	return c.write(result)
}

type BatchCmd struct {
	TournamentFlags `embed:""`
	Runs     int `short:"n" help:"Number of tournaments" default:"100"`
	Parallel int `short:"p" help:"Tournaments to run at once (0 for one per CPU)" default:"0"`
}

func (c *BatchCmd) Run(ctx context.Context, logger *log.Logger) error {
	cfg, err := c.load()
	if err != nil {
		return err
	}
	// Per-tournament logs drown out the summary.
	quiet := logger.With()
	if logger.GetLevel() < log.WarnLevel {
		quiet.SetLevel(log.WarnLevel)
	}
	batch, err := tournament.RunBatch(ctx, cfg, c.Runs, c.Parallel, tournament.WithLogger(quiet))
	if err != nil {
		return err
	}
	fmt.Println(renderBatch(batch))
	return c.write(batch)
}

type AgentsCmd struct{}

func (c *AgentsCmd) Run() error {
	fmt.Println(strings.Join(sdk.Agents(), "\n"))
	return nil
}
