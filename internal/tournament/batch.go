package tournament

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lox/pokertourney/internal/randutil"
	"github.com/lox/pokertourney/internal/statistics"
)

// BatchResult aggregates many tournaments over consecutive seeds.
type BatchResult struct {
	BaseSeed int64
	Results  []*Result
	Agents   statistics.ByAgent
	Elapsed  time.Duration
}

// RunBatch plays runs tournaments on seeds base, base+1, ... with at most
// parallel running at once. The base seed is cfg.Seed, or entropy.
func RunBatch(ctx context.Context, cfg *Config, runs, parallel int, opts ...Option) (*BatchResult, error) {
	if runs <= 0 {
		return nil, fmt.Errorf("%w: runs must be positive", ErrInvalidConfig)
	}
	if parallel <= 0 {
		parallel = runtime.NumCPU()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := buildOptions(opts)

	base := randutil.Entropy()
	if cfg.Seed != nil {
		base = *cfg.Seed
	}

	start := o.clock.Now()
	results := make([]*Result, runs)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i := 0; i < runs; i++ {
		run := cfg.Clone()
		seed := base + int64(i)
		run.Seed = &seed
		g.Go(func() error {
			r, err := Run(ctx, run, opts...)
			if err != nil {
				return fmt.Errorf("run %d (seed %d): %w", i, seed, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch := &BatchResult{
		BaseSeed: base,
		Results:  results,
		Agents:   statistics.ByAgent{},
		Elapsed:  o.clock.Since(start),
	}
	for _, r := range results {
		for _, s := range r.Standings {
			batch.Agents.Add(s.Agent, statistics.Placement{
				Place:       s.Place,
				Seats:       len(r.Standings),
				Stack:       s.Stack,
				BustedRound: s.BustedRound,
				Hands:       r.Hands,
				Seed:        r.Seed,
			})
		}
	}
	for name, stats := range batch.Agents {
		if err := stats.Validate(); err != nil {
			return nil, fmt.Errorf("statistics for %s: %w", name, err)
		}
	}

	o.logger.WithPrefix("batch").Info("batch complete",
		"runs", runs,
		"base_seed", base,
		"elapsed", batch.Elapsed,
	)
	return batch, nil
}
