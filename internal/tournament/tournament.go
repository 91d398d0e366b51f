package tournament

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/lox/pokertourney/internal/game"
	"github.com/lox/pokertourney/internal/randutil"
	"github.com/lox/pokertourney/internal/sandbox"
	"github.com/lox/pokertourney/sdk"
)

// Standing is one seat's final position.
type Standing struct {
	Place       int    `json:"place"`
	Seat        int    `json:"seat"`
	Name        string `json:"name"`
	Agent       string `json:"agent"`
	Stack       int    `json:"stack"`
	BustedRound int    `json:"busted_round,omitempty"`
}

// Result is the outcome of one tournament.
type Result struct {
	ID        uuid.UUID             `json:"id"`
	Seed      int64                 `json:"seed"`
	Hands     int                   `json:"hands"`
	Completed bool                  `json:"completed"` // one seat holds every chip
	Elapsed   time.Duration         `json:"elapsed"`
	Standings []Standing            `json:"standings"`
	Sandbox   map[int]sandbox.Stats `json:"sandbox,omitempty"`
}

// Winner returns the first-place standing.
func (r *Result) Winner() Standing {
	return r.Standings[0]
}

// Option configures Run.
type Option func(*options)

type options struct {
	logger  *log.Logger
	clock   quartz.Clock
	command string
	args    []string
	onHand  func(*game.HandResult)
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithClock sets the clock used for timing and sandbox deadlines.
func WithClock(clock quartz.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithWorkerCommand overrides the sandbox worker executable.
func WithWorkerCommand(path string, args ...string) Option {
	return func(o *options) {
		o.command = path
		o.args = args
	}
}

// WithHandObserver is called after every hand.
func WithHandObserver(fn func(*game.HandResult)) Option {
	return func(o *options) { o.onHand = fn }
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	if o.clock == nil {
		o.clock = quartz.NewReal()
	}
	return o
}

// Run plays hands until one seat holds every chip or MaxHands is reached.
func Run(ctx context.Context, cfg *Config, opts ...Option) (*Result, error) {
	cfg = cfg.Clone()
	cfg.fillSandbox()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := buildOptions(opts)

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("tournament id: %w", err)
	}
	seed := randutil.Entropy()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	logger := o.logger.WithPrefix("tournament").With("id", id.String()[:8])

	deciders, sandboxes, err := buildDeciders(cfg, seed, o)
	if err != nil {
		return nil, err
	}
	defer closeAll(sandboxes, logger)

	table, err := game.New(deciders, cfg.StartingStack, cfg.Schedule(),
		game.WithSeed(seed),
		game.WithLogger(o.logger),
	)
	if err != nil {
		return nil, err
	}

	start := o.clock.Now()
	logger.Info("tournament started", "seats", len(cfg.Seats), "seed", seed, "stack", cfg.StartingStack)

	busted := make([]int, len(cfg.Seats))
	hands := 0
	for !table.Finished() && (cfg.MaxHands == 0 || hands < cfg.MaxHands) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		hand, err := table.PlayHand(ctx)
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", table.Round(), err)
		}
		hands++
		if err := table.VerifyChips(); err != nil {
			return nil, fmt.Errorf("after hand %d: %w", hand.Round, err)
		}
		for _, seat := range hand.Eliminated {
			busted[seat] = hand.Round
		}
		logger.Debug("hand complete",
			"round", hand.Round,
			"pot", hand.TotalPot,
			"street", hand.FinalStreet,
			"showdown", hand.Showdown,
		)
		if o.onHand != nil {
			o.onHand(hand)
		}
	}

	result := &Result{
		ID:        id,
		Seed:      seed,
		Hands:     hands,
		Completed: table.Finished(),
		Elapsed:   o.clock.Since(start),
		Standings: standings(cfg, table.Players(), busted),
	}
	if len(sandboxes) > 0 {
		result.Sandbox = make(map[int]sandbox.Stats, len(sandboxes))
		for seat, sb := range sandboxes {
			stats := sb.Stats()
			result.Sandbox[seat] = stats
			logger.Info("sandbox stats",
				"seat", seat,
				"agent", sb.Agent(),
				"calls", stats.Calls,
				"faults", stats.Faults(),
				"restarts", stats.Restarts,
			)
		}
	}

	w := result.Winner()
	logger.Info("tournament complete",
		"hands", hands,
		"winner", w.Name,
		"stack", w.Stack,
		"elapsed", result.Elapsed,
	)
	return result, nil
}

func buildDeciders(cfg *Config, seed int64, o options) ([]game.Decider, map[int]*sandbox.Sandbox, error) {
	deciders := make([]game.Decider, len(cfg.Seats))
	sandboxes := map[int]*sandbox.Sandbox{}

	limits, err := cfg.Sandbox.Limits()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	for i, seat := range cfg.Seats {
		// Negative indices keep agent seeds apart from per-hand deck seeds.
		agentSeed := randutil.Derive(seed, -1-i)

		if cfg.Sandbox.Disabled {
			factory, err := sdk.Lookup(seat.Agent)
			if err != nil {
				return nil, nil, err
			}
			agent := factory(sdk.AgentConfig{Seat: i, Seed: agentSeed})
			deciders[i] = game.Local(agent, o.logger.With("seat", i))
			continue
		}

		sbOpts := []sandbox.Option{
			sandbox.WithLimits(limits),
			sandbox.WithClock(o.clock),
			sandbox.WithLogger(o.logger),
			sandbox.WithSeed(agentSeed),
		}
		if o.command != "" {
			sbOpts = append(sbOpts, sandbox.WithCommand(o.command, o.args...))
		}
		sb, err := sandbox.New(seat.Agent, i, sbOpts...)
		if err != nil {
			closeAll(sandboxes, o.logger)
			return nil, nil, fmt.Errorf("seat %s: %w", seat.Name, err)
		}
		sandboxes[i] = sb
		deciders[i] = sb
	}
	return deciders, sandboxes, nil
}

func closeAll(sandboxes map[int]*sandbox.Sandbox, logger *log.Logger) {
	var g errgroup.Group
	for _, sb := range sandboxes {
		g.Go(sb.Close)
	}
	if err := g.Wait(); err != nil {
		logger.Warn("closing sandboxes", "error", err)
	}
}

// standings ranks seats by stack, then by how late they busted, then by seat.
func standings(cfg *Config, players []sdk.PlayerPublicInfo, busted []int) []Standing {
	out := make([]Standing, len(players))
	for i, p := range players {
		out[i] = Standing{
			Seat:        p.Seat,
			Name:        cfg.Seats[i].Name,
			Agent:       cfg.Seats[i].Agent,
			Stack:       p.Stack,
			BustedRound: busted[i],
		}
	}
	survived := func(s Standing) int {
		if s.BustedRound == 0 {
			return math.MaxInt
		}
		return s.BustedRound
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Stack != b.Stack {
			return a.Stack > b.Stack
		}
		if survived(a) != survived(b) {
			return survived(a) > survived(b)
		}
		return a.Seat < b.Seat
	})
	for i := range out {
		out[i].Place = i + 1
	}
	return out
}
