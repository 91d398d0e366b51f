package sandbox

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/pokertourney/poker"
	"github.com/lox/pokertourney/sdk"
)

// Default resource limits.
const (
	DefaultMemoryLimit  = 256 << 20
	DefaultDeadline     = 2 * time.Second
	DefaultPollInterval = 20 * time.Millisecond
)

// Fault names used in logs.
const (
	FaultTimeout       = "timeout"
	FaultMemory        = "memory"
	FaultCrash         = "crash"
	FaultBrokenChannel = "broken_channel"
	FaultCancelled     = "cancelled"
	FaultSpawn         = "spawn"
)

// Limits bounds a single decision. A zero MemoryBytes disables memory polling.
type Limits struct {
	MemoryBytes  uint64
	Deadline     time.Duration
	PollInterval time.Duration
}

// Stats counts decisions and faults over the life of a sandbox.
type Stats struct {
	Calls          int
	Timeouts       int
	MemoryBreaches int
	Crashes        int
	BrokenChannels int
	Cancelled      int
	Restarts       int
	SpawnFailures  int
}

// Faults is the number of calls that ended in a fault.
func (s Stats) Faults() int {
	return s.Timeouts + s.MemoryBreaches + s.Crashes + s.BrokenChannels + s.Cancelled + s.SpawnFailures
}

// Option configures a Sandbox.
type Option func(*config)

type config struct {
	limits  Limits
	clock   quartz.Clock
	logger  *log.Logger
	command string
	args    []string
	seed    int64
}

// WithLimits replaces all resource limits at once.
func WithLimits(l Limits) Option {
	return func(c *config) { c.limits = l }
}

// WithMemoryLimit sets the resident memory ceiling in bytes.
func WithMemoryLimit(bytes uint64) Option {
	return func(c *config) { c.limits.MemoryBytes = bytes }
}

// WithDeadline sets how long a single decision may take.
func WithDeadline(d time.Duration) Option {
	return func(c *config) { c.limits.Deadline = d }
}

// WithPollInterval sets how often worker memory is sampled.
func WithPollInterval(d time.Duration) Option {
	return func(c *config) { c.limits.PollInterval = d }
}

// WithClock sets the clock driving deadlines and memory polls.
func WithClock(clock quartz.Clock) Option {
	return func(c *config) { c.clock = clock }
}

// WithLogger sets the parent logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithCommand overrides the worker executable, which defaults to the
// running binary.
func WithCommand(path string, args ...string) Option {
	return func(c *config) {
		c.command = path
		c.args = args
	}
}

// WithSeed is passed to the agent factory inside the worker.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// Sandbox serves one seat's decisions from an isolated worker process.
// It is safe for concurrent use, but calls are served one at a time.
type Sandbox struct {
	*core
}

type core struct {
	mu     sync.Mutex
	agent  string
	seat   int
	cfg    config
	env    WorkerConfig
	logger *log.Logger
	w      *worker
	nextID uint64
	stats  Stats
	closed bool
}

// New creates a sandbox for the named registered agent. The worker starts
// on the first decision.
func New(agent string, seat int, opts ...Option) (*Sandbox, error) {
	if _, err := sdk.Lookup(agent); err != nil {
		return nil, err
	}

	cfg := config{
		limits: Limits{
			MemoryBytes:  DefaultMemoryLimit,
			Deadline:     DefaultDeadline,
			PollInterval: DefaultPollInterval,
		},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.clock == nil {
		cfg.clock = quartz.NewReal()
	}
	if cfg.logger == nil {
		cfg.logger = log.New(io.Discard)
	}
	if cfg.limits.Deadline <= 0 {
		cfg.limits.Deadline = DefaultDeadline
	}
	if cfg.limits.PollInterval <= 0 {
		cfg.limits.PollInterval = DefaultPollInterval
	}
	if cfg.command == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("locate worker executable: %w", err)
		}
		cfg.command = exe
	}

	c := &core{
		agent:  agent,
		seat:   seat,
		cfg:    cfg,
		env:    WorkerConfig{Agent: agent, Seat: seat, Seed: cfg.seed},
		logger: cfg.logger.WithPrefix("sandbox").With("seat", seat, "agent", agent),
	}
	sb := &Sandbox{core: c}
	runtime.AddCleanup(sb, func(c *core) { c.close() }, c)
	return sb, nil
}

// Agent returns the registered agent name.
func (s *Sandbox) Agent() string { return s.agent }

// Stats returns a copy of the fault counters.
func (s *Sandbox) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Close stops the worker. It is safe to call more than once; decisions
// requested after Close fold.
func (s *Sandbox) Close() error {
	s.close()
	return nil
}

// GetAction asks the worker for a decision. Faults never surface as
// errors: the worker is killed, the next call starts a new one, and this
// call returns a fold for the validator to legalize.
func (c *core) GetAction(ctx context.Context, state sdk.PublicState, hole poker.HoleCards) sdk.Decision {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return sdk.Fold()
	}
	c.stats.Calls++

	if c.w != nil && !c.w.alive() {
		c.w = nil
		c.stats.Restarts++
	}
	if c.w != nil && c.overLimit() {
		c.logger.Warn("worker over memory ceiling before decision, restarting", "fault", FaultMemory)
		c.w.kill()
		c.w = nil
		c.stats.Restarts++
	}
	if c.w == nil {
		w, err := startWorker(c.cfg.command, c.cfg.args, c.env, c.logger)
		if err != nil {
			c.stats.SpawnFailures++
			c.logger.Warn("cannot start worker", "fault", FaultSpawn, "error", err)
			return sdk.Fold()
		}
		c.w = w
	}

	c.nextID++
	id := c.nextID
	if err := c.w.send(request{ID: id, State: state.Clone(), Hole: hole}); err != nil {
		return c.fault(FaultBrokenChannel, err)
	}

	deadline := c.cfg.clock.NewTimer(c.cfg.limits.Deadline, "sandbox", "deadline")
	defer deadline.Stop()

	var poll <-chan time.Time
	if c.cfg.limits.MemoryBytes > 0 {
		ticker := c.cfg.clock.NewTicker(c.cfg.limits.PollInterval, "sandbox", "poll")
		defer ticker.Stop()
		poll = ticker.C
	}

	for {
		select {
		case resp, ok := <-c.w.replies:
			if !ok {
				return c.fault(FaultBrokenChannel, ErrWorkerExited)
			}
			if resp.ID != id {
				continue
			}
			if resp.Crash != "" {
				c.stats.Crashes++
				c.logger.Warn("agent panicked", "fault", FaultCrash, "panic", resp.Crash)
				return sdk.Fold()
			}
			return resp.Decision
		case <-poll:
			if c.overLimit() {
				return c.fault(FaultMemory, nil)
			}
		case <-deadline.C:
			return c.fault(FaultTimeout, nil)
		case <-ctx.Done():
			return c.fault(FaultCancelled, ctx.Err())
		}
	}
}

func (c *core) overLimit() bool {
	if c.cfg.limits.MemoryBytes == 0 {
		return false
	}
	rss, ok := c.w.rss()
	return ok && rss > c.cfg.limits.MemoryBytes
}

// fault kills the worker and returns the default decision.
func (c *core) fault(kind string, err error) sdk.Decision {
	switch kind {
	case FaultTimeout:
		c.stats.Timeouts++
	case FaultMemory:
		c.stats.MemoryBreaches++
	case FaultBrokenChannel:
		c.stats.BrokenChannels++
	case FaultCancelled:
		c.stats.Cancelled++
	}
	fields := []any{"fault", kind}
	if err != nil {
		fields = append(fields, "error", err)
	}
	c.logger.Warn("decision failed, replacing worker", fields...)

	c.w.kill()
	c.w = nil
	c.stats.Restarts++
	return sdk.Fold()
}

func (c *core) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	if c.w != nil {
		c.w.kill()
		c.w = nil
	}
}
