package tournament

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/pokertourney/internal/game"
	"github.com/lox/pokertourney/internal/sandbox"
	"github.com/lox/pokertourney/sdk"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid tournament config")

// Config describes one tournament.
type Config struct {
	StartingStack int            `hcl:"starting_stack,optional"`
	Seed          *int64         `hcl:"seed,optional"`
	MaxHands      int            `hcl:"max_hands,optional"`
	Sandbox       *SandboxConfig `hcl:"sandbox,block"`
	Levels        []LevelConfig  `hcl:"level,block"`
	Seats         []SeatConfig   `hcl:"seat,block"`
}

// SandboxConfig bounds agent decisions. An unset memory_limit_mb takes the
// default ceiling; zero turns memory polling off.
type SandboxConfig struct {
	MemoryLimitMB   *int   `hcl:"memory_limit_mb,optional"`
	DecisionTimeout string `hcl:"decision_timeout,optional"`
	PollInterval    string `hcl:"poll_interval,optional"`
	Disabled        bool   `hcl:"disabled,optional"`
}

// LevelConfig sets the blinds from a round onward.
type LevelConfig struct {
	Round int `hcl:"round"`
	Small int `hcl:"small"`
	Big   int `hcl:"big"`
}

// SeatConfig binds a seat name to a registered agent.
type SeatConfig struct {
	Name  string `hcl:"name,label"`
	Agent string `hcl:"agent"`
}

// DefaultConfig is a four-seat table of reference agents.
func DefaultConfig() *Config {
	return &Config{
		StartingStack: 1000,
		Sandbox:       defaultSandbox(),
		Levels: []LevelConfig{
			{Round: 1, Small: 10, Big: 20},
			{Round: 25, Small: 20, Big: 40},
			{Round: 50, Small: 50, Big: 100},
			{Round: 75, Small: 100, Big: 200},
			{Round: 100, Small: 200, Big: 400},
			{Round: 150, Small: 500, Big: 1000},
		},
		Seats: []SeatConfig{
			{Name: "alice", Agent: "random"},
			{Name: "bob", Agent: "callingstation"},
			{Name: "carol", Agent: "aggressive"},
			{Name: "dave", Agent: "random"},
		},
	}
}

func defaultSandbox() *SandboxConfig {
	mb := int(sandbox.DefaultMemoryLimit >> 20)
	return &SandboxConfig{
		MemoryLimitMB:   &mb,
		DecisionTimeout: sandbox.DefaultDeadline.String(),
		PollInterval:    sandbox.DefaultPollInterval.String(),
	}
}

// LoadConfig reads an HCL tournament file. A missing file yields the
// defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.StartingStack == 0 {
		c.StartingStack = defaults.StartingStack
	}
	c.fillSandbox()
	if len(c.Levels) == 0 {
		c.Levels = defaults.Levels
	}
	if len(c.Seats) == 0 {
		c.Seats = defaults.Seats
	}
}

func (c *Config) fillSandbox() {
	if c.Sandbox == nil {
		c.Sandbox = defaultSandbox()
		return
	}
	s := defaultSandbox()
	if c.Sandbox.MemoryLimitMB == nil {
		c.Sandbox.MemoryLimitMB = s.MemoryLimitMB
	}
	if c.Sandbox.DecisionTimeout == "" {
		c.Sandbox.DecisionTimeout = s.DecisionTimeout
	}
	if c.Sandbox.PollInterval == "" {
		c.Sandbox.PollInterval = s.PollInterval
	}
}

// Validate checks the config can build a table.
func (c *Config) Validate() error {
	if n := len(c.Seats); n < game.MinSeats || n > game.MaxSeats {
		return fmt.Errorf("%w: %d seats, need %d to %d", ErrInvalidConfig, n, game.MinSeats, game.MaxSeats)
	}
	if c.StartingStack <= 0 {
		return fmt.Errorf("%w: starting stack must be positive", ErrInvalidConfig)
	}
	if c.MaxHands < 0 {
		return fmt.Errorf("%w: max_hands must not be negative", ErrInvalidConfig)
	}
	if len(c.Levels) == 0 {
		return fmt.Errorf("%w: at least one level must be configured", ErrInvalidConfig)
	}

	rounds := map[int]bool{}
	for _, l := range c.Levels {
		if l.Round < 1 {
			return fmt.Errorf("%w: level round %d must be at least 1", ErrInvalidConfig, l.Round)
		}
		if rounds[l.Round] {
			return fmt.Errorf("%w: duplicate level for round %d", ErrInvalidConfig, l.Round)
		}
		rounds[l.Round] = true
		if l.Small <= 0 || l.Small > l.Big {
			return fmt.Errorf("%w: round %d blinds %d/%d", ErrInvalidConfig, l.Round, l.Small, l.Big)
		}
	}

	names := map[string]bool{}
	for _, s := range c.Seats {
		if names[s.Name] {
			return fmt.Errorf("%w: duplicate seat %q", ErrInvalidConfig, s.Name)
		}
		names[s.Name] = true
		if _, err := sdk.Lookup(s.Agent); err != nil {
			return fmt.Errorf("%w: seat %s: %w", ErrInvalidConfig, s.Name, err)
		}
	}

	if c.Sandbox != nil {
		if _, err := c.Sandbox.Limits(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Schedule converts the levels into a blind schedule.
func (c *Config) Schedule() sdk.BlindSchedule {
	schedule := make(sdk.BlindSchedule, len(c.Levels))
	for _, l := range c.Levels {
		schedule[l.Round] = sdk.Blinds{Small: l.Small, Big: l.Big}
	}
	return schedule
}

// UseAgents replaces the seat list with one seat per agent name.
func (c *Config) UseAgents(agents []string) {
	c.Seats = make([]SeatConfig, len(agents))
	for i, agent := range agents {
		c.Seats[i] = SeatConfig{Name: fmt.Sprintf("seat%d-%s", i, agent), Agent: agent}
	}
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	if c.Seed != nil {
		seed := *c.Seed
		out.Seed = &seed
	}
	if c.Sandbox != nil {
		s := *c.Sandbox
		if c.Sandbox.MemoryLimitMB != nil {
			mb := *c.Sandbox.MemoryLimitMB
			s.MemoryLimitMB = &mb
		}
		out.Sandbox = &s
	}
	out.Levels = slices.Clone(c.Levels)
	out.Seats = slices.Clone(c.Seats)
	return &out
}

// Limits parses the sandbox block.
func (s *SandboxConfig) Limits() (sandbox.Limits, error) {
	deadline, err := time.ParseDuration(s.DecisionTimeout)
	if err != nil {
		return sandbox.Limits{}, fmt.Errorf("decision_timeout: %w", err)
	}
	poll, err := time.ParseDuration(s.PollInterval)
	if err != nil {
		return sandbox.Limits{}, fmt.Errorf("poll_interval: %w", err)
	}
	if deadline <= 0 || poll <= 0 {
		return sandbox.Limits{}, fmt.Errorf("durations must be positive")
	}
	mb := int(sandbox.DefaultMemoryLimit >> 20)
	if s.MemoryLimitMB != nil {
		mb = *s.MemoryLimitMB
	}
	if mb < 0 {
		return sandbox.Limits{}, fmt.Errorf("memory_limit_mb must not be negative")
	}
	return sandbox.Limits{
		MemoryBytes:  uint64(mb) << 20,
		Deadline:     deadline,
		PollInterval: poll,
	}, nil
}
