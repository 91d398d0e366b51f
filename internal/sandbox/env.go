package sandbox

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables that turn the host binary into a worker.
const (
	// EnvAgent names the registered agent the worker serves.
	EnvAgent = "POKERTOURNEY_SANDBOX_AGENT"

	// EnvSeat is the seat index passed to the agent factory.
	EnvSeat = "POKERTOURNEY_SANDBOX_SEAT"

	// EnvSeed seeds the agent; missing means 0.
	EnvSeed = "POKERTOURNEY_SANDBOX_SEED"
)

// WorkerConfig is what a worker learns from its environment.
type WorkerConfig struct {
	Agent string
	Seat  int
	Seed  int64
}

// WorkerConfigFromEnv parses the worker environment.
func WorkerConfigFromEnv() (*WorkerConfig, error) {
	cfg := &WorkerConfig{Agent: os.Getenv(EnvAgent)}
	if cfg.Agent == "" {
		return nil, fmt.Errorf("%s environment variable is required", EnvAgent)
	}

	if s := os.Getenv(EnvSeat); s != "" {
		seat, err := strconv.Atoi(s)
		if err != nil || seat < 0 {
			return nil, fmt.Errorf("invalid %s value %q", EnvSeat, s)
		}
		cfg.Seat = seat
	}

	if s := os.Getenv(EnvSeed); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s value: %w", EnvSeed, err)
		}
		cfg.Seed = seed
	}
	return cfg, nil
}

// Environ appends the worker variables to env.
func (c WorkerConfig) Environ(env []string) []string {
	return append(env,
		fmt.Sprintf("%s=%s", EnvAgent, c.Agent),
		fmt.Sprintf("%s=%d", EnvSeat, c.Seat),
		fmt.Sprintf("%s=%d", EnvSeed, c.Seed),
	)
}
