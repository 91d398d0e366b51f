package sandbox

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/pokertourney/sdk"
)

// IsWorker reports whether this process was started as a sandbox worker.
func IsWorker() bool {
	return os.Getenv(EnvAgent) != ""
}

// RunWorker serves decisions for the agent named in the environment until
// stdin closes and returns the process exit code.
func RunWorker() int {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "worker"})

	cfg, err := WorkerConfigFromEnv()
	if err != nil {
		logger.Error("bad worker environment", "error", err)
		return 2
	}
	factory, err := sdk.Lookup(cfg.Agent)
	if err != nil {
		logger.Error("cannot start agent", "error", err)
		return 2
	}
	agent := factory(sdk.AgentConfig{Seat: cfg.Seat, Seed: cfg.Seed})

	// The protocol owns stdout; anything the agent prints goes to stderr.
	out := os.Stdout
	os.Stdout = os.Stderr

	if err := Serve(agent, os.Stdin, out); err != nil {
		logger.Error("worker stopped", "agent", cfg.Agent, "error", err)
		return 1
	}
	return 0
}

// Serve answers JSON-line requests from r on w until r is exhausted.
func Serve(agent sdk.Agent, r io.Reader, w io.Writer) error {
	dec := json.NewDecoder(r)
	enc := json.NewEncoder(w)
	for {
		var req request
		if err := dec.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("decode request: %w", err)
		}
		if err := enc.Encode(decide(agent, req)); err != nil {
			return fmt.Errorf("encode response: %w", err)
		}
	}
}

func decide(agent sdk.Agent, req request) (resp response) {
	resp.ID = req.ID
	defer func() {
		if r := recover(); r != nil {
			resp.Decision = sdk.Fold()
			resp.Crash = fmt.Sprint(r)
		}
	}()
	resp.Decision = agent.Decide(req.State, req.Hole)
	return resp
}
