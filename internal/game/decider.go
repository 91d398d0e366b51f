package game

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/lox/pokertourney/poker"
	"github.com/lox/pokertourney/sdk"
)

// Decider supplies the action for one seat. Implementations must not return
// errors or panic into the table: any fault degrades to a default decision.
type Decider interface {
	GetAction(ctx context.Context, state sdk.PublicState, hole poker.HoleCards) sdk.Decision
}

// DeciderFunc adapts a function to the Decider interface.
type DeciderFunc func(ctx context.Context, state sdk.PublicState, hole poker.HoleCards) sdk.Decision

func (f DeciderFunc) GetAction(ctx context.Context, state sdk.PublicState, hole poker.HoleCards) sdk.Decision {
	return f(ctx, state, hole)
}

// Local runs a trusted agent in-process. A panic inside the agent is
// reported as a fold. There is no memory or time bound; use the sandbox for
// untrusted agents.
func Local(agent sdk.Agent, logger *log.Logger) Decider {
	if logger == nil {
		logger = log.Default()
	}
	return &localDecider{agent: agent, logger: logger}
}

type localDecider struct {
	agent  sdk.Agent
	logger *log.Logger
}

func (l *localDecider) GetAction(_ context.Context, state sdk.PublicState, hole poker.HoleCards) (d sdk.Decision) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Warn("agent panicked", "seat", state.WhoseTurn, "panic", r)
			d = sdk.Fold()
		}
	}()
	return l.agent.Decide(state.Clone(), hole)
}
