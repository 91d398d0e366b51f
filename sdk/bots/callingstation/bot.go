// Package callingstation provides an agent that never folds and never raises.
package callingstation

import (
	"github.com/lox/pokertourney/poker"
	"github.com/lox/pokertourney/sdk"
)

// Name is the registry name of this agent.
const Name = "callingstation"

func init() {
	sdk.Register(Name, func(sdk.AgentConfig) sdk.Agent { return Bot{} })
}

// Bot checks when it can and calls otherwise.
type Bot struct{}

func (Bot) Decide(state sdk.PublicState, _ poker.HoleCards) sdk.Decision {
	legal := state.Legal(state.WhoseTurn)
	switch {
	case legal.Check:
		return sdk.Check()
	case legal.Call:
		return sdk.Call()
	default:
		// Short stacked; calling is corrected to all-in.
		return sdk.Call()
	}
}
