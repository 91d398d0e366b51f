// Package aggressive provides an agent that raises 70% of the time when it
// can.
package aggressive

import (
	rand "math/rand/v2"

	"github.com/lox/pokertourney/internal/randutil"
	"github.com/lox/pokertourney/poker"
	"github.com/lox/pokertourney/sdk"
)

// Name is the registry name of this agent.
const Name = "aggressive"

func init() {
	sdk.Register(Name, func(cfg sdk.AgentConfig) sdk.Agent { return New(cfg.Seed) })
}

type Bot struct {
	rng *rand.Rand
}

func New(seed int64) *Bot {
	return &Bot{rng: randutil.New(seed)}
}

func (b *Bot) Decide(state sdk.PublicState, _ poker.HoleCards) sdk.Decision {
	legal := state.Legal(state.WhoseTurn)
	own := state.Players[state.WhoseTurn].CurrentBet

	if b.rng.Float64() < 0.7 {
		switch {
		case legal.Bet:
			return sdk.Bet(legal.MinBet)
		case legal.Raise:
			// MinRaise is a total bet level; Raise wants the chips to add.
			return sdk.Raise(legal.MinRaise - own)
		}
	}
	if legal.Check {
		return sdk.Check()
	}
	if legal.Call {
		return sdk.Call()
	}
	return sdk.Fold()
}
