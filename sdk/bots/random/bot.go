// Package random provides an agent that picks uniformly among legal actions.
package random

import (
	rand "math/rand/v2"

	"github.com/lox/pokertourney/internal/randutil"
	"github.com/lox/pokertourney/poker"
	"github.com/lox/pokertourney/sdk"
)

// Name is the registry name of this agent.
const Name = "random"

func init() {
	sdk.Register(Name, func(cfg sdk.AgentConfig) sdk.Agent { return New(cfg.Seed) })
}

// Bot makes random legal actions. Bets and raises are sized between the
// minimum and twice the minimum.
type Bot struct {
	rng *rand.Rand
}

// New creates a random bot with a deterministic seed.
func New(seed int64) *Bot {
	return &Bot{rng: randutil.New(seed)}
}

func (b *Bot) Decide(state sdk.PublicState, _ poker.HoleCards) sdk.Decision {
	legal := state.Legal(state.WhoseTurn)

	var options []sdk.ActionKind
	if legal.Check {
		options = append(options, sdk.ActionCheck)
	} else {
		options = append(options, sdk.ActionFold)
	}
	if legal.Call {
		options = append(options, sdk.ActionCall)
	}
	if legal.Bet {
		options = append(options, sdk.ActionBet)
	}
	if legal.Raise {
		options = append(options, sdk.ActionRaise)
	}
	if legal.AllIn && b.rng.IntN(10) == 0 {
		options = append(options, sdk.ActionAllIn)
	}

	switch kind := options[b.rng.IntN(len(options))]; kind {
	case sdk.ActionBet:
		return sdk.Bet(b.size(legal.MinBet, legal.MaxBet))
	case sdk.ActionRaise:
		own := state.Players[state.WhoseTurn].CurrentBet
		return sdk.Raise(b.size(legal.MinRaise, legal.MaxBet+own) - own)
	default:
		return sdk.Decision{Kind: kind}
	}
}

// size picks a total between lo and min(2*lo, hi).
func (b *Bot) size(lo, hi int) int {
	top := min(2*lo, hi)
	if top <= lo {
		return lo
	}
	return lo + b.rng.IntN(top-lo+1)
}
