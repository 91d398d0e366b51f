package game

import (
	"maps"
	"slices"

	"github.com/lox/pokertourney/sdk"
)

// Snapshot returns a deep copy of the public table state. It never contains
// hole cards except those already revealed in archived showdowns.
func (t *Table) Snapshot() sdk.PublicState {
	s := sdk.PublicState{
		Round:     t.handRound,
		Players:   slices.Clone(t.players),
		Button:    t.button,
		Community: slices.Clone(t.community),
		TotalPot:  t.potTotal(),
		Pots:      make([]sdk.Pot, len(t.pots)),
		Blinds:    t.blinds,
		Schedule:  maps.Clone(t.schedule),
		MinRaise:  t.minRaise,
		WhoseTurn: t.whoseTurn,
		History:   t.history.Clone(),
		Archive:   t.Archive(),
	}
	if s.Round == 0 {
		s.Round = t.round
	}
	for i, p := range t.pots {
		s.Pots[i] = sdk.Pot{Amount: p.Amount, Eligible: slices.Clone(p.Eligible)}
	}
	return s
}
