package game

import (
	"errors"
	"fmt"
)

// ErrChipConservation means chips were created or destroyed.
var ErrChipConservation = errors.New("chip conservation violation")

// ChipCount returns the chips the table started with and the chips it holds
// now across stacks, current bets and pots.
func (t *Table) ChipCount() (expected, actual int) {
	for _, p := range t.players {
		actual += p.Stack + p.CurrentBet
	}
	return t.totalChips, actual + t.potTotal()
}

// VerifyChips checks chip conservation. It can be called between any two
// hands, or from a Decider while a hand is in progress.
func (t *Table) VerifyChips() error {
	expected, actual := t.ChipCount()
	if expected != actual {
		return fmt.Errorf("%w: expected %d total chips, but found %d (difference: %d)",
			ErrChipConservation, expected, actual, actual-expected)
	}
	return nil
}
