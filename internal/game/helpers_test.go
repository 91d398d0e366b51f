package game

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertourney/poker"
	"github.com/lox/pokertourney/sdk"
	"github.com/lox/pokertourney/sdk/bots/callingstation"
	"github.com/lox/pokertourney/sdk/bots/folder"
)

var testSchedule = sdk.BlindSchedule{1: {Small: 10, Big: 20}}

func quietLogger() *log.Logger { return log.New(io.Discard) }

func newTestTable(t *testing.T, deciders []Decider, stack int, opts ...Option) *Table {
	t.Helper()
	opts = append([]Option{WithSeed(42), WithLogger(quietLogger())}, opts...)
	tbl, err := New(deciders, stack, testSchedule, opts...)
	require.NoError(t, err)
	return tbl
}

// always answers every request with the same decision.
func always(d sdk.Decision) Decider {
	return DeciderFunc(func(context.Context, sdk.PublicState, poker.HoleCards) sdk.Decision { return d })
}

func calling() Decider { return Local(callingstation.Bot{}, quietLogger()) }
func folding() Decider { return Local(folder.Bot{}, quietLogger()) }

// recorder wraps a decider and keeps every snapshot it was shown.
type recorder struct {
	inner  Decider
	states []sdk.PublicState
	holes  []poker.HoleCards
}

func (r *recorder) GetAction(ctx context.Context, state sdk.PublicState, hole poker.HoleCards) sdk.Decision {
	r.states = append(r.states, state)
	r.holes = append(r.holes, hole)
	return r.inner.GetAction(ctx, state, hole)
}

func rigged(deal string) func(int) []poker.Card {
	cards := poker.MustParseCards(deal)
	return func(int) []poker.Card { return cards }
}

func playHand(t *testing.T, tbl *Table) *HandResult {
	t.Helper()
	res, err := tbl.PlayHand(context.Background())
	require.NoError(t, err)
	require.NoError(t, tbl.VerifyChips())

	contributed, distributed := 0, 0
	for _, c := range res.Contributed {
		contributed += c
	}
	for _, w := range res.Winners {
		distributed += w.Amount
	}
	require.Equal(t, res.TotalPot, contributed, "pot must equal contributions")
	require.Equal(t, res.TotalPot, distributed, "every chip in the pot is paid out")
	return res
}

func stacks(tbl *Table) []int {
	var out []int
	for _, p := range tbl.Players() {
		out = append(out, p.Stack)
	}
	return out
}
