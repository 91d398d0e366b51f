package sdk

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lox/pokertourney/internal/randutil"
)

func seats(infos ...PlayerPublicInfo) []PlayerPublicInfo {
	for i := range infos {
		infos[i].Seat = i
		infos[i].Active = true
	}
	return infos
}

func TestLegalActions(t *testing.T) {
	t.Parallel()

	t.Run("no bet", func(t *testing.T) {
		la := Legal(0, seats(PlayerPublicInfo{Stack: 500}), 0, 20)
		assert.True(t, la.Check)
		assert.True(t, la.Bet)
		assert.False(t, la.Call)
		assert.False(t, la.Raise)
		assert.Equal(t, 20, la.MinBet)
		assert.Equal(t, 0, la.MinRaise)
		assert.Equal(t, 500, la.MaxBet)
	})

	t.Run("facing a bet", func(t *testing.T) {
		players := seats(PlayerPublicInfo{Stack: 500, CurrentBet: 20}, PlayerPublicInfo{Stack: 400, CurrentBet: 100})
		la := Legal(0, players, 100, 50)
		assert.False(t, la.Check)
		assert.False(t, la.Bet)
		assert.True(t, la.Call)
		assert.True(t, la.Raise)
		assert.Equal(t, 80, la.CallAmount)
		assert.Equal(t, 150, la.MinRaise)
	})

	t.Run("short stack", func(t *testing.T) {
		players := seats(PlayerPublicInfo{Stack: 30}, PlayerPublicInfo{Stack: 400, CurrentBet: 100})
		la := Legal(0, players, 100, 50)
		assert.False(t, la.Call)
		assert.False(t, la.Raise)
		assert.True(t, la.AllIn)
	})
}

func TestValidateAction(t *testing.T) {
	t.Parallel()
	facing := func(stack int) []PlayerPublicInfo {
		return seats(PlayerPublicInfo{Stack: stack, CurrentBet: 20}, PlayerPublicInfo{Stack: 1000, CurrentBet: 100})
	}
	option := func(stack int) []PlayerPublicInfo {
		return seats(PlayerPublicInfo{Stack: stack, CurrentBet: 20}, PlayerPublicInfo{Stack: 1000, CurrentBet: 20})
	}
	open := func(stack int) []PlayerPublicInfo {
		return seats(PlayerPublicInfo{Stack: stack}, PlayerPublicInfo{Stack: 1000})
	}

	tests := []struct {
		name       string
		players    []PlayerPublicInfo
		betToCall  int
		minRaise   int
		kind       ActionKind
		amount     int
		wantKind   ActionKind
		wantAmount int
		wantReason Correction
	}{
		{"raise to exact minimum", facing(500), 100, 50, ActionRaise, 130, ActionRaise, 130, Accepted},
		{"raise one short of minimum calls", facing(500), 100, 50, ActionRaise, 129, ActionCall, 80, ReasonRaiseBelowMinimum},
		{"raise below minimum on the big blind option checks", option(500), 20, 20, ActionRaise, 5, ActionCheck, 0, ReasonRaiseBelowMinimum},
		{"raise to minimum on the big blind option", option(500), 20, 20, ActionRaise, 20, ActionRaise, 20, Accepted},
		{"larger raise accepted", facing(500), 100, 50, ActionRaise, 180, ActionRaise, 180, Accepted},
		{"raise beyond stack goes all-in", facing(200), 100, 50, ActionRaise, 900, ActionAllIn, 200, ReasonRaiseExceedsStack},
		{"raise with no bet folds", open(500), 0, 20, ActionRaise, 100, ActionFold, 0, ReasonRaiseNotAllowed},
		{"raise unaffordable calls", facing(80), 100, 50, ActionRaise, 80, ActionCall, 80, ReasonRaiseNotAllowed},
		{"bet below minimum checks", open(500), 0, 20, ActionBet, 5, ActionCheck, 0, ReasonBetBelowMinimum},
		{"bet beyond stack goes all-in", open(50), 0, 20, ActionBet, 200, ActionAllIn, 50, ReasonBetExceedsStack},
		{"bet accepted", open(500), 0, 20, ActionBet, 60, ActionBet, 60, Accepted},
		{"bet facing a bet folds", facing(500), 100, 50, ActionBet, 60, ActionFold, 0, ReasonBetNotAllowed},
		{"call ignores amount", facing(500), 100, 50, ActionCall, 999, ActionCall, 80, Accepted},
		{"call with nothing owed checks", open(500), 0, 20, ActionCall, 0, ActionCheck, 0, ReasonCallNothing},
		{"short call goes all-in", facing(30), 100, 50, ActionCall, 0, ActionAllIn, 30, ReasonCallExceedsStack},
		{"fold when free checks", open(500), 0, 20, ActionFold, 0, ActionCheck, 0, ReasonFoldWhenFree},
		{"fold facing bet", facing(500), 100, 50, ActionFold, 0, ActionFold, 0, Accepted},
		{"check facing bet folds", facing(500), 100, 50, ActionCheck, 0, ActionFold, 0, ReasonCheckFacingBet},
		{"all-in takes the stack", facing(500), 100, 50, ActionAllIn, 1, ActionAllIn, 500, Accepted},
		{"unknown kind checks when free", open(500), 0, 20, "shove", 0, ActionCheck, 0, ReasonUnknownAction},
		{"unknown kind folds facing bet", facing(500), 100, 50, "", 0, ActionFold, 0, ReasonUnknownAction},
		{"blind kinds are not playable", facing(500), 100, 50, ActionBigBlind, 20, ActionFold, 0, ReasonUnknownAction},
		{"kind is case and space insensitive", facing(500), 100, 50, " RAISE ", 180, ActionRaise, 180, Accepted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := ValidateAction(0, tt.kind, tt.amount, tt.players, tt.betToCall, tt.minRaise)
			assert.Equal(t, Action{Seat: 0, Kind: tt.wantKind, Amount: tt.wantAmount}, got)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestValidateAllInEmptyStack(t *testing.T) {
	t.Parallel()
	players := seats(PlayerPublicInfo{Stack: 0}, PlayerPublicInfo{Stack: 100})
	got, reason := ValidateAction(0, ActionAllIn, 0, players, 0, 20)
	assert.Equal(t, ActionCheck, got.Kind)
	assert.Equal(t, ReasonAllInEmptyStack, reason)
}

// Whatever ValidateAction returns must sit inside the bounds Legal reports
// for the same state.
func TestValidateActionRespectsLegalBounds(t *testing.T) {
	t.Parallel()
	rng := randutil.New(5)
	kinds := []ActionKind{ActionFold, ActionCheck, ActionCall, ActionBet, ActionRaise, ActionAllIn, "bogus"}

	for i := range 5000 {
		ownBet := rng.IntN(200)
		other := ownBet + rng.IntN(3)*rng.IntN(300)
		if rng.IntN(4) == 0 {
			ownBet, other = 0, 0
		}
		players := seats(
			PlayerPublicInfo{Stack: rng.IntN(600), CurrentBet: ownBet},
			PlayerPublicInfo{Stack: 1000, CurrentBet: other},
		)
		betToCall := BetToCall(players)
		minRaise := 10 + rng.IntN(100)
		kind := kinds[rng.IntN(len(kinds))]
		amount := rng.IntN(900) - 50

		got, _ := ValidateAction(0, kind, amount, players, betToCall, minRaise)
		la := Legal(0, players, betToCall, minRaise)
		msg := fmt.Sprintf("case %d: %s %d -> %+v with %+v", i, kind, amount, got, la)

		switch got.Kind {
		case ActionFold:
			assert.True(t, la.Fold, msg)
			assert.Zero(t, got.Amount, msg)
		case ActionCheck:
			assert.True(t, la.Check, msg)
			assert.Zero(t, got.Amount, msg)
		case ActionCall:
			assert.True(t, la.Call, msg)
			assert.Equal(t, la.CallAmount, got.Amount, msg)
		case ActionBet:
			assert.True(t, la.Bet, msg)
			assert.GreaterOrEqual(t, got.Amount, la.MinBet, msg)
			assert.LessOrEqual(t, got.Amount, la.MaxBet, msg)
		case ActionRaise:
			assert.True(t, la.Raise, msg)
			assert.GreaterOrEqual(t, got.Amount+ownBet, la.MinRaise, msg)
			assert.LessOrEqual(t, got.Amount, la.MaxBet, msg)
		case ActionAllIn:
			assert.True(t, la.AllIn, msg)
			assert.Equal(t, la.MaxBet, got.Amount, msg)
		default:
			t.Fatalf("unexpected kind: %s", msg)
		}
	}
}

func TestNextMinRaise(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 80, NextMinRaise(20, 20, 100))
	assert.Equal(t, 20, NextMinRaise(20, 100, 110), "short all-in leaves minimum unchanged")
	assert.Equal(t, 20, NextMinRaise(20, 0, 20))
}
