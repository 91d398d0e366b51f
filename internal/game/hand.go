package game

import (
	"context"
	"fmt"

	"github.com/lox/pokertourney/internal/randutil"
	"github.com/lox/pokertourney/poker"
	"github.com/lox/pokertourney/sdk"
)

type phase uint8

const (
	phaseDeal phase = iota
	phasePostBlinds
	phaseBetPreflop
	phaseDealFlop
	phaseBetFlop
	phaseDealTurn
	phaseBetTurn
	phaseDealRiver
	phaseBetRiver
	phaseEndHand
	phaseFinalize
	phaseDone
)

var phaseNames = [...]string{
	"deal", "post_blinds", "betting(preflop)", "deal_flop", "betting(flop)",
	"deal_turn", "betting(turn)", "deal_river", "betting(river)", "end_hand",
	"finalize", "done",
}

func (p phase) String() string { return phaseNames[p] }

// PlayHand plays one complete hand. Deciders are asked for actions through
// ctx; a cancelled ctx makes them answer with their defaults, so the hand
// still completes. The only error is a broken invariant such as an exhausted
// deck.
func (t *Table) PlayHand(ctx context.Context) (*HandResult, error) {
	if t.Finished() {
		return nil, ErrTournamentOver
	}
	result := &HandResult{Round: t.round, Button: t.button, Winners: map[int]Winning{}}

	for p := phaseDeal; p != phaseDone; p++ {
		if p < phaseEndHand && p != phaseDeal && len(t.activeSeats()) < 2 {
			p = phaseEndHand
		}

		var err error
		switch p {
		case phaseDeal:
			err = t.startHand()
		case phasePostBlinds:
			t.postBlinds()
		case phaseBetPreflop:
			t.bettingRound(ctx, sdk.Preflop)
		case phaseDealFlop:
			err = t.dealCommunity(sdk.Flop, 3)
		case phaseBetFlop:
			t.bettingRound(ctx, sdk.Flop)
		case phaseDealTurn:
			err = t.dealCommunity(sdk.Turn, 1)
		case phaseBetTurn:
			t.bettingRound(ctx, sdk.Turn)
		case phaseDealRiver:
			err = t.dealCommunity(sdk.River, 1)
		case phaseBetRiver:
			t.bettingRound(ctx, sdk.River)
		case phaseEndHand:
			err = t.endHand(result)
		case phaseFinalize:
			t.finalize()
		}
		if err != nil {
			return nil, fmt.Errorf("round %d %s: %w", result.Round, p, err)
		}
	}

	t.logger.Debug("hand complete",
		"round", result.Round,
		"street", result.FinalStreet,
		"pot", result.TotalPot,
		"showdown", result.Showdown,
		"eliminated", result.Eliminated)
	return result, nil
}

// startHand archives the previous hand, resets hand-scoped state,
// reshuffles and deals hole cards to every seat still in the tournament.
func (t *Table) startHand() error {
	if !t.history.Empty() {
		t.archive = append(t.archive, sdk.HandRecord{
			Round:    t.handRound,
			History:  t.history,
			Showdown: t.showdown,
		})
	}
	t.handRound = t.round
	t.history = sdk.NewHandHistory()
	t.showdown = nil
	t.community = nil
	t.pots = nil
	t.minRaise = t.blinds.Big
	t.whoseTurn = sdk.NoSeat
	for i := range t.players {
		p := &t.players[i]
		p.CurrentBet = 0
		p.AllIn = false
		p.Active = !p.Busted
		t.hole[i] = nil
		t.contributed[i] = 0
	}

	t.deck.Reset()
	t.deck.ShuffleSeed(randutil.Derive(t.seed, t.round))
	if t.rig != nil {
		if err := t.deck.Stack(t.rig(t.round)); err != nil {
			return err
		}
	}

	seat := t.button
	for range t.nonBustedCount() {
		seat = t.nextSeat(seat, notBusted)
		cards, err := t.deck.DealMany(2)
		if err != nil {
			return err
		}
		t.hole[seat] = &poker.HoleCards{cards[0], cards[1]}
	}
	return nil
}

// postBlinds takes the forced bets. Heads-up the button posts the small
// blind; otherwise the two seats after the button do. A short stack posts
// what it has and is all-in.
func (t *Table) postBlinds() {
	sb := t.nextSeat(t.button, notBusted)
	if t.nonBustedCount() == 2 {
		sb = t.button
	}
	bb := t.nextSeat(sb, notBusted)
	t.post(sb, t.blinds.Small, sdk.ActionSmallBlind)
	t.post(bb, t.blinds.Big, sdk.ActionBigBlind)
}

func (t *Table) post(seat, blind int, kind sdk.ActionKind) {
	amount := min(blind, t.players[seat].Stack)
	t.move(seat, amount)
	t.record(sdk.Preflop, sdk.Action{Seat: seat, Kind: kind, Amount: amount})
}

// move takes chips from a seat's stack into its current bet.
func (t *Table) move(seat, amount int) {
	p := &t.players[seat]
	p.Stack -= amount
	p.CurrentBet += amount
	t.contributed[seat] += amount
	if p.Stack == 0 && p.Active {
		p.AllIn = true
	}
}

func (t *Table) record(street sdk.Street, a sdk.Action) {
	t.history[street].Actions = append(t.history[street].Actions, a)
}

func (t *Table) dealCommunity(street sdk.Street, n int) error {
	if err := t.deck.Burn(); err != nil {
		return err
	}
	cards, err := t.deck.DealMany(n)
	if err != nil {
		return err
	}
	t.community = append(t.community, cards...)
	t.history[street].Community = append(t.history[street].Community, cards...)
	return nil
}

// finalize advances the round, applies a blind level if one starts at the
// new round, and moves the button.
func (t *Table) finalize() {
	t.round++
	if b, ok := t.schedule[t.round]; ok {
		if b != t.blinds {
			t.logger.Info("blinds up", "round", t.round, "small", b.Small, "big", b.Big)
		}
		t.blinds = b
	}
	if t.nonBustedCount() > 1 {
		t.button = t.nextSeat(t.button, notBusted)
	}
}
