package game

import (
	"context"

	"github.com/lox/pokertourney/sdk"
)

// bettingRound is the bookkeeping for one street. The round is over when
// done reports true; see done for the exact condition.
type bettingRound struct {
	street    sdk.Street
	streetBet int
	minRaise  int
	aggressor int
	acted     []bool
	next      int
}

func (t *Table) newBettingRound(street sdk.Street) *bettingRound {
	r := &bettingRound{
		street:    street,
		streetBet: sdk.BetToCall(t.players),
		minRaise:  t.blinds.Big,
		aggressor: sdk.NoSeat,
		acted:     make([]bool, len(t.players)),
	}
	if street == sdk.Preflop {
		// Seat after the big blind, the last preflop post.
		posts := t.history[sdk.Preflop].Actions
		r.next = t.nextSeat(posts[len(posts)-1].Seat, notBusted)
	} else {
		r.next = t.nextSeat(t.button, notBusted)
	}
	return r
}

// needsAction reports whether seat still owes a decision this street.
func (r *bettingRound) needsAction(p sdk.PlayerPublicInfo) bool {
	return canAct(p) && (!r.acted[p.Seat] || p.CurrentBet < r.streetBet)
}

// done is the termination condition: nobody who can act still owes a
// decision, or at most one seat can still act. A lone seat with chips is
// never asked to call a shove; it keeps whatever it has not put in.
func (r *bettingRound) done(players []sdk.PlayerPublicInfo) bool {
	able, owing := 0, 0
	for _, p := range players {
		if canAct(p) {
			able++
		}
		if r.needsAction(p) {
			owing++
		}
	}
	return owing == 0 || able <= 1
}

// bettingRound asks seats for actions until the street is settled, then
// reconciles the street's bets into pots.
func (t *Table) bettingRound(ctx context.Context, street sdk.Street) {
	r := t.newBettingRound(street)
	t.minRaise = r.minRaise
	logger := t.logger.With("round", t.handRound, "street", street)

	for !r.done(t.players) {
		seat := r.next
		for !r.needsAction(t.players[seat]) {
			seat = (seat + 1) % len(t.players)
		}

		t.whoseTurn = seat
		hole := *t.hole[seat]
		d := t.deciders[seat].GetAction(ctx, t.Snapshot(), hole)
		t.whoseTurn = sdk.NoSeat

		act, reason := sdk.ValidateAction(seat, d.Kind, d.Amount, t.players, r.streetBet, r.minRaise)
		if reason != sdk.Accepted {
			logger.Warn("corrected action",
				"seat", seat,
				"reason", string(reason),
				"requested", d.Kind,
				"amount", d.Amount,
				"applied", act.Kind)
		}
		t.apply(r, act)
		logger.Debug("action", "seat", seat, "kind", act.Kind, "amount", act.Amount)

		r.acted[seat] = true
		r.next = (seat + 1) % len(t.players)
	}

	t.reconcile()
}

// apply executes a legal action and updates the aggressor and minimum
// raise when it lifts the street bet.
func (t *Table) apply(r *bettingRound, a sdk.Action) {
	switch a.Kind {
	case sdk.ActionFold:
		t.players[a.Seat].Active = false
		t.hole[a.Seat] = nil
	case sdk.ActionCheck:
	default:
		t.move(a.Seat, a.Amount)
	}
	t.record(r.street, a)

	if bet := t.players[a.Seat].CurrentBet; bet > r.streetBet {
		r.minRaise = sdk.NextMinRaise(r.minRaise, r.streetBet, bet)
		r.streetBet = bet
		r.aggressor = a.Seat
		t.minRaise = r.minRaise
	}
}
