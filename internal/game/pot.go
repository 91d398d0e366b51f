package game

import (
	"slices"

	"github.com/lox/pokertourney/poker"
	"github.com/lox/pokertourney/sdk"
)

// reconcile moves the street's current bets into pots. Each distinct bet
// level forms a layer; a layer's eligible seats are the active seats that
// reached it. A layer joins the previous pot when the eligible seats are
// unchanged and opens a side pot otherwise.
func (t *Table) reconcile() {
	var levels []int
	for _, p := range t.players {
		if p.CurrentBet > 0 && !slices.Contains(levels, p.CurrentBet) {
			levels = append(levels, p.CurrentBet)
		}
	}
	slices.Sort(levels)

	total, moved, prev := 0, 0, 0
	for _, p := range t.players {
		total += p.CurrentBet
	}
	for _, level := range levels {
		var eligible []int
		amount := 0
		for i, p := range t.players {
			amount += min(p.CurrentBet, level) - min(p.CurrentBet, prev)
			if p.Active && p.CurrentBet >= level {
				eligible = append(eligible, i)
			}
		}
		if len(eligible) == 0 {
			// Only folded seats reached this level; it rolls into the next.
			continue
		}
		t.addToPot(amount, eligible)
		moved += amount
		prev = level
	}
	if rest := total - moved; rest > 0 {
		t.addToPot(rest, t.activeSeats())
	}

	for i := range t.players {
		t.players[i].CurrentBet = 0
	}
}

func (t *Table) addToPot(amount int, eligible []int) {
	if n := len(t.pots); n > 0 && slices.Equal(t.pots[n-1].Eligible, eligible) {
		t.pots[n-1].Amount += amount
		return
	}
	t.pots = append(t.pots, sdk.Pot{Amount: amount, Eligible: eligible})
}

func (t *Table) potTotal() int {
	total := 0
	for _, p := range t.pots {
		total += p.Amount
	}
	return total
}

// endHand pays out every pot, busts seats left without chips and fills in
// the result.
func (t *Table) endHand(result *HandResult) error {
	t.reconcile()
	result.TotalPot = t.potTotal()
	result.Contributed = slices.Clone(t.contributed)
	result.FinalStreet = sdk.StreetForBoard(len(t.community))
	result.EndedEarly = len(t.community) < 5

	active := t.activeSeats()
	if len(active) == 1 {
		seat := active[0]
		t.players[seat].Stack += result.TotalPot
		result.Winners[seat] = Winning{Category: Uncontested, Amount: result.TotalPot}
	} else {
		if err := t.showdownPayout(active, result); err != nil {
			return err
		}
	}
	t.pots = nil

	for i := range t.players {
		p := &t.players[i]
		if p.Stack == 0 && !p.Busted {
			p.Busted = true
			p.Active = false
			result.Eliminated = append(result.Eliminated, i)
			t.logger.Info("seat eliminated", "seat", i, "round", t.handRound)
		}
		p.AllIn = false
		t.hole[i] = nil
	}
	return nil
}

func (t *Table) showdownPayout(active []int, result *HandResult) error {
	detail := &sdk.ShowdownDetail{
		Eligible:   active,
		Categories: make(map[int]poker.Category, len(active)),
		HoleCards:  make(map[int]poker.HoleCards, len(active)),
	}
	for _, seat := range active {
		v, err := poker.Evaluate(*t.hole[seat], t.community)
		if err != nil {
			return err
		}
		detail.Categories[seat] = v.Category
		detail.HoleCards[seat] = *t.hole[seat]
	}
	t.showdown = detail
	result.Showdown = true
	result.ShowdownDetail = detail

	for _, pot := range t.pots {
		if pot.Amount == 0 {
			continue
		}
		winners, err := poker.DetermineWinners(t.hole, t.community, pot.Eligible)
		if err != nil {
			return err
		}
		if len(winners) == 0 {
			// Every eligible seat folded later in the hand.
			if winners, err = poker.DetermineWinners(t.hole, t.community, active); err != nil {
				return err
			}
		}
		winners = t.fromButton(winners)

		share, odd := pot.Amount/len(winners), pot.Amount%len(winners)
		for i, seat := range winners {
			won := share
			if i == 0 {
				won += odd
			}
			t.players[seat].Stack += won
			w := result.Winners[seat]
			w.Category = detail.Categories[seat].String()
			w.Amount += won
			result.Winners[seat] = w
		}
	}
	return nil
}
