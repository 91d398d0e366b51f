package sdk

// LegalActions describes what a seat may do. MinBet and MinRaise are total
// bet levels; MaxBet is the seat's stack; CallAmount is the chips needed to
// match the street bet.
type LegalActions struct {
	Fold  bool `json:"fold"`
	Check bool `json:"check"`
	Call  bool `json:"call"`
	Bet   bool `json:"bet"`
	Raise bool `json:"raise"`
	AllIn bool `json:"all_in"`

	MinBet     int `json:"min_bet"`
	MaxBet     int `json:"max_bet"`
	MinRaise   int `json:"min_raise"`
	CallAmount int `json:"call_amount"`
}

// Correction names why ValidateAction changed a request. The empty
// Correction means the request was accepted as is.
type Correction string

const (
	Accepted                Correction = ""
	ReasonUnknownAction     Correction = "unknown action"
	ReasonFoldWhenFree      Correction = "fold when check is free"
	ReasonCheckFacingBet    Correction = "check facing a bet"
	ReasonCallNothing       Correction = "call with nothing to call"
	ReasonCallExceedsStack  Correction = "call exceeds stack"
	ReasonBetNotAllowed     Correction = "bet not allowed"
	ReasonBetBelowMinimum   Correction = "bet below minimum"
	ReasonBetExceedsStack   Correction = "bet exceeds stack"
	ReasonRaiseNotAllowed   Correction = "raise not allowed"
	ReasonRaiseBelowMinimum Correction = "raise below minimum"
	ReasonRaiseExceedsStack Correction = "raise exceeds stack"
	ReasonAllInEmptyStack   Correction = "all-in with empty stack"
)

// BetToCall returns the highest current bet among the players.
func BetToCall(players []PlayerPublicInfo) int {
	best := 0
	for _, p := range players {
		best = max(best, p.CurrentBet)
	}
	return best
}

// Legal lists the actions available to seat given the street's highest bet
// and the current minimum raise increment.
func Legal(seat int, players []PlayerPublicInfo, betToCall, minRaise int) LegalActions {
	p := players[seat]
	toCall := max(0, betToCall-p.CurrentBet)

	la := LegalActions{
		Fold:       true,
		Check:      toCall == 0,
		Call:       toCall > 0 && p.Stack >= toCall,
		Bet:        betToCall == 0 && p.Stack > 0,
		Raise:      betToCall > 0 && p.Stack > toCall,
		AllIn:      p.Stack > 0,
		MaxBet:     p.Stack,
		CallAmount: toCall,
	}
	if betToCall == 0 {
		la.MinBet = minRaise
	} else {
		la.MinRaise = betToCall + minRaise
	}
	return la
}

// ValidateAction turns any requested action into a legal one. The returned
// Action's Amount is the number of chips the seat moves from its stack. The
// first matching rule wins:
//
//   - unknown kinds fold, or check when checking is free
//   - fold becomes check when checking is free
//   - check facing a bet becomes fold
//   - call ignores amount; nothing owed checks, a short stack goes all-in
//   - bet when betting is not allowed checks or folds; below the minimum
//     checks; above the stack goes all-in
//   - raise when raising is not allowed calls or folds; a total below
//     betToCall+minRaise calls, or checks when nothing is owed; above the
//     stack goes all-in
//   - all-in with an empty stack checks or folds
func ValidateAction(seat int, kind ActionKind, amount int, players []PlayerPublicInfo, betToCall, minRaise int) (Action, Correction) {
	p := players[seat]
	legal := Legal(seat, players, betToCall, minRaise)
	act := func(k ActionKind, amt int, c Correction) (Action, Correction) {
		return Action{Seat: seat, Kind: k, Amount: amt}, c
	}
	checkOrFold := func(c Correction) (Action, Correction) {
		if legal.Check {
			return act(ActionCheck, 0, c)
		}
		return act(ActionFold, 0, c)
	}

	switch ParseActionKind(string(kind)) {
	case ActionFold:
		if legal.Check {
			return act(ActionCheck, 0, ReasonFoldWhenFree)
		}
		return act(ActionFold, 0, Accepted)

	case ActionCheck:
		if legal.Check {
			return act(ActionCheck, 0, Accepted)
		}
		return act(ActionFold, 0, ReasonCheckFacingBet)

	case ActionCall:
		switch {
		case legal.CallAmount == 0:
			return act(ActionCheck, 0, ReasonCallNothing)
		case legal.Call:
			return act(ActionCall, legal.CallAmount, Accepted)
		case p.Stack == 0:
			return act(ActionFold, 0, ReasonCallExceedsStack)
		default:
			return act(ActionAllIn, p.Stack, ReasonCallExceedsStack)
		}

	case ActionBet:
		switch {
		case !legal.Bet:
			return checkOrFold(ReasonBetNotAllowed)
		case amount < legal.MinBet:
			return act(ActionCheck, 0, ReasonBetBelowMinimum)
		case amount > p.Stack:
			return act(ActionAllIn, p.Stack, ReasonBetExceedsStack)
		default:
			return act(ActionBet, amount, Accepted)
		}

	case ActionRaise:
		switch {
		case !legal.Raise:
			if legal.Call {
				return act(ActionCall, legal.CallAmount, ReasonRaiseNotAllowed)
			}
			return act(ActionFold, 0, ReasonRaiseNotAllowed)
		case amount+p.CurrentBet < legal.MinRaise:
			if legal.CallAmount == 0 {
				return act(ActionCheck, 0, ReasonRaiseBelowMinimum)
			}
			return act(ActionCall, legal.CallAmount, ReasonRaiseBelowMinimum)
		case amount > p.Stack:
			return act(ActionAllIn, p.Stack, ReasonRaiseExceedsStack)
		default:
			return act(ActionRaise, amount, Accepted)
		}

	case ActionAllIn:
		if p.Stack == 0 {
			return checkOrFold(ReasonAllInEmptyStack)
		}
		return act(ActionAllIn, p.Stack, Accepted)

	default:
		return checkOrFold(ReasonUnknownAction)
	}
}

// NextMinRaise returns the street's minimum raise after the bet level moves
// from prevBet to newBet. Increments smaller than the current minimum, such
// as a short all-in, leave it unchanged.
func NextMinRaise(minRaise, prevBet, newBet int) int {
	if inc := newBet - prevBet; inc >= minRaise {
		return inc
	}
	return minRaise
}
