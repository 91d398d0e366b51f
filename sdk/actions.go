package sdk

import "strings"

// ActionKind names an action. Agents may return any string; unknown kinds
// are corrected by ValidateAction.
type ActionKind string

const (
	ActionSmallBlind ActionKind = "small_blind"
	ActionBigBlind   ActionKind = "big_blind"
	ActionFold       ActionKind = "fold"
	ActionCheck      ActionKind = "check"
	ActionCall       ActionKind = "call"
	ActionBet        ActionKind = "bet"
	ActionRaise      ActionKind = "raise"
	ActionAllIn      ActionKind = "all-in"
)

// ParseActionKind normalises case and surrounding whitespace.
func ParseActionKind(s string) ActionKind {
	return ActionKind(strings.ToLower(strings.TrimSpace(s)))
}

// Playable reports whether an agent may request this kind. Blind posts are
// recorded by the table but never chosen.
func (k ActionKind) Playable() bool {
	switch k {
	case ActionFold, ActionCheck, ActionCall, ActionBet, ActionRaise, ActionAllIn:
		return true
	}
	return false
}

// Action is one recorded entry in a street's history. Amount is the number
// of chips moved from the seat's stack by this action.
type Action struct {
	Seat   int        `json:"seat"`
	Kind   ActionKind `json:"kind"`
	Amount int        `json:"amount"`
}

// Decision is what an agent answers when asked to act. For bet and raise,
// Amount is the number of chips to add from the stack; it is ignored for the
// other kinds.
type Decision struct {
	Kind      ActionKind `json:"kind"`
	Amount    int        `json:"amount,omitempty"`
	Reasoning string     `json:"reasoning,omitempty"`
}

func newDecision(kind ActionKind, amount int, reasoning []string) Decision {
	d := Decision{Kind: kind, Amount: amount}
	if len(reasoning) > 0 {
		d.Reasoning = reasoning[0]
	}
	return d
}

// Fold creates a fold decision
func Fold(reasoning ...string) Decision { return newDecision(ActionFold, 0, reasoning) }

// Check creates a check decision
func Check(reasoning ...string) Decision { return newDecision(ActionCheck, 0, reasoning) }

// Call creates a call decision
func Call(reasoning ...string) Decision { return newDecision(ActionCall, 0, reasoning) }

// Bet creates a bet of amount chips
func Bet(amount int, reasoning ...string) Decision {
	return newDecision(ActionBet, amount, reasoning)
}

// Raise creates a raise adding amount chips from the stack
func Raise(amount int, reasoning ...string) Decision {
	return newDecision(ActionRaise, amount, reasoning)
}

// AllIn creates an all-in decision
func AllIn(reasoning ...string) Decision { return newDecision(ActionAllIn, 0, reasoning) }
