package game

import "github.com/lox/pokertourney/sdk"

// Uncontested is the category reported for a pot won without a showdown.
const Uncontested = "uncontested"

// Winning is what one seat won in a hand, summed over every pot it took.
type Winning struct {
	Category string `json:"category"`
	Amount   int    `json:"amount"`
}

// HandResult summarises one finished hand.
type HandResult struct {
	Round          int                 `json:"round"`
	Button         int                 `json:"button"`
	Winners        map[int]Winning     `json:"winners"`
	Eliminated     []int               `json:"eliminated"`
	FinalStreet    sdk.Street          `json:"final_street"`
	Showdown       bool                `json:"showdown"`
	ShowdownDetail *sdk.ShowdownDetail `json:"showdown_detail,omitempty"`
	TotalPot       int                 `json:"total_pot"`
	Contributed    []int               `json:"contributed"`
	EndedEarly     bool                `json:"ended_early"`
}
