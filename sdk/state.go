package sdk

import (
	"fmt"
	"maps"
	"slices"

	"github.com/lox/pokertourney/poker"
)

// NoSeat marks the absence of a seat, e.g. WhoseTurn between decisions.
const NoSeat = -1

// Street is one of the four betting rounds.
type Street uint8

const (
	Preflop Street = iota
	Flop
	Turn
	River
)

var streetNames = [...]string{"preflop", "flop", "turn", "river"}

func (s Street) String() string {
	if int(s) < len(streetNames) {
		return streetNames[s]
	}
	return fmt.Sprintf("street(%d)", s)
}

func (s Street) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Street) UnmarshalText(text []byte) error {
	i := slices.Index(streetNames[:], string(text))
	if i < 0 {
		return fmt.Errorf("unknown street %q", text)
	}
	*s = Street(i)
	return nil
}

// StreetForBoard maps a community card count to the street it belongs to.
func StreetForBoard(n int) Street {
	switch {
	case n >= 5:
		return River
	case n == 4:
		return Turn
	case n >= 3:
		return Flop
	default:
		return Preflop
	}
}

// PlayerPublicInfo is everything the table reveals about a seat.
type PlayerPublicInfo struct {
	Seat       int  `json:"seat"`
	Stack      int  `json:"stack"`
	CurrentBet int  `json:"current_bet"`
	Active     bool `json:"active"`
	Busted     bool `json:"busted"`
	AllIn      bool `json:"is_all_in"`
}

// Pot is an amount and the seats that can win it. Eligible is kept in seat
// order.
type Pot struct {
	Amount   int   `json:"amount"`
	Eligible []int `json:"eligible"`
}

// Blinds are the forced bets for a round.
type Blinds struct {
	Small int `json:"small"`
	Big   int `json:"big"`
}

// BlindSchedule maps the round number at which a level starts to its blinds.
type BlindSchedule map[int]Blinds

// StreetHistory is the append-only record of one street.
type StreetHistory struct {
	Street    Street       `json:"street"`
	Actions   []Action     `json:"actions"`
	Community []poker.Card `json:"community"`
}

// HandHistory holds one StreetHistory per street, indexed by Street.
type HandHistory [4]StreetHistory

// NewHandHistory returns an empty history with every street labelled.
func NewHandHistory() HandHistory {
	var h HandHistory
	for s := range h {
		h[s].Street = Street(s)
	}
	return h
}

// Empty reports whether nothing was recorded.
func (h HandHistory) Empty() bool {
	for _, s := range h {
		if len(s.Actions) > 0 || len(s.Community) > 0 {
			return false
		}
	}
	return true
}

// ShowdownDetail is revealed when a hand reaches showdown.
type ShowdownDetail struct {
	Eligible   []int                   `json:"eligible"`
	Categories map[int]poker.Category  `json:"categories"`
	HoleCards  map[int]poker.HoleCards `json:"hole_cards"`
}

// HandRecord is an archived hand.
type HandRecord struct {
	Round    int             `json:"round"`
	History  HandHistory     `json:"history"`
	Showdown *ShowdownDetail `json:"showdown,omitempty"`
}

// PublicState is a snapshot of the table handed to an agent. It is a private
// copy; mutating it has no effect on the game.
type PublicState struct {
	Round     int                `json:"round"`
	Players   []PlayerPublicInfo `json:"players"`
	Button    int                `json:"button"`
	Community []poker.Card       `json:"community"`
	TotalPot  int                `json:"total_pot"`
	Pots      []Pot              `json:"pots"`
	Blinds    Blinds             `json:"blinds"`
	Schedule  BlindSchedule      `json:"schedule"`
	MinRaise  int                `json:"min_raise"`
	WhoseTurn int                `json:"whose_turn"`
	History   HandHistory        `json:"history"`
	Archive   []HandRecord       `json:"archive"`
}

// ActiveCount returns how many seats are still contesting the hand.
func (s PublicState) ActiveCount() int {
	n := 0
	for _, p := range s.Players {
		if p.Active {
			n++
		}
	}
	return n
}

// NonBustedCount returns how many seats are still in the tournament.
func (s PublicState) NonBustedCount() int {
	n := 0
	for _, p := range s.Players {
		if !p.Busted {
			n++
		}
	}
	return n
}

// Street is derived from the number of community cards.
func (s PublicState) Street() Street {
	return StreetForBoard(len(s.Community))
}

// BetToCall is the highest current bet on this street.
func (s PublicState) BetToCall() int {
	return BetToCall(s.Players)
}

// Legal lists what seat may do in this state.
func (s PublicState) Legal(seat int) LegalActions {
	return Legal(seat, s.Players, s.BetToCall(), s.MinRaise)
}

// Clone returns a deep copy.
func (s PublicState) Clone() PublicState {
	out := s
	out.Players = slices.Clone(s.Players)
	out.Community = slices.Clone(s.Community)
	out.Pots = clonePots(s.Pots)
	out.Schedule = maps.Clone(s.Schedule)
	out.History = s.History.Clone()
	if s.Archive != nil {
		out.Archive = make([]HandRecord, len(s.Archive))
		for i, r := range s.Archive {
			out.Archive[i] = r.Clone()
		}
	}
	return out
}

func clonePots(pots []Pot) []Pot {
	if pots == nil {
		return nil
	}
	out := make([]Pot, len(pots))
	for i, p := range pots {
		out[i] = Pot{Amount: p.Amount, Eligible: slices.Clone(p.Eligible)}
	}
	return out
}

// Clone returns a deep copy.
func (h HandHistory) Clone() HandHistory {
	out := h
	for i := range out {
		out[i].Actions = slices.Clone(h[i].Actions)
		out[i].Community = slices.Clone(h[i].Community)
	}
	return out
}

// Clone returns a deep copy.
func (r HandRecord) Clone() HandRecord {
	out := HandRecord{Round: r.Round, History: r.History.Clone()}
	if r.Showdown != nil {
		out.Showdown = &ShowdownDetail{
			Eligible:   slices.Clone(r.Showdown.Eligible),
			Categories: maps.Clone(r.Showdown.Categories),
			HoleCards:  maps.Clone(r.Showdown.HoleCards),
		}
	}
	return out
}
