package poker

import (
	"errors"
	"fmt"
	"slices"
)

// ErrInvalidHand is returned for card sets the evaluator cannot rank.
var ErrInvalidHand = errors.New("invalid hand")

// Category enumerates hand categories from weakest to strongest.
type Category uint8

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

var categoryNames = [...]string{
	"high_card",
	"one_pair",
	"two_pair",
	"three_of_a_kind",
	"straight",
	"flush",
	"full_house",
	"four_of_a_kind",
	"straight_flush",
	"royal_flush",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", c)
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Category) UnmarshalText(text []byte) error {
	i := slices.Index(categoryNames[:], string(text))
	if i < 0 {
		return fmt.Errorf("unknown hand category %q", text)
	}
	*c = Category(i)
	return nil
}

// NoKicker fills a fixed kicker slot when the hand is too small to supply a
// real card. It is the lowest real rank, so a missing kicker never beats a
// present one.
const NoKicker = int(Two)

// HandValue is a ranked hand: its category and the descending tiebreak ranks
// that order hands within the category.
type HandValue struct {
	Category  Category `json:"category"`
	Tiebreaks []int    `json:"tiebreaks"`
}

func (v HandValue) String() string {
	return fmt.Sprintf("%s %v", v.Category, v.Tiebreaks)
}

// Evaluate ranks two hole cards together with zero to five community cards.
func Evaluate(hole HoleCards, community []Card) (HandValue, error) {
	cards := make([]Card, 0, 7)
	cards = append(cards, hole[0], hole[1])
	cards = append(cards, community...)
	return EvaluateCards(cards)
}

type rankGroup struct {
	rank  int
	count int
}

// EvaluateCards ranks between two and seven distinct cards.
func EvaluateCards(cards []Card) (HandValue, error) {
	if len(cards) < 2 || len(cards) > 7 {
		return HandValue{}, fmt.Errorf("%w: %d cards", ErrInvalidHand, len(cards))
	}

	var (
		counts [Ace + 1]int
		suited [Spades + 1][]int
		mask   uint16
		seen   = make(map[Card]struct{}, len(cards))
	)
	for _, c := range cards {
		if !c.Valid() {
			return HandValue{}, fmt.Errorf("%w: %w", ErrInvalidHand, ErrInvalidCard)
		}
		if _, dup := seen[c]; dup {
			return HandValue{}, fmt.Errorf("%w: duplicate %s", ErrInvalidHand, c)
		}
		seen[c] = struct{}{}
		counts[c.Rank]++
		suited[c.Suit] = append(suited[c.Suit], int(c.Rank))
		mask |= 1 << c.Rank
	}

	flushSuit := -1
	for s, ranks := range suited {
		if len(ranks) >= 5 {
			flushSuit = s
		}
	}

	if flushSuit >= 0 {
		var suitMask uint16
		for _, r := range suited[flushSuit] {
			suitMask |= 1 << r
		}
		if high := straightHigh(suitMask); high > 0 {
			if high == int(Ace) {
				return HandValue{Category: RoyalFlush, Tiebreaks: []int{high}}, nil
			}
			return HandValue{Category: StraightFlush, Tiebreaks: []int{high}}, nil
		}
	}

	groups := make([]rankGroup, 0, len(cards))
	for r := int(Ace); r >= int(Two); r-- {
		if counts[r] > 0 {
			groups = append(groups, rankGroup{rank: r, count: counts[r]})
		}
	}
	// Stable keeps equal counts in descending rank order.
	slices.SortStableFunc(groups, func(a, b rankGroup) int { return b.count - a.count })

	switch {
	case groups[0].count == 4:
		return HandValue{Category: FourOfAKind, Tiebreaks: []int{groups[0].rank, kicker(groups, 1)}}, nil
	case groups[0].count == 3 && len(groups) > 1 && groups[1].count >= 2:
		return HandValue{Category: FullHouse, Tiebreaks: []int{groups[0].rank, groups[1].rank}}, nil
	case flushSuit >= 0:
		ranks := slices.Clone(suited[flushSuit])
		slices.Sort(ranks)
		slices.Reverse(ranks)
		return HandValue{Category: Flush, Tiebreaks: ranks[:5]}, nil
	}

	if high := straightHigh(mask); high > 0 {
		return HandValue{Category: Straight, Tiebreaks: []int{high}}, nil
	}

	switch {
	case groups[0].count == 3:
		return HandValue{Category: ThreeOfAKind, Tiebreaks: withKickers(groups, 1, 2)}, nil
	case groups[0].count == 2 && len(groups) > 1 && groups[1].count == 2:
		return HandValue{Category: TwoPair, Tiebreaks: []int{groups[0].rank, groups[1].rank, kicker(groups, 2)}}, nil
	case groups[0].count == 2:
		return HandValue{Category: OnePair, Tiebreaks: withKickers(groups, 1, 3)}, nil
	default:
		return HandValue{Category: HighCard, Tiebreaks: withKickers(groups, 0, 5)}, nil
	}
}

// kicker returns the highest rank outside the first skip groups, or NoKicker.
func kicker(groups []rankGroup, skip int) int {
	best := 0
	for _, g := range groups[skip:] {
		best = max(best, g.rank)
	}
	if best == 0 {
		return NoKicker
	}
	return best
}

// withKickers returns the ranks of the first lead groups followed by up to n
// kicker ranks, highest first, limited by the cards available.
func withKickers(groups []rankGroup, lead, n int) []int {
	out := make([]int, 0, lead+n)
	for _, g := range groups[:lead] {
		out = append(out, g.rank)
	}
	rest := make([]int, 0, len(groups)-lead)
	for _, g := range groups[lead:] {
		rest = append(rest, g.rank)
	}
	slices.Sort(rest)
	slices.Reverse(rest)
	if len(rest) > n {
		rest = rest[:n]
	}
	return append(out, rest...)
}

// straightHigh returns the top rank of the best five-card run in mask, or 0.
// The ace also plays low to make the wheel.
func straightHigh(mask uint16) int {
	if mask&(1<<Ace) != 0 {
		mask |= 1 << 1
	}
	for high := int(Ace); high >= int(Five); high-- {
		run := uint16(0x1f) << (high - 4)
		if mask&run == run {
			return high
		}
	}
	return 0
}

// Compare returns 1 if a beats b, -1 if b beats a and 0 for a tie.
func Compare(a, b HandValue) int {
	if a.Category != b.Category {
		if a.Category > b.Category {
			return 1
		}
		return -1
	}
	for i := 0; i < len(a.Tiebreaks) && i < len(b.Tiebreaks); i++ {
		switch {
		case a.Tiebreaks[i] > b.Tiebreaks[i]:
			return 1
		case a.Tiebreaks[i] < b.Tiebreaks[i]:
			return -1
		}
	}
	return 0
}

// DetermineWinners evaluates the eligible seats that still hold cards and
// returns every seat tied for the best hand, in eligible order. hole is
// indexed by seat; nil entries are skipped.
func DetermineWinners(hole []*HoleCards, community []Card, eligible []int) ([]int, error) {
	var (
		winners []int
		best    HandValue
	)
	for _, seat := range eligible {
		if seat < 0 || seat >= len(hole) || hole[seat] == nil {
			continue
		}
		v, err := Evaluate(*hole[seat], community)
		if err != nil {
			return nil, fmt.Errorf("seat %d: %w", seat, err)
		}
		switch cmp := Compare(v, best); {
		case winners == nil || cmp > 0:
			winners = []int{seat}
			best = v
		case cmp == 0:
			winners = append(winners, seat)
		}
	}
	return winners, nil
}
