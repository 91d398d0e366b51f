package poker

import (
	"testing"

	ph "github.com/paulhankin/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertourney/internal/randutil"
)

func hole(s string) HoleCards {
	c := MustParseCards(s)
	return HoleCards{c[0], c[1]}
}

func TestEvaluateCategories(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		hole      string
		board     string
		category  Category
		tiebreaks []int
	}{
		{"royal flush", "Ah Kh", "Qh Jh Th 2d 3c", RoyalFlush, []int{14}},
		{"straight flush", "9s 8s", "7s 6s 5s Ad Ac", StraightFlush, []int{9}},
		{"steel wheel", "As 2s", "3s 4s 5s Kd Kc", StraightFlush, []int{5}},
		{"quads", "9h 9d", "9s 9c Kd 2c 3h", FourOfAKind, []int{9, 13}},
		{"quads kicker from pair on board", "Ah Ad", "As Ac Kd Kc 2h", FourOfAKind, []int{14, 13}},
		{"full house", "Ah Ad", "As Kc Kd Qh 2c", FullHouse, []int{14, 13}},
		{"two trips make a full house", "9h 9d", "9s 5c 5d 5h 2c", FullHouse, []int{9, 5}},
		{"flush", "Ah 3h", "9h 7h 2h Kd Qh", Flush, []int{14, 12, 9, 7, 3}},
		{"straight", "9h 8d", "7s 6c 5h Kd 2c", Straight, []int{9}},
		{"wheel", "Ah 2d", "3s 4c 5h Kd Kc", Straight, []int{5}},
		{"broadway over wheel", "Ah Kd", "Qs Jc Th 2d 3c", Straight, []int{14}},
		{"trips", "7h 7d", "7s Kc 2h 9d 3c", ThreeOfAKind, []int{7, 13, 9}},
		{"two pair", "Ah Ad", "Kc Kd 9h 3c 2s", TwoPair, []int{14, 13, 9}},
		{"three pair kicker uses third pair", "Ah Ad", "Kc Kd Qh Qc 2s", TwoPair, []int{14, 13, 12}},
		{"one pair", "Jh Jd", "Ac 9d 7h 3c 2s", OnePair, []int{11, 14, 9, 7}},
		{"high card", "Ah Jd", "9c 7d 5h 3c 2s", HighCard, []int{14, 11, 9, 7, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Evaluate(hole(tt.hole), MustParseCards(tt.board))
			require.NoError(t, err)
			assert.Equal(t, tt.category, v.Category)
			assert.Equal(t, tt.tiebreaks, v.Tiebreaks)
		})
	}
}

func TestEvaluateFewerCards(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		hole      string
		board     string
		category  Category
		tiebreaks []int
	}{
		{"pocket pair preflop", "Ah Ad", "", OnePair, []int{14}},
		{"high card preflop", "Ah 7d", "", HighCard, []int{14, 7}},
		{"two pair without kicker", "Ah Ad", "Kc Kd", TwoPair, []int{14, 13, NoKicker}},
		{"trips with one kicker", "Ah Ad", "As 7c", ThreeOfAKind, []int{14, 7}},
		{"quads without kicker", "Ah Ad", "As Ac", FourOfAKind, []int{14, NoKicker}},
		{"quads with kicker", "Ah Ad", "As Ac Kd", FourOfAKind, []int{14, 13}},
		{"full house on the flop", "Ah Ad", "As Kc Kd", FullHouse, []int{14, 13}},
		{"straight on the turn", "5h 6d", "7c 8s 9h", Straight, []int{9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Evaluate(hole(tt.hole), MustParseCards(tt.board))
			require.NoError(t, err)
			assert.Equal(t, tt.category, v.Category)
			assert.Equal(t, tt.tiebreaks, v.Tiebreaks)
		})
	}
}

func TestEvaluateRejectsBadInput(t *testing.T) {
	t.Parallel()
	_, err := EvaluateCards(MustParseCards("Ah"))
	assert.ErrorIs(t, err, ErrInvalidHand)

	_, err = EvaluateCards(MustParseCards("Ah Kh Qh Jh Th 9h 8h 7h"))
	assert.ErrorIs(t, err, ErrInvalidHand)

	_, err = Evaluate(hole("Ah Ah"), nil)
	assert.ErrorIs(t, err, ErrInvalidHand)

	_, err = Evaluate(HoleCards{}, nil)
	assert.ErrorIs(t, err, ErrInvalidCard)
}

func TestCompare(t *testing.T) {
	t.Parallel()
	eval := func(h, b string) HandValue {
		v, err := Evaluate(hole(h), MustParseCards(b))
		require.NoError(t, err)
		return v
	}
	royal := eval("Ah Kh", "Qh Jh Th")
	sf := eval("9h 8h", "7h 6h 5h")
	assert.Equal(t, 1, Compare(royal, sf))
	assert.Equal(t, -1, Compare(sf, royal))

	pairA := eval("Ah Ad", "7c 4s 2h")
	pairK := eval("Kh Kd", "7c 4s 2h")
	assert.Equal(t, 1, Compare(pairA, pairK))

	assert.Equal(t, 0, Compare(eval("Ah Kd", "7c 4s 2h"), eval("Ac Kh", "7c 4s 2h")))

	// A present kicker beats the no-kicker sentinel only when it is higher.
	assert.Equal(t, 1, Compare(eval("Ah Ad", "Kc Kd 3s"), eval("Ah Ad", "Kc Kd")))
}

func TestDetermineWinners(t *testing.T) {
	t.Parallel()
	board := MustParseCards("2c 5d 7h Jc Ks")
	a := hole("9h 9d")
	b := hole("9s 9c")
	c := hole("3h 4c")

	t.Run("tie returns both", func(t *testing.T) {
		winners, err := DetermineWinners([]*HoleCards{&a, &b, &c}, board, []int{0, 1, 2})
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1}, winners)
	})

	t.Run("nil hole cards and ineligible seats are skipped", func(t *testing.T) {
		winners, err := DetermineWinners([]*HoleCards{&a, nil, &c}, board, []int{1, 2})
		require.NoError(t, err)
		assert.Equal(t, []int{2}, winners)
	})

	t.Run("no contenders", func(t *testing.T) {
		winners, err := DetermineWinners([]*HoleCards{nil, nil}, board, []int{0, 1})
		require.NoError(t, err)
		assert.Empty(t, winners)
	})
}

func toOracle(t *testing.T, c Card) ph.Card {
	r := int(c.Rank)
	if c.Rank == Ace {
		r = 1
	}
	oc, err := ph.MakeCard(ph.Suit(c.Suit), ph.Rank(r))
	require.NoError(t, err)
	return oc
}

// The ordering of seven-card hands must agree with an independent evaluator.
func TestCompareAgreesWithOracle(t *testing.T) {
	t.Parallel()
	rng := randutil.New(99)
	for i := range 3000 {
		d := NewDeck(rng)
		d.Shuffle()
		cards, err := d.DealMany(9)
		require.NoError(t, err)
		board := cards[4:]

		va, err := Evaluate(HoleCards{cards[0], cards[1]}, board)
		require.NoError(t, err)
		vb, err := Evaluate(HoleCards{cards[2], cards[3]}, board)
		require.NoError(t, err)

		var ha, hb [7]ph.Card
		for j, c := range append([]Card{cards[0], cards[1]}, board...) {
			ha[j] = toOracle(t, c)
		}
		for j, c := range append([]Card{cards[2], cards[3]}, board...) {
			hb[j] = toOracle(t, c)
		}
		sa, sb := ph.Eval7(&ha), ph.Eval7(&hb)
		want := 0
		switch {
		case sa > sb:
			want = 1
		case sa < sb:
			want = -1
		}
		require.Equal(t, want, Compare(va, vb), "deal %d: %v vs %v on %v (%s vs %s)", i, cards[:2], cards[2:4], board, va, vb)
	}
}
