package poker

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/lox/pokertourney/internal/randutil"
)

// ErrEmptyDeck is returned when more cards are requested than remain.
var ErrEmptyDeck = errors.New("deck is empty")

// Deck is a standard 52-card deck. Cards are dealt from the front.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates a deck in canonical order. The rng drives Shuffle; a nil
// rng is seeded from entropy.
func NewDeck(rng *rand.Rand) *Deck {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	d := &Deck{rng: rng}
	d.Reset()
	return d
}

// Reset restores the canonical 52 cards.
func (d *Deck) Reset() {
	d.cards = d.cards[:0]
	for suit := Hearts; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
}

// Shuffle permutes the remaining cards with the deck's random source.
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// ShuffleSeed reseeds the deck's random source and shuffles. Two decks in the
// same state shuffled with the same seed produce the same sequence.
func (d *Deck) ShuffleSeed(seed int64) {
	d.rng = randutil.New(seed)
	d.Shuffle()
}

// Deal removes and returns the next card.
func (d *Deck) Deal() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, nil
}

// DealMany removes and returns the next n cards. Nothing is removed when
// fewer than n remain.
func (d *Deck) DealMany(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, fmt.Errorf("deal %d of %d: %w", n, len(d.cards), ErrEmptyDeck)
	}
	out := make([]Card, n)
	copy(out, d.cards[:n])
	d.cards = d.cards[n:]
	return out, nil
}

// Burn discards the next card face down.
func (d *Deck) Burn() error {
	if _, err := d.Deal(); err != nil {
		return fmt.Errorf("burn: %w", err)
	}
	return nil
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Stack moves the given cards to the top of the deck in order, keeping the
// relative order of the rest. It is used to replay or rig a deal.
func (d *Deck) Stack(top []Card) error {
	rest := make([]Card, 0, len(d.cards))
	for _, c := range d.cards {
		if !slices.Contains(top, c) {
			rest = append(rest, c)
		}
	}
	if len(rest)+len(top) != len(d.cards) {
		return fmt.Errorf("%w: stacked cards must be distinct and still in the deck", ErrInvalidCard)
	}
	d.cards = append(slices.Clone(top), rest...)
	return nil
}
