package poker

import (
	"testing"

	"github.com/lox/pokertourney/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckCanonical(t *testing.T) {
	t.Parallel()
	d := NewDeck(randutil.New(1))
	require.Equal(t, 52, d.Remaining())

	seen := make(map[Card]bool)
	for range 52 {
		c, err := d.Deal()
		require.NoError(t, err)
		require.True(t, c.Valid())
		require.False(t, seen[c], "duplicate %s", c)
		seen[c] = true
	}
	_, err := d.Deal()
	assert.ErrorIs(t, err, ErrEmptyDeck)
}

func TestDeckShuffleSeedIsDeterministic(t *testing.T) {
	t.Parallel()
	a := NewDeck(nil)
	b := NewDeck(nil)
	a.ShuffleSeed(42)
	b.ShuffleSeed(42)

	ca, err := a.DealMany(52)
	require.NoError(t, err)
	cb, err := b.DealMany(52)
	require.NoError(t, err)
	assert.Equal(t, ca, cb)

	c := NewDeck(nil)
	c.ShuffleSeed(43)
	cc, err := c.DealMany(52)
	require.NoError(t, err)
	assert.NotEqual(t, ca, cc)
}

func TestDeckDealManyIsAtomic(t *testing.T) {
	t.Parallel()
	d := NewDeck(randutil.New(7))
	d.Shuffle()
	_, err := d.DealMany(50)
	require.NoError(t, err)

	_, err = d.DealMany(3)
	assert.ErrorIs(t, err, ErrEmptyDeck)
	assert.Equal(t, 2, d.Remaining(), "failed DealMany must not remove cards")

	cards, err := d.DealMany(2)
	require.NoError(t, err)
	assert.Len(t, cards, 2)
}

func TestDeckBurnAndReset(t *testing.T) {
	t.Parallel()
	d := NewDeck(randutil.New(3))
	d.Shuffle()
	require.NoError(t, d.Burn())
	assert.Equal(t, 51, d.Remaining())

	d.Reset()
	assert.Equal(t, 52, d.Remaining())
	require.NoError(t, d.Burn())
	next, err := d.Deal()
	require.NoError(t, err)
	assert.Equal(t, NewCard(Three, Hearts), next, "burn discards the top card")

	_, err = d.DealMany(50)
	require.NoError(t, err)
	assert.ErrorIs(t, d.Burn(), ErrEmptyDeck)
}

func TestDeckStack(t *testing.T) {
	t.Parallel()
	d := NewDeck(randutil.New(9))
	d.Shuffle()
	top := MustParseCards("As Ks Qs")
	require.NoError(t, d.Stack(top))
	assert.Equal(t, 52, d.Remaining())

	got, err := d.DealMany(3)
	require.NoError(t, err)
	assert.Equal(t, top, got)

	assert.ErrorIs(t, d.Stack(MustParseCards("As")), ErrInvalidCard, "dealt cards cannot be stacked")
	assert.ErrorIs(t, d.Stack(MustParseCards("2h 2h")), ErrInvalidCard)
}
