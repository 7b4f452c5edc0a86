package deck

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShuffledHas52UniqueCards(t *testing.T) {
	d := NewShuffledWithRNG(rand.New(rand.NewSource(1)))
	require.Equal(t, 52, d.Remaining())

	seen := make(map[Card]bool)
	for {
		card, ok := d.Deal()
		if !ok {
			break
		}
		assert.False(t, seen[card], "duplicate card %s", card)
		seen[card] = true
	}
	assert.Len(t, seen, 52)
}

func TestDealHoleAlternates(t *testing.T) {
	d := NewShuffledWithRNG(rand.New(rand.NewSource(2)))

	// Record the deal order, then confirm one card per player per pass
	top := make([]Card, 6)
	probe := NewShuffledWithRNG(rand.New(rand.NewSource(2)))
	for i := range top {
		top[i], _ = probe.Deal()
	}

	hands := d.DealHole(3)
	require.Len(t, hands, 3)
	for i, hand := range hands {
		require.Len(t, hand, 2)
		assert.Equal(t, top[i], hand[0])
		assert.Equal(t, top[i+3], hand[1])
	}
	assert.Equal(t, 46, d.Remaining())
}

func TestDealCommunityBurnsOne(t *testing.T) {
	d := NewShuffledWithRNG(rand.New(rand.NewSource(3)))

	probe := NewShuffledWithRNG(rand.New(rand.NewSource(3)))
	probe.Deal() // the burn card
	want := make([]Card, 3)
	for i := range want {
		want[i], _ = probe.Deal()
	}

	flop := d.DealCommunity(3)
	require.Len(t, flop, 3)
	assert.Equal(t, want, flop)
	assert.Equal(t, 48, d.Remaining())
}

func TestEmptyDeckIsSilentNoOp(t *testing.T) {
	d := NewShuffledWithRNG(rand.New(rand.NewSource(4)))
	for d.Remaining() > 0 {
		d.Deal()
	}

	assert.Nil(t, d.DealHole(2))
	assert.Nil(t, d.DealCommunity(3))

	_, ok := d.Deal()
	assert.False(t, ok)
}

func TestFullDealHasNoDuplicates(t *testing.T) {
	// 8 players, all five streets: 16 hole + 3 burns + 5 community
	d := NewShuffledWithRNG(rand.New(rand.NewSource(5)))

	seen := make(map[Card]bool)
	record := func(cards []Card) {
		for _, c := range cards {
			require.False(t, seen[c], "duplicate card %s", c)
			seen[c] = true
		}
	}

	for _, hand := range d.DealHole(8) {
		record(hand)
	}
	record(d.DealCommunity(3))
	record(d.DealCommunity(1))
	record(d.DealCommunity(1))

	assert.Len(t, seen, 21)
	assert.Equal(t, 52-21-3, d.Remaining())
}
