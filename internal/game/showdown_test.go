package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokernight/internal/deck"
	"github.com/lox/pokernight/internal/evaluator"
)

var suitLetters = map[byte]deck.Suit{
	'h': deck.Hearts,
	'd': deck.Diamonds,
	'c': deck.Clubs,
	's': deck.Spades,
}

// holeCards builds cards from short specs like "Kh" or "10s"
func holeCards(t *testing.T, specs ...string) []deck.Card {
	t.Helper()
	cards := make([]deck.Card, 0, len(specs))
	for _, s := range specs {
		suit, ok := suitLetters[s[len(s)-1]]
		require.True(t, ok, "bad suit in %q", s)
		rank, err := deck.ParseRank(s[:len(s)-1])
		require.NoError(t, err)
		cards = append(cards, deck.Card{Suit: suit, Rank: rank})
	}
	return cards
}

func TestShowdownSingleContenderSkipsEvaluation(t *testing.T) {
	g := newTestGame(t, 1000, 1000)
	g.Players[1].Folded = true
	g.Pot = 75
	g.Phase = River

	g.beginShowdown()

	assert.Equal(t, Finished, g.Phase)
	assert.Equal(t, 0, g.Pot)
	assert.Equal(t, "p0", g.WinnerID)
	assert.Equal(t, 1075, g.Players[0].Chips)
	assert.Equal(t, "Player0 wins 75 chips!", g.LastAction)
}

func TestShowdownBestHandWins(t *testing.T) {
	g := newTestGame(t, 1000, 1000)
	g.Pot = 200
	g.Phase = River
	g.Community = holeCards(t, "Kh", "7d", "2c", "9s", "4h")
	g.Players[0].HoleCards = holeCards(t, "Kd", "Ks") // trip kings
	g.Players[1].HoleCards = holeCards(t, "Ah", "Qd") // ace high

	g.beginShowdown()

	assert.Equal(t, "p0", g.WinnerID)
	assert.Equal(t, 1200, g.Players[0].Chips)
	assert.Equal(t, 1000, g.Players[1].Chips)
	assert.Equal(t, "Player0 wins 200 chips with Three of a Kind, Ks!", g.LastAction)
}

func TestShowdownSplitPotDropsRemainder(t *testing.T) {
	g := newTestGame(t, 1000, 1000)
	g.Pot = 101
	g.Phase = River
	// Both players play the board; their hole cards cannot improve a
	// board straight
	g.Community = holeCards(t, "5h", "6d", "7c", "8s", "9h")
	g.Players[0].HoleCards = holeCards(t, "2d", "3c")
	g.Players[1].HoleCards = holeCards(t, "2h", "3s")

	g.beginShowdown()

	assert.Equal(t, Finished, g.Phase)
	assert.Equal(t, 1050, g.Players[0].Chips, "each winner gets the floored share")
	assert.Equal(t, 1050, g.Players[1].Chips)
	assert.Equal(t, 0, g.Pot, "the odd chip is dropped, not carried")
	assert.Equal(t, "Split pot! Player0, Player1 each win 50 chips!", g.LastAction)
}

func TestShowdownNoContenders(t *testing.T) {
	g := newTestGame(t, 1000, 1000)
	g.Players[0].Folded = true
	g.Players[1].Folded = true
	g.Pot = 60

	g.beginShowdown()

	assert.Equal(t, Finished, g.Phase)
	assert.Equal(t, 0, g.Pot)
	assert.Empty(t, g.WinnerID)
}

func TestHandResult(t *testing.T) {
	g := newTestGame(t, 1000, 1000)
	p := g.Players[0]
	p.HoleCards = holeCards(t, "9h", "9d")

	_, ok := g.HandResult(p)
	assert.False(t, ok, "no result before the flop")

	g.Community = holeCards(t, "9c", "4s", "2h")
	result, ok := g.HandResult(p)
	require.True(t, ok)
	assert.Equal(t, evaluator.ThreeOfAKind, result.Category)
	assert.Equal(t, "Three of a Kind, 9s", result.Label)
}
