package deck

import (
	"math/rand"
	"time"
)

// Deck is an ordered sequence of the 52 distinct cards, owned by a single
// game and consumed from the front as cards are dealt.
type Deck struct {
	cards []Card
}

// NewShuffled creates a standard 52-card deck in uniformly random order
func NewShuffled() *Deck {
	return NewShuffledWithRNG(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewShuffledWithRNG creates a shuffled deck using the given RNG,
// for deterministic tests
func NewShuffledWithRNG(rng *rand.Rand) *Deck {
	d := &Deck{cards: make([]Card, 0, 52)}
	for suit := Hearts; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}

	// Fisher-Yates
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}

	return d
}

// Deal removes and returns the top card from the deck
func (d *Deck) Deal() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}

	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// DealHole deals two hole cards to each of n players, one card per player
// per pass. Result is indexed by player. A no-op on an empty deck: callers
// must guard against starting a hand without a fresh deck.
func (d *Deck) DealHole(n int) [][]Card {
	if len(d.cards) == 0 || n <= 0 {
		return nil
	}

	hands := make([][]Card, n)
	for pass := 0; pass < 2; pass++ {
		for i := 0; i < n; i++ {
			card, ok := d.Deal()
			if !ok {
				return hands
			}
			hands[i] = append(hands[i], card)
		}
	}
	return hands
}

// DealCommunity burns one card and then deals n face up.
// A no-op on an empty deck.
func (d *Deck) DealCommunity(n int) []Card {
	if len(d.cards) == 0 {
		return nil
	}

	d.Deal() // burn

	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		card, ok := d.Deal()
		if !ok {
			break
		}
		cards = append(cards, card)
	}
	return cards
}

// Remaining returns the number of cards left in the deck
func (d *Deck) Remaining() int {
	return len(d.cards)
}
