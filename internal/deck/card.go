package deck

import (
	"encoding/json"
	"fmt"
)

// Suit represents a card suit
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// String returns the wire name of the suit
func (s Suit) String() string {
	switch s {
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	case Clubs:
		return "clubs"
	case Spades:
		return "spades"
	default:
		return "?"
	}
}

// Rank represents a card rank. The underlying int doubles as the
// comparison value (Ace high), so every rank maps to a defined value.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return fmt.Sprintf("%d", int(r))
	}
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the string representation of a card (e.g., "A♠")
func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, suitSymbol(c.Suit))
}

func suitSymbol(s Suit) string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// Value returns the numeric value of the card for comparison, Ace high (14)
func (c Card) Value() int {
	return int(c.Rank)
}

type cardJSON struct {
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

// MarshalJSON encodes the card in the {"suit":"hearts","rank":"A"} wire format
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{Suit: c.Suit.String(), Rank: c.Rank.String()})
}

// UnmarshalJSON decodes a card from the wire format
func (c *Card) UnmarshalJSON(data []byte) error {
	var cj cardJSON
	if err := json.Unmarshal(data, &cj); err != nil {
		return err
	}

	suit, err := ParseSuit(cj.Suit)
	if err != nil {
		return err
	}
	rank, err := ParseRank(cj.Rank)
	if err != nil {
		return err
	}

	c.Suit = suit
	c.Rank = rank
	return nil
}

// ParseSuit parses a wire suit name
func ParseSuit(s string) (Suit, error) {
	for suit := Hearts; suit <= Spades; suit++ {
		if suit.String() == s {
			return suit, nil
		}
	}
	return 0, fmt.Errorf("unknown suit %q", s)
}

// ParseRank parses a rank string ("2".."10", "J", "Q", "K", "A")
func ParseRank(s string) (Rank, error) {
	for rank := Two; rank <= Ace; rank++ {
		if rank.String() == s {
			return rank, nil
		}
	}
	return 0, fmt.Errorf("unknown rank %q", s)
}
