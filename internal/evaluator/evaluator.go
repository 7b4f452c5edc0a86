// Package evaluator ranks poker hands. Given 5 to 7 cards it finds the best
// 5-card hand and encodes category and tie-breaks into a single comparison
// value, so any two hands order correctly with one integer compare.
package evaluator

import (
	"fmt"
	"sort"

	"github.com/lox/pokernight/internal/deck"
)

// Category represents the type of a 5-card poker hand, ascending strength
type Category int

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the human-readable category name
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// Result describes the best 5-card hand found in the input.
// Value totally orders hands: the category sits in the high bits and the
// tie-break card values in nibbles below, so a higher category always wins
// and within a category higher card values win.
type Result struct {
	BestFive []deck.Card
	Category Category
	Value    int
	Label    string
}

// categoryShift leaves room for five 4-bit tie-break slots
const categoryShift = 20

// Evaluate finds the best 5-card hand among all 5-card subsets of the
// input. Input must hold 5 to 7 cards.
func Evaluate(cards []deck.Card) (Result, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return Result{}, fmt.Errorf("evaluate: need 5 to 7 cards, got %d", len(cards))
	}

	best := Result{Value: -1}
	subset := make([]deck.Card, 5)
	combinations(len(cards), func(idx [5]int) {
		for i, j := range idx {
			subset[i] = cards[j]
		}
		if r := evaluate5(subset); r.Value > best.Value {
			five := make([]deck.Card, 5)
			copy(five, subset)
			r.BestFive = five
			best = r
		}
	})

	return best, nil
}

// combinations calls fn with every 5-element index combination of 0..n-1
func combinations(n int, fn func([5]int)) {
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						fn([5]int{a, b, c, d, e})
					}
				}
			}
		}
	}
}

// evaluate5 classifies exactly 5 cards
func evaluate5(cards []deck.Card) Result {
	values := make([]int, 5)
	for i, c := range cards {
		values[i] = c.Value()
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	counts := make(map[int]int, 5)
	for _, v := range values {
		counts[v]++
	}

	flush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}

	straightHigh := straightHighCard(values)

	switch {
	case flush && straightHigh == 14:
		return Result{
			Category: RoyalFlush,
			Value:    pack(RoyalFlush, 14),
			Label:    "Royal Flush",
		}

	case flush && straightHigh > 0:
		return Result{
			Category: StraightFlush,
			Value:    pack(StraightFlush, straightHigh),
			Label:    fmt.Sprintf("Straight Flush, %s high", rankName(straightHigh)),
		}
	}

	if quad := rankWithCount(counts, 4); quad > 0 {
		kicker := highestExcept(values, quad)
		return Result{
			Category: FourOfAKind,
			Value:    pack(FourOfAKind, quad, kicker),
			Label:    fmt.Sprintf("Four of a Kind, %ss", rankName(quad)),
		}
	}

	trips := rankWithCount(counts, 3)
	pairs := ranksWithCount(counts, 2)

	if trips > 0 && len(pairs) == 1 {
		return Result{
			Category: FullHouse,
			Value:    pack(FullHouse, trips, pairs[0]),
			Label:    fmt.Sprintf("Full House, %ss over %ss", rankName(trips), rankName(pairs[0])),
		}
	}

	if flush {
		return Result{
			Category: Flush,
			Value:    pack(Flush, values...),
			Label:    fmt.Sprintf("Flush, %s high", rankName(values[0])),
		}
	}

	if straightHigh > 0 {
		return Result{
			Category: Straight,
			Value:    pack(Straight, straightHigh),
			Label:    fmt.Sprintf("Straight, %s high", rankName(straightHigh)),
		}
	}

	if trips > 0 {
		kickers := kickersExcept(values, trips)
		return Result{
			Category: ThreeOfAKind,
			Value:    pack(ThreeOfAKind, trips, kickers[0], kickers[1]),
			Label:    fmt.Sprintf("Three of a Kind, %ss", rankName(trips)),
		}
	}

	if len(pairs) == 2 {
		// Composite tie-break: high pair, low pair, then the kicker.
		// Two different two-pair hands never compare equal by accident.
		kicker := highestExcept(values, pairs[0], pairs[1])
		return Result{
			Category: TwoPair,
			Value:    pack(TwoPair, pairs[0], pairs[1], kicker),
			Label:    fmt.Sprintf("Two Pair, %ss and %ss", rankName(pairs[0]), rankName(pairs[1])),
		}
	}

	if len(pairs) == 1 {
		kickers := kickersExcept(values, pairs[0])
		return Result{
			Category: Pair,
			Value:    pack(Pair, pairs[0], kickers[0], kickers[1], kickers[2]),
			Label:    fmt.Sprintf("Pair of %ss", rankName(pairs[0])),
		}
	}

	return Result{
		Category: HighCard,
		Value:    pack(HighCard, values...),
		Label:    fmt.Sprintf("High Card, %s", rankName(values[0])),
	}
}

// pack encodes the category and up to five tie-break values (each 2..14)
// into a single comparable integer, most significant tie-break first
func pack(cat Category, tiebreaks ...int) int {
	v := int(cat) << categoryShift
	shift := categoryShift - 4
	for _, tb := range tiebreaks {
		v |= tb << shift
		shift -= 4
	}
	return v
}

// straightHighCard returns the high card of a straight formed by the
// descending-sorted values, 5 for the wheel (A-2-3-4-5), 0 if no straight
func straightHighCard(values []int) int {
	distinct := make([]int, 0, 5)
	seen := make(map[int]bool, 5)
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			distinct = append(distinct, v)
		}
	}

	if len(distinct) != 5 {
		return 0
	}

	if distinct[0]-distinct[4] == 4 {
		return distinct[0]
	}

	// Wheel: A-2-3-4-5 counts as a 5-high straight
	if seen[14] && seen[5] && seen[4] && seen[3] && seen[2] {
		return 5
	}

	return 0
}

// rankWithCount returns the highest value appearing exactly n times, 0 if none
func rankWithCount(counts map[int]int, n int) int {
	best := 0
	for v, c := range counts {
		if c == n && v > best {
			best = v
		}
	}
	return best
}

// ranksWithCount returns all values appearing exactly n times, descending
func ranksWithCount(counts map[int]int, n int) []int {
	var out []int
	for v, c := range counts {
		if c == n {
			out = append(out, v)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// highestExcept returns the highest value not in the excluded set
func highestExcept(values []int, except ...int) int {
	for _, v := range values {
		excluded := false
		for _, e := range except {
			if v == e {
				excluded = true
				break
			}
		}
		if !excluded {
			return v
		}
	}
	return 0
}

// kickersExcept returns every value not equal to except, descending
func kickersExcept(values []int, except int) []int {
	var out []int
	for _, v := range values {
		if v != except {
			out = append(out, v)
		}
	}
	return out
}

func rankName(value int) string {
	return deck.Rank(value).String()
}
