package game

import (
	"fmt"
	"strings"

	"github.com/lox/pokernight/internal/deck"
	"github.com/lox/pokernight/internal/evaluator"
)

// beginShowdown resolves the hand and moves to the terminal phase. A sole
// remaining contender takes the pot without evaluation; otherwise each
// contender's best hand is evaluated and the pot split evenly between the
// winners. The split's integer-division remainder is dropped, a documented
// rounding loss.
func (g *Game) beginShowdown() {
	g.Phase = Showdown

	contenders := g.contenders()
	switch len(contenders) {
	case 0:
		// Every seat folded or busted; nothing to award
	case 1:
		winner := contenders[0]
		winner.Chips += g.Pot
		g.WinnerID = winner.ID
		g.LastAction = fmt.Sprintf("%s wins %d chips!", winner.Name, g.Pot)
	default:
		g.resolveShowdown(contenders)
	}

	g.Phase = Finished
	g.Pot = 0
}

func (g *Game) resolveShowdown(contenders []*Player) {
	results := make(map[string]evaluator.Result, len(contenders))
	bestValue := -1
	for _, p := range contenders {
		result, err := evaluator.Evaluate(append(append([]deck.Card(nil), p.HoleCards...), g.Community...))
		if err != nil {
			continue
		}
		results[p.ID] = result
		if result.Value > bestValue {
			bestValue = result.Value
		}
	}

	var winners []*Player
	for _, p := range contenders {
		if r, ok := results[p.ID]; ok && r.Value == bestValue {
			winners = append(winners, p)
		}
	}
	if len(winners) == 0 {
		return
	}

	share := g.Pot / len(winners)
	for _, w := range winners {
		w.Chips += share
	}

	if len(winners) == 1 {
		g.WinnerID = winners[0].ID
		g.LastAction = fmt.Sprintf("%s wins %d chips with %s!", winners[0].Name, share, results[winners[0].ID].Label)
		return
	}

	names := make([]string, len(winners))
	for i, w := range winners {
		names[i] = w.Name
	}
	g.WinnerID = winners[0].ID
	g.LastAction = fmt.Sprintf("Split pot! %s each win %d chips!", strings.Join(names, ", "), share)
}

// HandResult evaluates a player's current best hand from their hole cards
// and the community cards. It reports false before enough cards are dealt.
func (g *Game) HandResult(p *Player) (evaluator.Result, bool) {
	cards := append(append([]deck.Card(nil), p.HoleCards...), g.Community...)
	if len(cards) < 5 || len(cards) > 7 {
		return evaluator.Result{}, false
	}
	result, err := evaluator.Evaluate(cards)
	if err != nil {
		return evaluator.Result{}, false
	}
	return result, true
}
