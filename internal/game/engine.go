package game

import (
	"errors"
	"fmt"

	"github.com/thoas/go-funk"

	"github.com/lox/pokernight/internal/deck"
)

// ErrInvalidAction rejects a check when a bet must be called, or a raise at
// or below the table bet. The game state is unchanged when it is returned.
var ErrInvalidAction = errors.New("invalid action")

// StartHand begins a new hand: per-hand player state is reset, a fresh
// shuffled deck is cut in, blinds are posted, hole cards dealt and the
// first actor set to the seat after the big blind.
func (g *Game) StartHand() {
	for _, p := range g.Players {
		p.HoleCards = nil
		p.CurrentBet = 0
		p.TotalBet = 0
		p.Folded = false
		p.AllIn = false
	}

	g.Community = nil
	g.Pot = 0
	g.CurrentBet = 0
	g.WinnerID = ""
	g.bbActed = false
	g.Phase = PreFlop
	g.deck = deck.NewShuffledWithRNG(g.rng)

	g.postBlinds()
	g.dealHoleCards()

	g.CurrentSeat = g.nextEligible(g.DealerSeat + 3)
}

// postBlinds deducts the blinds and seeds the pot. A player with fewer
// chips than the blind posts their whole stack and is all-in. Heads-up the
// dealer posts the small blind and the other seat the big blind.
func (g *Game) postBlinds() {
	n := len(g.Players)
	if n < 2 {
		return
	}

	var sbSeat, bbSeat int
	if n == 2 {
		sbSeat = g.DealerSeat % n
		bbSeat = (g.DealerSeat + 1) % n
	} else {
		sbSeat = (g.DealerSeat + 1) % n
		bbSeat = (g.DealerSeat + 2) % n
	}

	g.postBlind(g.Players[sbSeat], g.SmallBlind)
	g.postBlind(g.Players[bbSeat], g.BigBlind)
	g.CurrentBet = g.BigBlind
}

func (g *Game) postBlind(p *Player, blind int) {
	amount := min(blind, p.Chips)
	p.Chips -= amount
	p.CurrentBet = amount
	p.TotalBet = amount
	g.Pot += amount
	if p.Chips == 0 {
		p.AllIn = true
	}
}

func (g *Game) dealHoleCards() {
	eligible := g.contenders()
	hands := g.deck.DealHole(len(eligible))
	for i, p := range eligible {
		if i < len(hands) {
			p.HoleCards = hands[i]
		}
	}
}

// ApplyAction validates and applies a player action. An unknown or already
// folded player is ignored without error; turn order is enforced by the
// session layer. Invalid checks and raises return ErrInvalidAction with no
// state change; a valid action advances the turn and, when the betting
// round is complete, the phase.
func (g *Game) ApplyAction(playerID string, kind ActionKind, amount int) error {
	p := g.PlayerByID(playerID)
	if p == nil || p.Folded {
		return nil
	}

	switch kind {
	case Fold:
		p.Folded = true
		g.LastAction = fmt.Sprintf("%s folds", p.Name)

	case Check:
		if p.CurrentBet != g.CurrentBet {
			return fmt.Errorf("%w: cannot check, must call %d", ErrInvalidAction, g.CurrentBet-p.CurrentBet)
		}
		g.LastAction = fmt.Sprintf("%s checks", p.Name)

	case Call:
		toCall := min(g.CurrentBet-p.CurrentBet, p.Chips)
		p.Chips -= toCall
		p.CurrentBet += toCall
		p.TotalBet += toCall
		g.Pot += toCall

		if p.Chips == 0 {
			p.AllIn = true
			g.LastAction = fmt.Sprintf("%s calls %d (All-in)", p.Name, toCall)
		} else {
			g.LastAction = fmt.Sprintf("%s calls %d", p.Name, toCall)
		}

	case Raise:
		if amount <= g.CurrentBet {
			return fmt.Errorf("%w: raise must exceed current bet of %d", ErrInvalidAction, g.CurrentBet)
		}

		// amount is the total bet to raise to, capped at the player's stack
		total := min(amount, p.Chips+p.CurrentBet)
		delta := total - p.CurrentBet
		p.Chips -= delta
		p.CurrentBet = total
		p.TotalBet += delta
		g.Pot += delta
		g.CurrentBet = total

		if p.Chips == 0 {
			p.AllIn = true
			g.LastAction = fmt.Sprintf("%s raises to %d (All-in)", p.Name, total)
		} else {
			g.LastAction = fmt.Sprintf("%s raises to %d", p.Name, total)
		}

	default:
		return fmt.Errorf("%w: unknown action", ErrInvalidAction)
	}

	if len(g.Players) == 2 && g.Phase == PreFlop && p.Seat == (g.DealerSeat+1)%2 {
		g.bbActed = true
	}

	if next := g.nextEligible(g.CurrentSeat + 1); next >= 0 {
		g.CurrentSeat = next
	}

	if g.IsRoundComplete() {
		g.advance()
	}

	return nil
}

// nextEligible scans seats from the given index, wrapping, and returns the
// first seat whose player can still act, or -1 if none can
func (g *Game) nextEligible(from int) int {
	n := len(g.Players)
	if n == 0 {
		return -1
	}
	for i := 0; i < n; i++ {
		seat := (from + i) % n
		p := g.Players[seat]
		if p.Active && !p.Folded && !p.AllIn {
			return seat
		}
	}
	return -1
}

// contenders returns the active, non-folded players in seat order
func (g *Game) contenders() []*Player {
	return funk.Filter(g.Players, func(p *Player) bool {
		return p.Active && !p.Folded
	}).([]*Player)
}

// IsRoundComplete reports whether the current betting round is finished:
// at most one contender remains, or every contender who is not all-in has
// matched the table bet. Heads-up pre-flop the big blind closes the action
// by acting without a raise, leaving the small blind's short post below the
// table bet.
func (g *Game) IsRoundComplete() bool {
	contenders := g.contenders()
	if len(contenders) <= 1 {
		return true
	}

	allMatched := true
	for _, p := range contenders {
		if !p.AllIn && p.CurrentBet != g.CurrentBet {
			allMatched = false
			break
		}
	}
	if allMatched {
		return true
	}

	if len(g.Players) == 2 && g.Phase == PreFlop && g.bbActed && g.CurrentBet == g.BigBlind {
		return true
	}

	return false
}

// advance closes the betting round. With one contender left the hand is
// resolved immediately, before any remaining streets; otherwise bets reset
// and the next street is dealt.
func (g *Game) advance() {
	if len(g.contenders()) <= 1 {
		g.beginShowdown()
		return
	}
	g.advanceStreet()
}

func (g *Game) advanceStreet() {
	for _, p := range g.Players {
		p.CurrentBet = 0
	}
	g.CurrentBet = 0
	g.bbActed = false

	switch g.Phase {
	case PreFlop:
		g.Phase = Flop
		g.Community = append(g.Community, g.deck.DealCommunity(3)...)
	case Flop:
		g.Phase = Turn
		g.Community = append(g.Community, g.deck.DealCommunity(1)...)
	case Turn:
		g.Phase = River
		g.Community = append(g.Community, g.deck.DealCommunity(1)...)
	case River:
		g.beginShowdown()
		return
	default:
		return
	}

	if next := g.nextEligible(g.DealerSeat + 1); next >= 0 {
		g.CurrentSeat = next
		return
	}

	// Nobody left who can act: run the board out
	g.advanceStreet()
}
