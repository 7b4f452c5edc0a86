// Package game implements a single Texas Hold'em table: blind posting,
// action validation, betting-round phases, and showdown resolution.
// Instances are not safe for concurrent use; the session registry
// serializes access per table.
package game

import (
	"math/rand"
	"time"

	"github.com/lox/pokernight/internal/deck"
)

// Phase represents the lifecycle stage of a hand
type Phase int

const (
	Waiting Phase = iota
	PreFlop
	Flop
	Turn
	River
	Showdown
	Finished
)

// String returns the wire name of the phase
func (p Phase) String() string {
	return [...]string{"waiting", "pre_flop", "flop", "turn", "river", "showdown", "finished"}[p]
}

// Betting reports whether the phase accepts player actions
func (p Phase) Betting() bool {
	return p >= PreFlop && p <= River
}

// ActionKind represents a player action
type ActionKind int

const (
	Fold ActionKind = iota
	Check
	Call
	Raise
)

// String returns the wire name of the action
func (a ActionKind) String() string {
	return [...]string{"fold", "check", "call", "raise"}[a]
}

// ParseAction parses a wire action name
func ParseAction(s string) (ActionKind, bool) {
	for a := Fold; a <= Raise; a++ {
		if a.String() == s {
			return a, true
		}
	}
	return 0, false
}

// Player represents a seat at the table. Chips persist across hands;
// cards, bets and flags reset every hand.
type Player struct {
	ID         string
	Name       string
	Chips      int
	HoleCards  []deck.Card
	CurrentBet int
	TotalBet   int
	Folded     bool
	AllIn      bool
	Active     bool
	Seat       int
}

// Game holds the state of one table for the duration of a session
type Game struct {
	Players    []*Player
	Community  []deck.Card
	Pot        int
	CurrentBet int
	SmallBlind int
	BigBlind   int
	DealerSeat int
	// CurrentSeat is the seat index of the player to act; only meaningful
	// during betting phases
	CurrentSeat int
	Phase       Phase
	LastAction  string
	WinnerID    string

	deck *deck.Deck
	rng  *rand.Rand
	// bbActed closes the pre-flop round heads-up once the big blind has
	// acted without raising
	bbActed bool
}

// Option configures a new game
type Option func(*Game)

// WithRNG sets the random source used for shuffling, for deterministic tests
func WithRNG(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// New creates an empty table in the Waiting phase
func New(smallBlind, bigBlind int, opts ...Option) *Game {
	g := &Game{
		SmallBlind: smallBlind,
		BigBlind:   bigBlind,
		Phase:      Waiting,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddPlayer seats a new player at the next free seat
func (g *Game) AddPlayer(id, name string, chips int) *Player {
	p := &Player{
		ID:     id,
		Name:   name,
		Chips:  chips,
		Active: true,
		Seat:   len(g.Players),
	}
	g.Players = append(g.Players, p)
	return p
}

// PlayerByID returns the seated player with the given id, or nil
func (g *Game) PlayerByID(id string) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PlayerByName returns the seated player with the given name, or nil
func (g *Game) PlayerByName(name string) *Player {
	for _, p := range g.Players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// CurrentPlayer returns the player to act, or nil outside betting phases
func (g *Game) CurrentPlayer() *Player {
	if !g.Phase.Betting() {
		return nil
	}
	if g.CurrentSeat < 0 || g.CurrentSeat >= len(g.Players) {
		return nil
	}
	return g.Players[g.CurrentSeat]
}
