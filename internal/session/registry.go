// Package session maps session identifiers to independent game instances
// and enforces join policy and the hand-to-hand lifecycle. All public view
// state flows out through the projector in view.go.
package session

import (
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/thoas/go-funk"

	"github.com/lox/pokernight/internal/game"
)

// Config holds the table constants consumed by the registry
type Config struct {
	AllowedPlayers []string
	StartingChips  int
	MaxPlayers     int
	SmallBlind     int
	BigBlind       int
}

// Registry tracks live sessions. The registry map is guarded by its own
// lock; each session serializes access to its game, so actions on distinct
// sessions never contend.
type Registry struct {
	logger   *log.Logger
	mu       sync.RWMutex
	sessions map[string]*Session
	cfg      Config
}

// Session pairs a game with the mutex that serializes its mutations
type Session struct {
	mu   sync.Mutex
	game *game.Game
}

// NewRegistry constructs an empty session registry
func NewRegistry(cfg Config, logger *log.Logger) *Registry {
	return &Registry{
		logger:   logger.WithPrefix("session"),
		sessions: make(map[string]*Session),
		cfg:      cfg,
	}
}

// Create allocates a new empty game and returns its session id
func (r *Registry) Create() string {
	id := uuid.NewString()

	r.mu.Lock()
	r.sessions[id] = &Session{game: game.New(r.cfg.SmallBlind, r.cfg.BigBlind)}
	r.mu.Unlock()

	r.logger.Info("created session", "session", id)
	return id
}

func (r *Registry) lookup(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Join seats a named player. The name must be on the allow-list, not
// already seated, and the table must have a free seat. Reaching two seated
// players while the session is waiting starts the first hand.
func (r *Registry) Join(sessionID, name string) (View, error) {
	s, err := r.lookup(sessionID)
	if err != nil {
		return View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.game
	if !funk.ContainsString(r.cfg.AllowedPlayers, name) {
		return View{}, ErrPlayerNotAllowed
	}
	if g.PlayerByName(name) != nil {
		return View{}, ErrAlreadyJoined
	}
	if len(g.Players) >= r.cfg.MaxPlayers {
		return View{}, ErrTableFull
	}

	g.AddPlayer(uuid.NewString(), name, r.cfg.StartingChips)
	r.logger.Info("player joined", "session", sessionID, "player", name)

	if len(g.Players) >= 2 && g.Phase == game.Waiting {
		g.StartHand()
		r.logger.Info("hand started", "session", sessionID, "players", len(g.Players))
	}

	return project(sessionID, g), nil
}

// State returns the public view of a session
func (r *Registry) State(sessionID string) (View, error) {
	s, err := r.lookup(sessionID)
	if err != nil {
		return View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return project(sessionID, s.game), nil
}

// Apply validates turn order and dispatches a player action to the
// session's game
func (r *Registry) Apply(sessionID, playerID string, kind game.ActionKind, amount int) (View, error) {
	s, err := r.lookup(sessionID)
	if err != nil {
		return View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.game
	if !g.Phase.Betting() {
		return View{}, ErrWrongPhase
	}
	if g.PlayerByID(playerID) == nil {
		return View{}, ErrPlayerNotFound
	}
	current := g.CurrentPlayer()
	if current == nil || current.ID != playerID {
		return View{}, ErrNotYourTurn
	}

	if err := g.ApplyAction(playerID, kind, amount); err != nil {
		return View{}, err
	}

	r.logger.Info("action applied", "session", sessionID, "action", g.LastAction, "phase", g.Phase)
	return project(sessionID, g), nil
}

// AvailableActions returns the actions currently open to a player
func (r *Registry) AvailableActions(sessionID, playerID string) (game.ActionSet, error) {
	s, err := r.lookup(sessionID)
	if err != nil {
		return game.ActionSet{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.game.PlayerByID(playerID)
	if p == nil {
		return game.ActionSet{}, ErrPlayerNotFound
	}
	return s.game.AvailableActions(p), nil
}

// NextHand starts the next hand: busted players leave the table, seats are
// renumbered contiguously, the dealer button rotates and a fresh hand is
// dealt. Fails unless at least two players still have chips.
func (r *Registry) NextHand(sessionID string) (View, error) {
	s, err := r.lookup(sessionID)
	if err != nil {
		return View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	g := s.game
	funded := funk.Filter(g.Players, func(p *game.Player) bool {
		return p.Chips > 0
	}).([]*game.Player)
	if len(funded) < 2 {
		return View{}, ErrInsufficientPlayers
	}

	g.Players = funded
	for i, p := range g.Players {
		p.Seat = i
	}
	g.DealerSeat = (g.DealerSeat + 1) % len(g.Players)
	g.StartHand()

	r.logger.Info("next hand started", "session", sessionID, "players", len(g.Players))
	return project(sessionID, g), nil
}
