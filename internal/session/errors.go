package session

import (
	"errors"

	"github.com/lox/pokernight/internal/game"
)

// Recoverable registry errors. The transport layer maps these to response
// codes; none of them leave a session in a partially mutated state.
var (
	ErrSessionNotFound     = errors.New("session not found")
	ErrPlayerNotFound      = errors.New("player not found")
	ErrPlayerNotAllowed    = errors.New("player not allowed")
	ErrAlreadyJoined       = errors.New("player already in session")
	ErrTableFull           = errors.New("session is full")
	ErrWrongPhase          = errors.New("session not in a playing phase")
	ErrNotYourTurn         = errors.New("not your turn")
	ErrInsufficientPlayers = errors.New("not enough players with chips")
)

// ErrInvalidAction is the engine's rejection of an invalid check or raise
var ErrInvalidAction = game.ErrInvalidAction
