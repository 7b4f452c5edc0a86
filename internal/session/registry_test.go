package session

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokernight/internal/game"
)

func testConfig() Config {
	return Config{
		AllowedPlayers: []string{"Geri", "Sepp", "Toni", "Manuel"},
		StartingChips:  1000,
		MaxPlayers:     8,
		SmallBlind:     10,
		BigBlind:       20,
	}
}

func newTestRegistry(t *testing.T, cfg Config) *Registry {
	t.Helper()
	return NewRegistry(cfg, log.New(io.Discard))
}

func seatOf(t *testing.T, v View, name string) PlayerView {
	t.Helper()
	for _, p := range v.Players {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("player %s not in view", name)
	return PlayerView{}
}

func TestCreateAndState(t *testing.T) {
	r := newTestRegistry(t, testConfig())
	id := r.Create()
	require.NotEmpty(t, id)

	view, err := r.State(id)
	require.NoError(t, err)
	assert.Equal(t, id, view.SessionID)
	assert.Equal(t, "waiting", view.Phase)
	assert.Empty(t, view.Players)

	_, err = r.State("nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestJoinPolicy(t *testing.T) {
	cfg := testConfig()
	cfg.MaxPlayers = 2
	r := newTestRegistry(t, cfg)
	id := r.Create()

	_, err := r.Join(id, "Mallory")
	assert.ErrorIs(t, err, ErrPlayerNotAllowed)

	_, err = r.Join(id, "Geri")
	require.NoError(t, err)

	_, err = r.Join(id, "Geri")
	assert.ErrorIs(t, err, ErrAlreadyJoined)

	_, err = r.Join(id, "Sepp")
	require.NoError(t, err)

	_, err = r.Join(id, "Toni")
	assert.ErrorIs(t, err, ErrTableFull)

	_, err = r.Join("nope", "Geri")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSecondJoinStartsHand(t *testing.T) {
	r := newTestRegistry(t, testConfig())
	id := r.Create()

	view, err := r.Join(id, "Geri")
	require.NoError(t, err)
	assert.Equal(t, "waiting", view.Phase)

	view, err = r.Join(id, "Sepp")
	require.NoError(t, err)

	assert.Equal(t, "pre_flop", view.Phase)
	assert.Equal(t, 30, view.Pot)
	assert.Equal(t, "Sepp", view.CurrentPlayerName, "the big blind opens heads-up")

	geri := seatOf(t, view, "Geri")
	assert.Equal(t, 10, geri.CurrentBet, "the dealer posts the small blind heads-up")
	assert.Equal(t, 990, geri.Chips)

	sepp := seatOf(t, view, "Sepp")
	assert.Equal(t, 20, sepp.CurrentBet)
	assert.Equal(t, 980, sepp.Chips)
}

func TestApplyDealsFlopAfterCall(t *testing.T) {
	r := newTestRegistry(t, testConfig())
	id := r.Create()
	_, err := r.Join(id, "Geri")
	require.NoError(t, err)
	view, err := r.Join(id, "Sepp")
	require.NoError(t, err)

	sepp := seatOf(t, view, "Sepp")
	view, err = r.Apply(id, sepp.ID, game.Call, 0)
	require.NoError(t, err)

	assert.Equal(t, "flop", view.Phase)
	assert.Len(t, view.CommunityCards, 3)
	assert.Equal(t, 30, view.Pot, "the big blind had nothing left to call")
}

func TestApplyEnforcesTurnOrder(t *testing.T) {
	r := newTestRegistry(t, testConfig())
	id := r.Create()
	view, err := r.Join(id, "Geri")
	require.NoError(t, err)
	geriID := view.Players[0].ID
	_, err = r.Join(id, "Sepp")
	require.NoError(t, err)

	// Sepp is to act; Geri may not jump in
	_, err = r.Apply(id, geriID, game.Call, 0)
	assert.ErrorIs(t, err, ErrNotYourTurn)

	_, err = r.Apply(id, "missing-id", game.Call, 0)
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestApplyRejectsInvalidAction(t *testing.T) {
	r := newTestRegistry(t, testConfig())
	id := r.Create()
	_, err := r.Join(id, "Geri")
	require.NoError(t, err)
	view, err := r.Join(id, "Sepp")
	require.NoError(t, err)

	sepp := seatOf(t, view, "Sepp")
	_, err = r.Apply(id, sepp.ID, game.Raise, 20)
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestApplyOutsideBettingPhase(t *testing.T) {
	r := newTestRegistry(t, testConfig())
	id := r.Create()
	view, err := r.Join(id, "Geri")
	require.NoError(t, err)
	geriID := view.Players[0].ID

	// Still waiting for a second player
	_, err = r.Apply(id, geriID, game.Check, 0)
	assert.ErrorIs(t, err, ErrWrongPhase)

	view, err = r.Join(id, "Sepp")
	require.NoError(t, err)
	sepp := seatOf(t, view, "Sepp")

	// Sepp folds, the hand finishes, and no further actions are accepted
	view, err = r.Apply(id, sepp.ID, game.Fold, 0)
	require.NoError(t, err)
	require.Equal(t, "finished", view.Phase)

	_, err = r.Apply(id, geriID, game.Check, 0)
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestHoleCardsConcealedUntilFinished(t *testing.T) {
	r := newTestRegistry(t, testConfig())
	id := r.Create()
	_, err := r.Join(id, "Geri")
	require.NoError(t, err)
	view, err := r.Join(id, "Sepp")
	require.NoError(t, err)

	for _, p := range view.Players {
		assert.Equal(t, 2, p.CardCount)
		assert.Empty(t, p.Cards, "hole cards stay hidden mid-hand")
		assert.Nil(t, p.Hand)
	}

	sepp := seatOf(t, view, "Sepp")
	view, err = r.Apply(id, sepp.ID, game.Fold, 0)
	require.NoError(t, err)
	require.Equal(t, "finished", view.Phase)

	for _, p := range view.Players {
		assert.Len(t, p.Cards, 2, "finished hands reveal everyone's cards")
	}
}

func TestFinishedViewIncludesHandSummary(t *testing.T) {
	r := newTestRegistry(t, testConfig())
	id := r.Create()
	_, err := r.Join(id, "Geri")
	require.NoError(t, err)
	view, err := r.Join(id, "Sepp")
	require.NoError(t, err)

	// Check the hand down to showdown so five community cards are out
	for view.Phase != "finished" {
		actor := seatOf(t, view, view.CurrentPlayerName)
		if actor.CurrentBet < 20 && view.Phase == "pre_flop" {
			view, err = r.Apply(id, actor.ID, game.Call, 0)
		} else {
			view, err = r.Apply(id, actor.ID, game.Check, 0)
		}
		require.NoError(t, err)
	}

	assert.Len(t, view.CommunityCards, 5)
	for _, p := range view.Players {
		require.NotNil(t, p.Hand, "unfolded players show their evaluated hand")
		assert.NotEmpty(t, p.Hand.Category)
		assert.NotEmpty(t, p.Hand.Description)
		assert.Positive(t, p.Hand.Value)
	}
	assert.NotEmpty(t, view.Message)
}

func TestNextHandRotatesDealerAndDropsBusted(t *testing.T) {
	r := newTestRegistry(t, testConfig())
	id := r.Create()
	_, err := r.Join(id, "Geri")
	require.NoError(t, err)
	view, err := r.Join(id, "Sepp")
	require.NoError(t, err)

	sepp := seatOf(t, view, "Sepp")
	_, err = r.Apply(id, sepp.ID, game.Fold, 0)
	require.NoError(t, err)

	view, err = r.NextHand(id)
	require.NoError(t, err)

	assert.Equal(t, "pre_flop", view.Phase)
	// Dealer button moved to Sepp, who now posts the small blind
	assert.Equal(t, 10, seatOf(t, view, "Sepp").CurrentBet)
	assert.Equal(t, 20, seatOf(t, view, "Geri").CurrentBet)
	assert.Equal(t, "Geri", view.CurrentPlayerName)

	// Bust Sepp behind the scenes; the next hand cannot start
	s, err := r.lookup(id)
	require.NoError(t, err)
	s.mu.Lock()
	s.game.PlayerByName("Sepp").Chips = 0
	s.mu.Unlock()

	_, err = r.NextHand(id)
	assert.ErrorIs(t, err, ErrInsufficientPlayers)
}

func TestNextHandRenumbersSeats(t *testing.T) {
	r := newTestRegistry(t, testConfig())
	id := r.Create()
	for _, name := range []string{"Geri", "Sepp", "Toni"} {
		_, err := r.Join(id, name)
		require.NoError(t, err)
	}

	s, err := r.lookup(id)
	require.NoError(t, err)
	s.mu.Lock()
	s.game.Phase = game.Finished
	s.game.PlayerByName("Sepp").Chips = 0
	s.mu.Unlock()

	view, err := r.NextHand(id)
	require.NoError(t, err)

	require.Len(t, view.Players, 2, "busted players leave the table")
	assert.Equal(t, 0, seatOf(t, view, "Geri").Seat)
	assert.Equal(t, 1, seatOf(t, view, "Toni").Seat)
	assert.Equal(t, "pre_flop", view.Phase)
}

func TestAvailableActions(t *testing.T) {
	r := newTestRegistry(t, testConfig())
	id := r.Create()
	view, err := r.Join(id, "Geri")
	require.NoError(t, err)
	geriID := view.Players[0].ID
	view, err = r.Join(id, "Sepp")
	require.NoError(t, err)
	sepp := seatOf(t, view, "Sepp")

	set, err := r.AvailableActions(id, sepp.ID)
	require.NoError(t, err)
	assert.True(t, set.CanAct)
	assert.Contains(t, set.Actions, "fold")
	assert.Contains(t, set.Actions, "check")
	assert.Contains(t, set.Actions, "raise")
	assert.NotContains(t, set.Actions, "call", "the big blind has nothing to call")

	set, err = r.AvailableActions(id, geriID)
	require.NoError(t, err)
	assert.False(t, set.CanAct, "no actions out of turn")
	assert.Empty(t, set.Actions)

	_, err = r.AvailableActions(id, "missing-id")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}
