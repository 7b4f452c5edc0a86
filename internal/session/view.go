package session

import (
	"github.com/lox/pokernight/internal/deck"
	"github.com/lox/pokernight/internal/game"
)

// View is the spectator-safe projection of a session. It has a fixed
// schema so hole-card concealment is structural: PlayerView carries cards
// only when the projector fills them in at showdown.
type View struct {
	SessionID         string       `json:"session_id"`
	CurrentPlayerName string       `json:"current_player_name"`
	Pot               int          `json:"pot"`
	CommunityCards    []deck.Card  `json:"community_cards"`
	Phase             string       `json:"phase"`
	Message           string       `json:"message"`
	Players           []PlayerView `json:"players"`
}

// PlayerView is the public record of a seated player
type PlayerView struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Chips      int          `json:"chips"`
	CurrentBet int          `json:"current_bet"`
	TotalBet   int          `json:"total_bet"`
	Folded     bool         `json:"is_folded"`
	AllIn      bool         `json:"is_all_in"`
	Active     bool         `json:"is_active"`
	Seat       int          `json:"position"`
	CardCount  int          `json:"cards_count"`
	Cards      []deck.Card  `json:"cards,omitempty"`
	Hand       *HandSummary `json:"hand,omitempty"`
}

// HandSummary describes a revealed player's evaluated hand
type HandSummary struct {
	Category    string `json:"ranking"`
	Description string `json:"description"`
	Value       int    `json:"rank_value"`
}

// project derives the public view from internal game state. Hole cards are
// hidden except at showdown or once the hand has finished; the evaluated
// hand is included for revealed, unfolded players when enough cards are out.
func project(id string, g *game.Game) View {
	view := View{
		SessionID:      id,
		Pot:            g.Pot,
		CommunityCards: append([]deck.Card(nil), g.Community...),
		Phase:          g.Phase.String(),
		Message:        g.LastAction,
		Players:        make([]PlayerView, 0, len(g.Players)),
	}

	if current := g.CurrentPlayer(); current != nil {
		view.CurrentPlayerName = current.Name
	}

	reveal := g.Phase == game.Showdown || g.Phase == game.Finished

	for _, p := range g.Players {
		pv := PlayerView{
			ID:         p.ID,
			Name:       p.Name,
			Chips:      p.Chips,
			CurrentBet: p.CurrentBet,
			TotalBet:   p.TotalBet,
			Folded:     p.Folded,
			AllIn:      p.AllIn,
			Active:     p.Active,
			Seat:       p.Seat,
			CardCount:  len(p.HoleCards),
		}

		if reveal {
			pv.Cards = append([]deck.Card(nil), p.HoleCards...)
			if !p.Folded {
				if result, ok := g.HandResult(p); ok {
					pv.Hand = &HandSummary{
						Category:    result.Category.String(),
						Description: result.Label,
						Value:       result.Value,
					}
				}
			}
		}

		view.Players = append(view.Players, pv)
	}

	return view
}
