package game

// ActionSet lists the actions currently open to a player, with the chip
// amounts the client needs to build a call or raise
type ActionSet struct {
	Actions    []string `json:"actions"`
	CanAct     bool     `json:"can_act"`
	CallAmount int      `json:"call_amount"`
	MinRaise   int      `json:"min_raise"`
	MaxBet     int      `json:"max_bet"`
}

// AvailableActions returns the action set for a seated player. Out of a
// betting phase, out of turn, or folded, the set is empty.
func (g *Game) AvailableActions(p *Player) ActionSet {
	if !g.Phase.Betting() {
		return ActionSet{Actions: []string{}}
	}

	current := g.CurrentPlayer()
	if current == nil || current.ID != p.ID || p.Folded {
		return ActionSet{Actions: []string{}}
	}

	actions := []string{Fold.String()}
	toCall := g.CurrentBet - p.CurrentBet

	if toCall == 0 {
		actions = append(actions, Check.String())
	} else if p.Chips >= toCall {
		actions = append(actions, Call.String())
	}

	if p.Chips > toCall {
		actions = append(actions, Raise.String())
	}

	if toCall < 0 {
		toCall = 0
	}

	return ActionSet{
		Actions:    actions,
		CanAct:     true,
		CallAmount: toCall,
		MinRaise:   g.CurrentBet * 2,
		MaxBet:     p.Chips + p.CurrentBet,
	}
}
