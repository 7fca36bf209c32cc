package game

import (
	"github.com/magefree/commander-go/internal/game/rules"
	"go.uber.org/zap"
)

// Start shuffles every deck, draws opening hands and begins turn 1 with seat 0
// active in the untap step.
func (g *Game) Start(verbose bool) error {
	if g.started {
		return ErrGameStarted
	}
	g.started = true

	g.publish(rules.NewEvent(rules.EventGameStarted, rules.NoPlayer, g.ID.String()))
	g.narrate(verbose, "game started",
		zap.String("game_id", g.ID.String()),
		zap.Int("players", len(g.Players)),
	)
	for _, p := range g.Players {
		g.Shuffle(p.Index)
		for i := 0; i < g.rules.OpeningHand; i++ {
			g.Draw(p.Index, false)
		}
	}
	g.beginTurn(verbose)
	return nil
}

// StartNewTurn passes the turn to the next living player, skipping
// eliminated seats, and runs that player's untap step.
func (g *Game) StartNewTurn(verbose bool) int {
	if g.InCombat() {
		g.EndCombat()
	}
	g.turn.StartNewTurn(func(seat int) bool { return g.Players[seat].HasLost })
	g.watchers.ResetWatchersByScope(rules.WatcherScopeTurn)
	g.beginTurn(verbose)
	return g.ActiveSeat()
}

func (g *Game) beginTurn(verbose bool) {
	active := g.ActivePlayer()
	evt := rules.NewEvent(rules.EventBeginTurn, active.Index, "")
	g.publish(evt)
	g.narrate(verbose, "turn begins",
		zap.Int("turn", g.TurnNumber()),
		zap.String("player", active.Name),
		zap.Int("life", active.Life),
	)
	g.enterPhase(rules.PhaseUntap, verbose)
}

// AdvancePhase moves to the next phase and runs its entry actions. Moving
// past CLEANUP wraps to UNTAP of the same turn; call StartNewTurn to pass
// the turn. An error means combat damage could not be dealt; the phase does
// not change in that case.
func (g *Game) AdvancePhase(verbose bool) (rules.Phase, error) {
	next := g.turn.Phase().Next()
	if next == rules.PhaseCombatDamage {
		if err := g.ResolveCombatDamage(verbose); err != nil {
			return g.turn.Phase(), err
		}
	}
	g.turn.AdvancePhase()
	g.enterPhase(next, verbose)
	return next, nil
}

// enterPhase runs the turn-based actions of p.
func (g *Game) enterPhase(p rules.Phase, verbose bool) {
	active := g.ActivePlayer()
	evt := rules.NewEvent(rules.EventPhaseChanged, active.Index, "")
	evt.SourceName = p.String()
	g.publish(evt)
	g.narrate(verbose, "phase", zap.String("phase", p.String()), zap.String("player", active.Name))

	switch p {
	case rules.PhaseUntap:
		g.UntapAll(active.Index, verbose)
		for _, c := range g.Permanents(active.Index) {
			if c.Creature != nil {
				c.Creature.SummoningSick = false
			}
		}
		active.CanPlayLand = true
	case rules.PhaseDraw:
		if g.TurnNumber() == 1 && g.rules.SkipFirstDraw {
			break
		}
		g.Draw(active.Index, verbose)
		g.CheckStateBasedActions(verbose)
	case rules.PhaseEndCombat:
		g.EndCombat()
	case rules.PhaseCleanup:
		for _, pl := range g.Players {
			if pl.Pool.GetTotalMana() > 0 {
				pl.Pool.Empty()
				g.publish(rules.NewEvent(rules.EventEmptyManaPool, pl.Index, ""))
			}
			pl.CastingSpell = ""
		}
		for _, c := range g.Battlefield {
			if c.Creature != nil {
				c.Creature.ClearDamage()
			}
		}
	}
}
