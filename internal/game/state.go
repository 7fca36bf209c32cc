package game

import (
	"github.com/google/uuid"
	"github.com/magefree/commander-go/internal/game/rules"
	"go.uber.org/zap"
)

// Loss reasons recorded on Player.LossReason.
const (
	LossLife            = "life total reached zero"
	LossCommanderDamage = "commander damage"
	LossDrewFromEmpty   = "drew from an empty deck"
)

// CommanderDamageFrom returns the combat damage the commander dealt to victim.
func (g *Game) CommanderDamageFrom(commander *Card, victim int) int {
	return g.CommanderDamage[commander.ID][victim]
}

// CheckStateBasedActions applies the state-based actions until none apply
// and reports whether anything happened. Players lose for life at or below
// zero, for threshold damage from a single commander, or for having drawn
// from an empty deck. Dead creatures and planeswalkers without loyalty leave
// the battlefield. Safe to call at any time.
func (g *Game) CheckStateBasedActions(verbose bool) bool {
	somethingHappened := false
	for g.checkStateOnce(verbose) {
		somethingHappened = true
	}
	if somethingHappened {
		g.publish(rules.NewEvent(rules.EventStateBasedActions, rules.NoPlayer, ""))
	}
	if g.IsOver() && !g.over {
		g.over = true
		evt := rules.NewEvent(rules.EventGameOver, rules.NoPlayer, "")
		if w, ok := g.Winner(); ok {
			evt.Player = w.Index
		}
		g.publish(evt)
		g.narrate(verbose, "game over", zap.Int("turn", g.TurnNumber()))
	}
	return somethingHappened
}

func (g *Game) checkStateOnce(verbose bool) bool {
	somethingHappened := false

	for _, p := range g.Players {
		if p.HasLost {
			continue
		}
		switch {
		case p.Life <= 0:
			g.markLost(p, LossLife, verbose)
			somethingHappened = true
		case g.lethalCommander(p.Index) != uuid.Nil:
			g.markLost(p, LossCommanderDamage, verbose)
			somethingHappened = true
		case p.drewFromEmpty:
			g.markLost(p, LossDrewFromEmpty, verbose)
			somethingHappened = true
		}
	}

	var dying []*Card
	for _, c := range g.Battlefield {
		switch {
		case c.Creature != nil && (c.Creature.IsDead || c.Creature.Toughness <= 0):
			dying = append(dying, c)
		case c.Kind == KindPlaneswalker && c.Loyalty() <= 0:
			dying = append(dying, c)
		}
	}
	for _, c := range dying {
		owner := g.owners[c.ID]
		g.MoveFromBattlefield(c, ZoneGraveyard, verbose)
		if c.Creature != nil {
			g.publishCard(rules.EventCreatureDied, owner, c, 0)
		}
		g.narrate(verbose, "permanent died",
			zap.String("card", c.Name),
			zap.String("owner", g.Players[owner].Name),
		)
		somethingHappened = true
	}

	return somethingHappened
}

// lethalCommander returns the first commander whose damage to victim reached
// the threshold, or uuid.Nil.
func (g *Game) lethalCommander(victim int) uuid.UUID {
	for id, ledger := range g.CommanderDamage {
		if ledger[victim] >= g.rules.CommanderDamageThreshold {
			return id
		}
	}
	return uuid.Nil
}

// markLost eliminates p. Permanents p owns leave the game with them.
func (g *Game) markLost(p *Player, reason string, verbose bool) {
	p.HasLost = true
	p.LossReason = reason
	for _, c := range g.Permanents(p.Index) {
		g.MoveFromBattlefield(c, ZoneExile, false)
	}
	if g.nonactive == p.Index {
		g.EndCombat()
	}
	evt := rules.NewEvent(rules.EventPlayerLost, p.Index, "")
	evt.SourceName = reason
	g.publish(evt)
	g.narrate(verbose, "player lost",
		zap.String("player", p.Name),
		zap.String("reason", reason),
		zap.Int("life", p.Life),
	)
}

// IsOver reports whether at most one player remains.
func (g *Game) IsOver() bool {
	alive := 0
	for _, p := range g.Players {
		if !p.HasLost {
			alive++
		}
	}
	return alive <= 1
}

// Winner returns the last player standing, if there is exactly one.
func (g *Game) Winner() (*Player, bool) {
	var winner *Player
	for _, p := range g.Players {
		if p.HasLost {
			continue
		}
		if winner != nil {
			return nil, false
		}
		winner = p
	}
	return winner, winner != nil
}
