package game

import (
	"fmt"

	"github.com/magefree/commander-go/internal/game/rules"
	"go.uber.org/zap"
)

// combatState is the single attacker-defender pairing of the current combat.
type combatState struct {
	attackers []*Card
	resolved  bool
}

// InCombat reports whether a combat has begun and not ended.
func (g *Game) InCombat() bool {
	return g.combat != nil
}

// BeginCombat starts a combat in which the active player attacks defender.
// Returns false if defender is the active player or has lost.
func (g *Game) BeginCombat(defender int) bool {
	if defender < 0 || defender >= len(g.Players) || defender == g.ActiveSeat() || g.Players[defender].HasLost {
		return false
	}
	g.nonactive = defender
	g.combat = &combatState{}
	return true
}

// Attackers returns the declared attackers.
func (g *Game) Attackers() []*Card {
	if g.combat == nil {
		return nil
	}
	return g.combat.attackers
}

// CanAttack reports whether c may be declared as an attacker.
func (g *Game) CanAttack(c *Card) bool {
	if c.Creature == nil || c.Tapped || c.Creature.SummoningSick || c.Creature.IsDead || c.Creature.Attacking {
		return false
	}
	return g.owners[c.ID] == g.ActiveSeat() && g.OnBattlefield(c)
}

// DeclareAttacker taps c and adds it to combat. Illegal declarations, and
// any made after combat damage, are ignored and return false.
func (g *Game) DeclareAttacker(c *Card, verbose bool) bool {
	if g.combat == nil || g.combat.resolved || !g.CanAttack(c) {
		return false
	}
	c.Tapped = true
	c.Creature.Attacking = true
	g.combat.attackers = append(g.combat.attackers, c)

	evt := rules.NewEventWithAmount(rules.EventAttackerDeclared, g.ActiveSeat(), c.ID.String(), c.Creature.Power)
	evt.SourceName = c.Name
	evt.Target = g.nonactive
	g.publish(evt)
	g.narrate(verbose, "attacker declared",
		zap.String("attacker", c.Name),
		zap.String("defender", g.Players[g.nonactive].Name),
	)
	return true
}

// CanBlock reports whether blocker may block attacker.
func (g *Game) CanBlock(blocker, attacker *Card) bool {
	if g.combat == nil || g.combat.resolved || blocker.Creature == nil || attacker.Creature == nil {
		return false
	}
	b := blocker.Creature
	if blocker.Tapped || b.CannotBlock || b.IsDead || b.Blocking != nil {
		return false
	}
	if !attacker.Creature.Attacking || g.owners[blocker.ID] != g.nonactive {
		return false
	}
	return g.OnBattlefield(blocker)
}

// DeclareBlocker has blocker block attacker. A blocker blocks exactly one
// attacker; an attacker may be blocked by many. A new blocker discards the
// attacker's chosen order and assignment.
func (g *Game) DeclareBlocker(blocker, attacker *Card, verbose bool) bool {
	if !g.CanBlock(blocker, attacker) {
		return false
	}
	blocker.Creature.Blocking = attacker
	attacker.Creature.BlockedBy = append(attacker.Creature.BlockedBy, blocker)
	attacker.Creature.wasBlocked = true
	attacker.Creature.DamageAssignmentOrder = nil
	attacker.Creature.DamageAssignment = nil

	evt := rules.NewEvent(rules.EventBlockerDeclared, g.nonactive, blocker.ID.String())
	evt.SourceName = blocker.Name
	g.publish(evt)
	g.narrate(verbose, "blocker declared",
		zap.String("blocker", blocker.Name),
		zap.String("attacker", attacker.Name),
	)
	return true
}

// SetDamageAssignmentOrder chooses the order-th permutation of attacker's
// blockers.
func (g *Game) SetDamageAssignmentOrder(attacker *Card, order int) error {
	if attacker.Creature == nil {
		return fmt.Errorf("%w: %s is not a creature", ErrInvalidOrderIndex, attacker.Name)
	}
	return attacker.Creature.SetDamageAssignmentOrder(order)
}

// DealCombatDamageToOpponent deals the attacker's power to the defending
// player. Damage from a commander is also added to the commander-damage
// ledger. Returns false outside combat.
func (g *Game) DealCombatDamageToOpponent(attacker *Card, verbose bool) bool {
	victim := g.nonactive
	if victim == rules.NoPlayer || attacker.Creature == nil {
		return false
	}
	power := attacker.Creature.Power
	if power <= 0 {
		return true
	}
	g.LoseLife(victim, power, attacker, verbose)

	evt := rules.NewEventWithAmount(rules.EventDamagedPlayer, g.owners[attacker.ID], attacker.ID.String(), power)
	evt.SourceName = attacker.Name
	evt.Target = victim
	evt.Flag = true
	g.publish(evt)

	if attacker.IsCommander {
		ledger, ok := g.CommanderDamage[attacker.ID]
		if !ok {
			ledger = make(map[int]int)
			g.CommanderDamage[attacker.ID] = ledger
		}
		ledger[victim] += power

		cevt := rules.NewEventWithAmount(rules.EventCommanderDamage, g.owners[attacker.ID], attacker.ID.String(), ledger[victim])
		cevt.SourceName = attacker.Name
		cevt.Target = victim
		g.publish(cevt)
	}

	g.narrate(verbose, "combat damage to player",
		zap.String("attacker", attacker.Name),
		zap.String("victim", g.Players[victim].Name),
		zap.Int("damage", power),
		zap.Int("life", g.Players[victim].Life),
		zap.Bool("commander", attacker.IsCommander),
	)
	return true
}

// ResolveCombatDamage deals all combat damage at once and then checks
// state-based actions. An attacker whose blockers all left the battlefield
// deals no damage. Blocked attackers without a chosen order use order 0;
// those with an order but nothing assigned yet are assigned automatically.
// Any explicit assignment must be lethal-before-next, otherwise nothing is
// dealt and ErrIllegalDamageAssignment is returned.
func (g *Game) ResolveCombatDamage(verbose bool) error {
	if g.combat == nil || g.combat.resolved {
		return nil
	}

	for _, attacker := range g.combat.attackers {
		cr := attacker.Creature
		if len(cr.BlockedBy) == 0 {
			continue
		}
		if cr.DamageAssignmentOrder == nil {
			if err := cr.SetDamageAssignmentOrder(0); err != nil {
				return err
			}
		}
		if cr.DamageToAssign == cr.Power && allZero(cr.DamageAssignment) {
			cr.AutoAssign()
		}
		if err := cr.ValidateDamageAssignment(); err != nil {
			return fmt.Errorf("%s: %w", attacker.Name, err)
		}
	}

	for _, attacker := range g.combat.attackers {
		cr := attacker.Creature
		if len(cr.BlockedBy) == 0 {
			if !cr.wasBlocked {
				g.DealCombatDamageToOpponent(attacker, verbose)
			}
			continue
		}
		for i, blocker := range cr.DamageAssignmentOrder {
			g.damageCreature(blocker, attacker, cr.DamageAssignment[i], verbose)
		}
		for _, blocker := range cr.BlockedBy {
			g.damageCreature(attacker, blocker, blocker.Creature.Power, verbose)
		}
	}
	g.combat.resolved = true

	g.CheckStateBasedActions(verbose)
	return nil
}

func (g *Game) damageCreature(target, source *Card, amount int, verbose bool) {
	if amount <= 0 {
		return
	}
	target.Creature.TakeDamage(amount)
	evt := rules.NewEventWithAmount(rules.EventDamagedCreature, g.owners[target.ID], source.ID.String(), amount)
	evt.SourceName = source.Name
	evt.Flag = true
	g.publish(evt)
	g.narrate(verbose, "combat damage to creature",
		zap.String("source", source.Name),
		zap.String("target", target.Name),
		zap.Int("damage", amount),
		zap.Bool("dead", target.Creature.IsDead),
	)
}

// EndCombat clears all combat relations.
func (g *Game) EndCombat() {
	if g.combat == nil {
		return
	}
	for _, c := range g.Battlefield {
		if c.Creature != nil {
			c.Creature.clearCombat()
		}
	}
	for _, c := range g.combat.attackers {
		c.Creature.clearCombat()
	}
	g.combat = nil
	g.nonactive = rules.NoPlayer
}

func (g *Game) detachFromCombat(c *Card) {
	if c.Creature == nil || g.combat == nil {
		return
	}
	if attacker := c.Creature.Blocking; attacker != nil {
		attacker.Creature.BlockedBy, _ = removeCard(attacker.Creature.BlockedBy, c)
		attacker.Creature.DamageAssignmentOrder = nil
		attacker.Creature.DamageAssignment = nil
	}
	if c.Creature.Attacking {
		g.combat.attackers, _ = removeCard(g.combat.attackers, c)
		for _, b := range c.Creature.BlockedBy {
			b.Creature.Blocking = nil
		}
	}
	c.Creature.clearCombat()
}

func allZero(xs []int) bool {
	for _, x := range xs {
		if x != 0 {
			return false
		}
	}
	return true
}
