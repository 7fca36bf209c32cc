package sim

import (
	"cmp"
	"slices"

	"github.com/magefree/commander-go/internal/game"
	"github.com/magefree/commander-go/internal/game/mana"
	"github.com/magefree/commander-go/internal/game/rules"
	"go.uber.org/zap"
)

// debtOrder is the order in which mana is spent on generic debt: colorless
// first so colored mana stays available for colored symbols.
var debtOrder = append([]mana.ManaType{mana.ManaColorless}, mana.Colors...)

// pilot makes every decision for every seat using only the engine's public
// operations.
type pilot struct {
	g       *game.Game
	verbose bool
	logger  *zap.Logger
}

// act takes the active player's actions for the current phase.
func (p *pilot) act() {
	switch p.g.Phase() {
	case rules.PhaseMainPrecombat, rules.PhaseMainPostcombat:
		p.castEverything()
	case rules.PhaseDeclareAttackers:
		p.attack()
	case rules.PhaseDeclareBlockers:
		p.block()
	}
}

// castEverything plays a land if it can, taps every mana source and casts
// affordable cards until nothing more can be played.
func (p *pilot) castEverything() {
	seat := p.g.ActiveSeat()
	for !p.g.IsOver() && !p.g.Players[seat].HasLost {
		p.tapManaSources(seat)
		p.settleDebt(seat)

		ref, ok := p.choose(seat)
		if !ok {
			if p.crackTreasure(seat) {
				continue
			}
			return
		}
		if err := p.g.PlayCard(seat, ref, p.verbose); err != nil {
			p.logger.Warn("pilot chose an unplayable card", zap.Error(err))
			return
		}
		p.settleDebt(seat)
	}
}

// choose picks a land first, then a commander, then the most expensive spell.
func (p *pilot) choose(seat int) (game.CardRef, bool) {
	refs := p.g.PlayableCards(seat)
	if len(refs) == 0 {
		return game.CardRef{}, false
	}
	player := p.g.Players[seat]
	card := func(ref game.CardRef) *game.Card {
		if ref.Zone == game.ZoneCommand {
			return player.CommandZone[ref.Index]
		}
		return player.Hand[ref.Index]
	}
	rank := func(ref game.CardRef) int {
		c := card(ref)
		switch {
		case c.IsLand():
			return 1 << 20
		case ref.Zone == game.ZoneCommand:
			return 1 << 19
		}
		return p.g.EffectiveCost(seat, c, ref.Zone).ManaValue()
	}
	return slices.MaxFunc(refs, func(a, b game.CardRef) int {
		return cmp.Compare(rank(a), rank(b))
	}), true
}

// tapManaSources uses the tapped ability of every untapped nontoken
// permanent seat owns. Treasures are kept for later.
func (p *pilot) tapManaSources(seat int) {
	for _, c := range p.g.Permanents(seat) {
		if c.Tapped || c.IsToken || len(c.TappedAbilities) == 0 {
			continue
		}
		p.g.UseTappedAbility(c, 0, p.verbose)
	}
}

// crackTreasure sacrifices one treasure when the extra mana could pay for
// something in hand or the command zone.
func (p *pilot) crackTreasure(seat int) bool {
	player := p.g.Players[seat]
	var treasures []*game.Card
	for _, c := range p.g.Permanents(seat) {
		if c.IsToken && !c.Tapped && len(c.TappedAbilities) > 0 {
			treasures = append(treasures, c)
		}
	}
	if len(treasures) == 0 {
		return false
	}
	available := player.Pool.GetTotalMana() + len(treasures)
	cheapest := -1
	consider := func(c *game.Card, zone game.Zone) {
		if c.IsLand() {
			return
		}
		mv := p.g.EffectiveCost(seat, c, zone).ManaValue()
		if cheapest < 0 || mv < cheapest {
			cheapest = mv
		}
	}
	for _, c := range player.Hand {
		consider(c, game.ZoneHand)
	}
	for _, c := range player.CommandZone {
		consider(c, game.ZoneCommand)
	}
	if cheapest < 0 || cheapest > available {
		return false
	}
	return p.g.UseTappedAbility(treasures[0], 0, p.verbose)
}

func (p *pilot) settleDebt(seat int) {
	player := p.g.Players[seat]
	for _, t := range debtOrder {
		if !player.HasDebt() {
			return
		}
		p.g.PayGenericDebt(seat, t, p.verbose)
	}
}

// attack sends every creature that can attack at the opponent with the
// lowest life total.
func (p *pilot) attack() {
	seat := p.g.ActiveSeat()
	var attackers []*game.Card
	for _, c := range p.g.Permanents(seat) {
		if p.g.CanAttack(c) {
			attackers = append(attackers, c)
		}
	}
	opponents := p.g.Opponents(seat)
	if len(attackers) == 0 || len(opponents) == 0 {
		return
	}
	target := slices.MinFunc(opponents, func(a, b int) int {
		return cmp.Compare(p.g.Players[a].Life, p.g.Players[b].Life)
	})
	if !p.g.BeginCombat(target) {
		return
	}
	for _, c := range attackers {
		p.g.DeclareAttacker(c, p.verbose)
	}
}

// block has the defender block each attacker with a creature that survives
// it. When the attack is lethal, or an attacking commander would reach the
// threshold, the defender chump blocks as well.
func (p *pilot) block() {
	defender := p.g.NonactivePlayer()
	if defender == nil {
		return
	}
	attackers := slices.Clone(p.g.Attackers())
	slices.SortStableFunc(attackers, func(a, b *game.Card) int {
		return cmp.Compare(b.Creature.Power, a.Creature.Power)
	})

	incoming := 0
	for _, a := range attackers {
		incoming += a.Creature.Power
	}
	lethal := incoming >= defender.Life
	threshold := p.g.Rules().CommanderDamageThreshold

	for _, a := range attackers {
		mustBlock := lethal || (a.IsCommander && p.g.CommanderDamageFrom(a, defender.Index)+a.Creature.Power >= threshold)

		var chump *game.Card
		blocked := false
		for _, b := range p.g.Permanents(defender.Index) {
			if !p.g.CanBlock(b, a) {
				continue
			}
			if b.Creature.Toughness > a.Creature.Power {
				blocked = p.g.DeclareBlocker(b, a, p.verbose)
				break
			}
			if chump == nil {
				chump = b
			}
		}
		if !blocked && mustBlock && chump != nil {
			p.g.DeclareBlocker(chump, a, p.verbose)
		}
	}
}
