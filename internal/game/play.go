package game

import (
	"fmt"

	"github.com/magefree/commander-go/internal/game/mana"
	"github.com/magefree/commander-go/internal/game/rules"
	"go.uber.org/zap"
)

func (g *Game) cardAt(seat int, ref CardRef) (*Card, error) {
	p := g.Players[seat]
	var zone []*Card
	switch ref.Zone {
	case ZoneHand:
		zone = p.Hand
	case ZoneCommand:
		zone = p.CommandZone
	default:
		return nil, fmt.Errorf("%w: cannot play from %s", ErrInvalidCardRef, ref.Zone)
	}
	if ref.Index < 0 || ref.Index >= len(zone) {
		return nil, fmt.Errorf("%w: %s index %d", ErrInvalidCardRef, ref.Zone, ref.Index)
	}
	return zone[ref.Index], nil
}

// EffectiveCost returns what seat must pay to cast c from zone. Casting from
// the command zone adds the commander tax to the generic part.
func (g *Game) EffectiveCost(seat int, c *Card, zone Zone) mana.ManaCost {
	if zone != ZoneCommand {
		return c.Cost
	}
	prior := g.Players[seat].CastCount(c)
	return c.Cost.WithTax(mana.CommanderTax(prior, g.rules.CommanderTaxPerCast))
}

// CanAffordCard reports whether seat can pay for the referenced card.
func (g *Game) CanAffordCard(seat int, ref CardRef) bool {
	c, err := g.cardAt(seat, ref)
	if err != nil {
		return false
	}
	if c.IsLand() {
		return true
	}
	return g.Players[seat].CanAfford(g.EffectiveCost(seat, c, ref.Zone))
}

// PlayableCards lists the cards seat could play right now: lands while the
// land drop is unused, and affordable spells from hand and command zone.
func (g *Game) PlayableCards(seat int) []CardRef {
	p := g.Players[seat]
	var refs []CardRef
	for i, c := range p.Hand {
		if c.IsLand() {
			if p.CanPlayLand {
				refs = append(refs, CardRef{Zone: ZoneHand, Index: i})
			}
			continue
		}
		if p.CanAfford(g.EffectiveCost(seat, c, ZoneHand)) {
			refs = append(refs, CardRef{Zone: ZoneHand, Index: i})
		}
	}
	for i, c := range p.CommandZone {
		if p.CanAfford(g.EffectiveCost(seat, c, ZoneCommand)) {
			refs = append(refs, CardRef{Zone: ZoneCommand, Index: i})
		}
	}
	return refs
}

// PlayCard plays the referenced card for seat. Spells are paid for first:
// colored parts leave the pool and the generic part is added to the player's
// generic debt. Errors leave the game unchanged.
func (g *Game) PlayCard(seat int, ref CardRef, verbose bool) error {
	c, err := g.cardAt(seat, ref)
	if err != nil {
		return err
	}
	p := g.Players[seat]

	if c.IsLand() {
		if !p.CanPlayLand {
			return ErrLandAlreadyPlayed
		}
		p.Hand, _ = removeCard(p.Hand, c)
		p.CanPlayLand = false
		g.narrate(verbose, "playing land",
			zap.String("player", p.Name),
			zap.String("card", c.Name),
		)
		g.PutOntoBattlefield(seat, c)
		g.publishCard(rules.EventLandPlayed, seat, c, 0)
		if c.Behavior != nil {
			c.Behavior.Play(g, seat, c, verbose)
		}
		g.CheckStateBasedActions(verbose)
		return nil
	}

	cost := g.EffectiveCost(seat, c, ref.Zone)
	if !p.CanAfford(cost) {
		return fmt.Errorf("%w: %s costs %s", ErrCannotAfford, c.Name, cost)
	}
	p.GenericDebt += mana.Pay(p.Pool, cost)

	if ref.Zone == ZoneCommand {
		p.CommandZone, _ = removeCard(p.CommandZone, c)
		p.CommanderCastCount[c.ID]++
		g.publishCard(rules.EventCommanderCast, seat, c, p.CommanderCastCount[c.ID])
	} else {
		p.Hand, _ = removeCard(p.Hand, c)
	}
	g.publishCard(rules.EventSpellCast, seat, c, cost.ManaValue())
	g.narrate(verbose, "casting",
		zap.String("player", p.Name),
		zap.String("card", c.Name),
		zap.String("cost", cost.String()),
		zap.Int("generic_debt", p.GenericDebt),
	)

	if c.Kind.IsPermanent() {
		g.PutOntoBattlefield(seat, c)
	} else {
		p.CastingSpell = c.Name
	}
	if c.Behavior != nil {
		c.Behavior.Play(g, seat, c, verbose)
	}
	g.CheckStateBasedActions(verbose)
	return nil
}
