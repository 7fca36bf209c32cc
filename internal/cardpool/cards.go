package cardpool

import (
	"github.com/magefree/commander-go/internal/game"
	"github.com/magefree/commander-go/internal/game/mana"
	"go.uber.org/zap"
)

// SolRing taps for two colorless.
func SolRing() *game.Card {
	return game.NewArtifact("Sol Ring", nil, mana.MustParseCost("{1}"), addMana(mana.ManaColorless, 2))
}

// ArcaneSignet taps for one mana of the commander identity's first color.
func ArcaneSignet() *game.Card {
	return game.NewArtifact("Arcane Signet", nil, mana.MustParseCost("{2}"), addIdentityMana)
}

// Treasure is the token Dockside Extortionist makes. It taps and leaves the
// battlefield for one mana of the identity's first color.
func Treasure() *game.Card {
	return game.NewArtifact("Treasure", []string{"Treasure"}, mana.ManaCost{}, func(g *game.Game, owner int, c *game.Card) {
		addIdentityMana(g, owner, c)
		g.MoveFromBattlefield(c, game.ZoneGraveyard, false)
	})
}

// Cultivate finds the first two basic lands in the deck. The first enters the
// battlefield tapped, the second goes to hand. The deck is then shuffled.
func Cultivate() *game.Card {
	return game.NewSorcery("Cultivate", nil, mana.MustParseCost("{2}{G}")).WithBehavior(game.BehaviorFunc(playCultivate))
}

func playCultivate(g *game.Game, owner int, c *game.Card, verbose bool) {
	p := g.Players[owner]
	var found []*game.Card
	for _, card := range p.Deck {
		if card.IsBasicLand() {
			found = append(found, card)
			if len(found) == 2 {
				break
			}
		}
	}
	for _, land := range found {
		p.Deck = without(p.Deck, land)
	}
	if len(found) > 0 {
		g.PutOntoBattlefield(owner, found[0])
		found[0].Tapped = true
		narrate(g, verbose, "Cultivate put a land onto the battlefield tapped", zap.String("land", found[0].Name))
	}
	if len(found) > 1 {
		p.Hand = append(p.Hand, found[1])
		narrate(g, verbose, "Cultivate put a land into hand", zap.String("land", found[1].Name))
	}
	g.Shuffle(owner)
}

// SwordsToPlowshares exiles the first opposing creature on the battlefield.
// Its owner gains life equal to its power.
func SwordsToPlowshares() *game.Card {
	return game.NewInstant("Swords to Plowshares", nil, mana.MustParseCost("{W}")).WithBehavior(game.BehaviorFunc(func(g *game.Game, owner int, c *game.Card, verbose bool) {
		target := firstOpposing(g, owner, func(p *game.Card) bool { return p.IsCreature() })
		if target == nil {
			return
		}
		victim, _ := g.OwnerOf(target)
		power := target.Creature.Power
		g.MoveFromBattlefield(target, game.ZoneExile, verbose)
		g.GainLife(victim, power, verbose)
		narrate(g, verbose, "Swords to Plowshares exiled a creature",
			zap.String("target", target.Name),
			zap.Int("life_gained", power),
		)
	}))
}

// CyclonicRift returns the first opposing nonland permanent to its owner's hand.
func CyclonicRift() *game.Card {
	return game.NewInstant("Cyclonic Rift", nil, mana.MustParseCost("{1}{U}")).WithBehavior(game.BehaviorFunc(func(g *game.Game, owner int, c *game.Card, verbose bool) {
		target := firstOpposing(g, owner, func(p *game.Card) bool { return !p.IsLand() })
		if target == nil {
			return
		}
		g.ReturnToHand(target, verbose)
	}))
}

// RhysticStudy has no triggered ability in this engine.
func RhysticStudy() *game.Card {
	return game.NewEnchantment("Rhystic Study", nil, mana.MustParseCost("{2}{U}"))
}

// SmotheringTithe has no triggered ability in this engine.
func SmotheringTithe() *game.Card {
	return game.NewEnchantment("Smothering Tithe", nil, mana.MustParseCost("{3}{W}"))
}

// DocksideExtortionist creates a Treasure for each artifact and enchantment
// its owner's opponents have on the battlefield.
func DocksideExtortionist() *game.Card {
	c := game.NewCreature("Dockside Extortionist", []string{"Goblin", "Pirate"}, mana.MustParseCost("{1}{R}"), 1, 2)
	return c.WithBehavior(game.BehaviorFunc(func(g *game.Game, owner int, c *game.Card, verbose bool) {
		count := 0
		for _, p := range g.Battlefield {
			if seat, _ := g.OwnerOf(p); seat == owner {
				continue
			}
			if p.Kind == game.KindArtifact || p.Kind == game.KindEnchantment {
				count++
			}
		}
		for i := 0; i < count; i++ {
			g.CreateToken(owner, Treasure(), verbose)
		}
		narrate(g, verbose, "Dockside Extortionist created treasures", zap.Int("count", count))
	}))
}

// DemonicTutor puts the bottom card of the deck into hand and shuffles.
func DemonicTutor() *game.Card {
	return game.NewSorcery("Demonic Tutor", nil, mana.MustParseCost("{1}{B}")).WithBehavior(game.BehaviorFunc(func(g *game.Game, owner int, c *game.Card, verbose bool) {
		p := g.Players[owner]
		if len(p.Deck) == 0 {
			return
		}
		card := p.Deck[0]
		p.Deck = p.Deck[1:]
		p.Hand = append(p.Hand, card)
		narrate(g, verbose, "Demonic Tutor found a card", zap.String("card", card.Name))
		g.Shuffle(owner)
	}))
}

func GrizzlyBears() *game.Card {
	return game.NewCreature("Grizzly Bears", []string{"Bear"}, mana.MustParseCost("{1}{G}"), 2, 2)
}

func HillGiant() *game.Card {
	return game.NewCreature("Hill Giant", []string{"Giant"}, mana.MustParseCost("{3}{R}"), 3, 3)
}

func CrawWurm() *game.Card {
	return game.NewCreature("Craw Wurm", []string{"Wurm"}, mana.MustParseCost("{4}{G}{G}"), 6, 4)
}

func Yargle() *game.Card {
	return game.NewCreature("Yargle, Glutton of Urborg", []string{"Frog", "Spirit"}, mana.MustParseCost("{4}{B}"), 9, 3)
}

func Isamaru() *game.Card {
	return game.NewCreature("Isamaru, Hound of Konda", []string{"Dog"}, mana.MustParseCost("{W}"), 2, 2)
}

func ZurgoBellstriker() *game.Card {
	return game.NewCreature("Zurgo Bellstriker", []string{"Orc", "Warrior"}, mana.MustParseCost("{R}"), 2, 2)
}

// firstOpposing returns the first permanent in battlefield order that an
// opponent of owner owns and that matches.
func firstOpposing(g *game.Game, owner int, match func(*game.Card) bool) *game.Card {
	for _, p := range g.Battlefield {
		if seat, _ := g.OwnerOf(p); seat != owner && match(p) {
			return p
		}
	}
	return nil
}

func without(cards []*game.Card, c *game.Card) []*game.Card {
	for i, x := range cards {
		if x == c {
			return append(cards[:i:i], cards[i+1:]...)
		}
	}
	return cards
}

func narrate(g *game.Game, verbose bool, msg string, fields ...zap.Field) {
	if verbose {
		g.Logger().Info(msg, fields...)
		return
	}
	g.Logger().Debug(msg, fields...)
}
