package cardpool

import (
	"github.com/magefree/commander-go/internal/game"
	"github.com/magefree/commander-go/internal/game/mana"
)

// addMana returns a tapped ability producing one mana of t.
func addMana(t mana.ManaType, amount int) game.TappedAbility {
	return func(g *game.Game, owner int, c *game.Card) {
		g.AddMana(owner, t, amount, false)
	}
}

// identityColor is the first color of the owner's commander identity in WUBRG
// order, or colorless for a colorless identity.
func identityColor(g *game.Game, owner int) mana.ManaType {
	colors := g.CommanderIdentity(owner).Colors()
	if len(colors) == 0 {
		return mana.ManaColorless
	}
	return colors[0]
}

func addIdentityMana(g *game.Game, owner int, c *game.Card) {
	g.AddMana(owner, identityColor(g, owner), 1, false)
}

func basicLand(name string, t mana.ManaType) *game.Card {
	return game.NewLand(name, []string{"Basic", "Land"}, []string{name}, addMana(t, 1))
}

func Plains() *game.Card   { return basicLand("Plains", mana.ManaWhite) }
func Island() *game.Card   { return basicLand("Island", mana.ManaBlue) }
func Swamp() *game.Card    { return basicLand("Swamp", mana.ManaBlack) }
func Mountain() *game.Card { return basicLand("Mountain", mana.ManaRed) }
func Forest() *game.Card   { return basicLand("Forest", mana.ManaGreen) }

// BasicFor returns the basic land producing color t, or nil for colorless.
func BasicFor(t mana.ManaType) *game.Card {
	switch t {
	case mana.ManaWhite:
		return Plains()
	case mana.ManaBlue:
		return Island()
	case mana.ManaBlack:
		return Swamp()
	case mana.ManaRed:
		return Mountain()
	case mana.ManaGreen:
		return Forest()
	}
	return nil
}

// CommandTower taps for one mana of the first color of its owner's commander
// identity.
func CommandTower() *game.Card {
	return game.NewLand("Command Tower", []string{"Land"}, nil, addIdentityMana)
}
