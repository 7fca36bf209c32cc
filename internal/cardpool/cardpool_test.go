package cardpool

import (
	"testing"

	"github.com/magefree/commander-go/internal/game"
	"github.com/magefree/commander-go/internal/game/mana"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func repeat(ctor func() *game.Card, n int) []*game.Card {
	out := make([]*game.Card, n)
	for i := range out {
		out[i] = ctor()
	}
	return out
}

// newGame seats Alice (commander given) against Bob (Isamaru) with 10-card
// decks of the given basic.
func newGame(t *testing.T, commander *game.Card, basic func() *game.Card) *game.Game {
	t.Helper()
	players := []*game.Player{
		game.NewPlayer("Alice", repeat(basic, 10), commander),
		game.NewPlayer("Bob", repeat(Plains, 10), Isamaru()),
	}
	g, err := game.NewGame(players, game.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	return g
}

func cast(t *testing.T, g *game.Game, seat int, c *game.Card) {
	t.Helper()
	p := g.Players[seat]
	p.Hand = append(p.Hand, c)
	for _, color := range mana.PoolTypes {
		p.AddMana(color, c.Cost.Amount(color))
	}
	p.AddMana(mana.ManaColorless, c.Cost.Generic)
	require.NoError(t, g.PlayCard(seat, game.CardRef{Zone: game.ZoneHand, Index: len(p.Hand) - 1}, false))
	g.PayGenericDebt(seat, mana.ManaColorless, false)
}

func TestRegistry(t *testing.T) {
	for _, name := range Names() {
		c, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, c.Name)
	}

	a, b := MustLookup("Sol Ring"), MustLookup("Sol Ring")
	assert.NotEqual(t, a.ID, b.ID, "each lookup is a new card")

	_, err := Lookup("Black Lotus")
	assert.ErrorIs(t, err, ErrUnknownCard)
	assert.Panics(t, func() { MustLookup("Black Lotus") })
}

func TestColorIdentities(t *testing.T) {
	tests := []struct {
		name string
		want mana.Identity
	}{
		{"Forest", mana.IdentityOf(mana.ManaGreen)},
		{"Island", mana.IdentityOf(mana.ManaBlue)},
		{"Command Tower", 0},
		{"Sol Ring", 0},
		{"Cultivate", mana.IdentityOf(mana.ManaGreen)},
		{"Swords to Plowshares", mana.IdentityOf(mana.ManaWhite)},
		{"Dockside Extortionist", mana.IdentityOf(mana.ManaRed)},
		{"Yargle, Glutton of Urborg", mana.IdentityOf(mana.ManaBlack)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MustLookup(tt.name).ColorIdentity())
		})
	}
}

func TestBasicLandsTapForTheirColor(t *testing.T) {
	g := newGame(t, ZurgoBellstriker(), Mountain)
	for _, ctor := range []func() *game.Card{Plains, Island, Swamp, Mountain, Forest} {
		land := ctor()
		g.PutOntoBattlefield(0, land)
		require.True(t, g.UseTappedAbility(land, 0, false))
	}
	pool := g.Players[0].Pool
	for _, color := range mana.Colors {
		assert.Equal(t, 1, pool.Get(color), color)
	}
	assert.True(t, BasicFor(mana.ManaBlue).IsBasicLand())
	assert.Nil(t, BasicFor(mana.ManaColorless))
}

func TestManaRocks(t *testing.T) {
	g := newGame(t, ZurgoBellstriker(), Mountain)
	ring, signet, tower := SolRing(), ArcaneSignet(), CommandTower()
	for _, c := range []*game.Card{ring, signet, tower} {
		g.PutOntoBattlefield(0, c)
		require.True(t, g.UseTappedAbility(c, 0, false))
	}
	pool := g.Players[0].Pool
	assert.Equal(t, 2, pool.Get(mana.ManaColorless))
	assert.Equal(t, 2, pool.Get(mana.ManaRed))
}

func TestIdentityManaWithoutColors(t *testing.T) {
	players := []*game.Player{
		game.NewPlayer("Alice", repeat(Forest, 5)),
		game.NewPlayer("Bob", repeat(Forest, 5)),
	}
	g, err := game.NewGame(players)
	require.NoError(t, err)
	tower := CommandTower()
	g.PutOntoBattlefield(0, tower)
	g.UseTappedAbility(tower, 0, false)
	assert.Equal(t, 1, g.Players[0].Pool.Get(mana.ManaColorless))
}

func TestCultivate(t *testing.T) {
	g := newGame(t, GrizzlyBears(), Forest)
	alice := g.Players[0]
	alice.Deck = []*game.Card{HillGiant(), Forest(), SolRing(), Island(), Swamp()}

	cast(t, g, 0, Cultivate())

	lands := g.Permanents(0)
	require.Len(t, lands, 1)
	assert.Equal(t, "Forest", lands[0].Name)
	assert.True(t, lands[0].Tapped)
	require.Len(t, alice.Hand, 1)
	assert.Equal(t, "Island", alice.Hand[0].Name)
	assert.Len(t, alice.Deck, 3)
	assert.Equal(t, "Cultivate", alice.CastingSpell)
}

func TestSwordsToPlowshares(t *testing.T) {
	g := newGame(t, Isamaru(), Plains)
	ours := GrizzlyBears()
	g.PutOntoBattlefield(0, ours)
	g.PutOntoBattlefield(1, SolRing())
	giant := HillGiant()
	g.PutOntoBattlefield(1, giant)

	cast(t, g, 0, SwordsToPlowshares())

	assert.False(t, g.OnBattlefield(giant))
	assert.True(t, g.OnBattlefield(ours))
	assert.Equal(t, 43, g.Players[1].Life)
}

func TestSwordsToPlowsharesOnCommander(t *testing.T) {
	g := newGame(t, Isamaru(), Plains)
	bob := g.Players[1]
	commander := bob.CommandZone[0]
	bob.CommandZone = nil
	g.PutOntoBattlefield(1, commander)

	cast(t, g, 0, SwordsToPlowshares())
	assert.Equal(t, []*game.Card{commander}, bob.CommandZone)
	assert.Equal(t, 42, bob.Life)
}

func TestCyclonicRift(t *testing.T) {
	g := newGame(t, GrizzlyBears(), Island)
	g.PutOntoBattlefield(1, Plains())
	giant := HillGiant()
	g.PutOntoBattlefield(1, giant)

	cast(t, g, 0, CyclonicRift())
	assert.False(t, g.OnBattlefield(giant))
	assert.Contains(t, g.Players[1].Hand, giant)
	assert.Len(t, g.Permanents(1), 1, "lands stay")
}

func TestEnchantmentsEnterTheBattlefield(t *testing.T) {
	g := newGame(t, GrizzlyBears(), Island)
	study, tithe := RhysticStudy(), SmotheringTithe()
	cast(t, g, 0, study)
	cast(t, g, 0, tithe)
	assert.True(t, g.OnBattlefield(study))
	assert.True(t, g.OnBattlefield(tithe))
}

func TestDocksideExtortionist(t *testing.T) {
	g := newGame(t, ZurgoBellstriker(), Mountain)
	g.PutOntoBattlefield(1, SolRing())
	g.PutOntoBattlefield(1, RhysticStudy())
	g.PutOntoBattlefield(1, HillGiant())
	g.PutOntoBattlefield(0, ArcaneSignet())

	cast(t, g, 0, DocksideExtortionist())

	var treasures []*game.Card
	for _, c := range g.Permanents(0) {
		if c.Name == "Treasure" {
			treasures = append(treasures, c)
		}
	}
	require.Len(t, treasures, 2)
	assert.True(t, treasures[0].IsToken)

	require.True(t, g.UseTappedAbility(treasures[0], 0, false))
	assert.Equal(t, 1, g.Players[0].Pool.Get(mana.ManaRed))
	assert.False(t, g.OnBattlefield(treasures[0]), "treasure is sacrificed")
	assert.NotContains(t, g.Players[0].Hand, treasures[0])
}

func TestDemonicTutor(t *testing.T) {
	g := newGame(t, Yargle(), Swamp)
	alice := g.Players[0]
	alice.Deck = []*game.Card{CrawWurm(), Swamp(), Swamp()}

	cast(t, g, 0, DemonicTutor())
	require.Len(t, alice.Hand, 1)
	assert.Equal(t, "Craw Wurm", alice.Hand[0].Name)
	assert.Len(t, alice.Deck, 2)

	alice.Deck = nil
	cast(t, g, 0, DemonicTutor())
	assert.Len(t, alice.Hand, 1)
}
