package game

import (
	"fmt"
	"testing"

	"github.com/magefree/commander-go/internal/game/mana"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func forest() *Card {
	return NewLand("Forest", []string{"Basic", "Land"}, []string{"Forest"})
}

func vanilla(name, cost string, power, toughness int) *Card {
	return NewCreature(name, nil, mana.MustParseCost(cost), power, toughness)
}

func forestDeck(n int) []*Card {
	deck := make([]*Card, 0, n)
	for i := 0; i < n; i++ {
		deck = append(deck, forest())
	}
	return deck
}

// newTestGame seats n players with 20-Forest decks and no commanders.
func newTestGame(t *testing.T, n int, opts ...Option) *Game {
	t.Helper()
	players := make([]*Player, n)
	for i := range players {
		players[i] = NewPlayer(fmt.Sprintf("P%d", i), forestDeck(20))
	}
	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	g, err := NewGame(players, opts...)
	require.NoError(t, err)
	return g
}

// ready puts a creature onto the battlefield able to attack and block.
func ready(g *Game, seat int, c *Card) *Card {
	g.PutOntoBattlefield(seat, c)
	c.Creature.SummoningSick = false
	return c
}
