package game

import (
	"github.com/google/uuid"
	"github.com/magefree/commander-go/internal/game/mana"
)

// DefaultStartingLife is the Commander starting life total.
const DefaultStartingLife = 40

// Player holds one seat's resources. Generic debt and commander cast counts
// change only through Pay (via Game.PlayCard), PayGenericDebt and casts from
// the command zone.
type Player struct {
	Index int
	Name  string
	Life  int

	Pool        *mana.ManaPool
	GenericDebt int

	Hand        []*Card
	Deck        []*Card // top of the deck is the last element
	Commanders  []*Card
	CommandZone []*Card

	CommanderCastCount map[uuid.UUID]int

	HasLost     bool
	LossReason  string
	CanPlayLand bool

	// CastingSpell is the name of the last instant or sorcery cast this turn.
	CastingSpell string

	drewFromEmpty bool
}

// NewPlayer creates a player with a deck and commanders. Commanders are
// flagged and placed in the command zone.
func NewPlayer(name string, deck []*Card, commanders ...*Card) *Player {
	p := &Player{
		Name:               name,
		Life:               DefaultStartingLife,
		Pool:               mana.NewManaPool(),
		Deck:               deck,
		CommanderCastCount: make(map[uuid.UUID]int),
	}
	for _, c := range commanders {
		c.IsCommander = true
		p.Commanders = append(p.Commanders, c)
		p.CommandZone = append(p.CommandZone, c)
	}
	return p
}

// Draw takes the top card of the deck into hand. Drawing from an empty deck
// returns false and is recorded for the next state-based check.
func (p *Player) Draw() (*Card, bool) {
	if len(p.Deck) == 0 {
		p.drewFromEmpty = true
		return nil, false
	}
	c := p.Deck[len(p.Deck)-1]
	p.Deck = p.Deck[:len(p.Deck)-1]
	p.Hand = append(p.Hand, c)
	return c, true
}

// AddMana adds mana to the pool.
func (p *Player) AddMana(t mana.ManaType, amount int) {
	p.Pool.Add(t, amount)
}

// LoseLife reduces the life total.
func (p *Player) LoseLife(amount int) {
	if amount > 0 {
		p.Life -= amount
	}
}

// GainLife increases the life total.
func (p *Player) GainLife(amount int) {
	if amount > 0 {
		p.Life += amount
	}
}

// CanAfford reports whether the pool covers cost.
func (p *Player) CanAfford(cost mana.ManaCost) bool {
	return mana.CanAfford(p.Pool, cost)
}

// HasDebt reports whether generic debt is outstanding.
func (p *Player) HasDebt() bool {
	return p.GenericDebt > 0
}

// PayGenericDebt spends mana of one type against the outstanding debt, one
// unit per unit of debt. When the pool runs short the rest stays owed.
func (p *Player) PayGenericDebt(t mana.ManaType) {
	p.GenericDebt = mana.PayDebt(p.Pool, p.GenericDebt, t)
}

// CommanderIdentity is the union of the commanders' color identities.
func (p *Player) CommanderIdentity() mana.Identity {
	var id mana.Identity
	for _, c := range p.Commanders {
		id = id.Union(c.ColorIdentity())
	}
	return id
}

// CastCount returns how many times the commander was cast from the command zone.
func (p *Player) CastCount(commander *Card) int {
	return p.CommanderCastCount[commander.ID]
}

// IsAlive reports whether the player is still in the game.
func (p *Player) IsAlive() bool {
	return !p.HasLost
}

func removeCard(cards []*Card, c *Card) ([]*Card, bool) {
	for i, x := range cards {
		if x == c {
			return append(cards[:i], cards[i+1:]...), true
		}
	}
	return cards, false
}
