package game

import (
	"slices"

	"github.com/google/uuid"
	"github.com/magefree/commander-go/internal/game/counters"
	"github.com/magefree/commander-go/internal/game/mana"
)

// CardKind is the closed set of card variants.
type CardKind int

const (
	KindLand CardKind = iota
	KindCreature
	KindSorcery
	KindInstant
	KindArtifact
	KindEnchantment
	KindPlaneswalker
)

var kindNames = map[CardKind]string{
	KindLand:         "Land",
	KindCreature:     "Creature",
	KindSorcery:      "Sorcery",
	KindInstant:      "Instant",
	KindArtifact:     "Artifact",
	KindEnchantment:  "Enchantment",
	KindPlaneswalker: "Planeswalker",
}

func (k CardKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsPermanent reports whether cards of this kind stay on the battlefield.
func (k CardKind) IsPermanent() bool {
	return k != KindSorcery && k != KindInstant
}

// TappedAbility is invoked when a permanent is tapped for its effect.
// owner is the seat of the permanent's owner.
type TappedAbility func(g *Game, owner int, c *Card)

// Behavior is the effect a card has when it is played, run after the default
// play for its kind (entering the battlefield or being cast).
type Behavior interface {
	Play(g *Game, owner int, c *Card, verbose bool)
}

// BehaviorFunc adapts a function to Behavior.
type BehaviorFunc func(g *Game, owner int, c *Card, verbose bool)

// Play implements Behavior.
func (f BehaviorFunc) Play(g *Game, owner int, c *Card, verbose bool) {
	f(g, owner, c, verbose)
}

// Card is a single card instance. Cost, Subtypes and BasicLandColors are fixed
// at construction, so the color identity never changes.
type Card struct {
	ID       uuid.UUID
	Kind     CardKind
	Name     string
	Types    []string
	Subtypes []string
	Cost     mana.ManaCost

	// BasicLandColors holds the colors implied by basic land subtypes; empty
	// for everything else.
	BasicLandColors mana.Identity

	Tapped      bool
	IsCommander bool
	IsToken     bool

	TappedAbilities []TappedAbility
	Behavior        Behavior

	Creature *Creature
	Counters *counters.Counters
}

func newCard(kind CardKind, name string, types, subtypes []string, cost mana.ManaCost) *Card {
	return &Card{
		ID:              uuid.New(),
		Kind:            kind,
		Name:            name,
		Types:           types,
		Subtypes:        subtypes,
		Cost:            cost,
		BasicLandColors: mana.BasicLandIdentity(subtypes),
		Counters:        counters.NewCounters(),
	}
}

// NewLand creates a land. Basic lands carry "Basic" in types.
func NewLand(name string, types, subtypes []string, abilities ...TappedAbility) *Card {
	c := newCard(KindLand, name, types, subtypes, mana.ManaCost{})
	c.TappedAbilities = abilities
	return c
}

// NewCreature creates a creature with the given base power and toughness.
func NewCreature(name string, subtypes []string, cost mana.ManaCost, power, toughness int) *Card {
	c := newCard(KindCreature, name, []string{"Creature"}, subtypes, cost)
	c.Creature = newCreatureState(power, toughness)
	return c
}

// NewSorcery creates a sorcery.
func NewSorcery(name string, subtypes []string, cost mana.ManaCost) *Card {
	return newCard(KindSorcery, name, []string{"Sorcery"}, subtypes, cost)
}

// NewInstant creates an instant.
func NewInstant(name string, subtypes []string, cost mana.ManaCost) *Card {
	return newCard(KindInstant, name, []string{"Instant"}, subtypes, cost)
}

// NewArtifact creates an artifact, optionally with tapped abilities.
func NewArtifact(name string, subtypes []string, cost mana.ManaCost, abilities ...TappedAbility) *Card {
	c := newCard(KindArtifact, name, []string{"Artifact"}, subtypes, cost)
	c.TappedAbilities = abilities
	return c
}

// NewEnchantment creates an enchantment.
func NewEnchantment(name string, subtypes []string, cost mana.ManaCost) *Card {
	return newCard(KindEnchantment, name, []string{"Enchantment"}, subtypes, cost)
}

// NewPlaneswalker creates a planeswalker with starting loyalty.
func NewPlaneswalker(name string, subtypes []string, cost mana.ManaCost, loyalty int) *Card {
	c := newCard(KindPlaneswalker, name, []string{"Planeswalker"}, subtypes, cost)
	c.Counters.Add(counters.CounterTypeLoyalty, loyalty)
	return c
}

// WithBehavior sets the card's play behavior and returns the card.
func (c *Card) WithBehavior(b Behavior) *Card {
	c.Behavior = b
	return c
}

// ColorIdentity is the union of the colored symbols in the cost and the
// colors of any basic land subtypes.
func (c *Card) ColorIdentity() mana.Identity {
	return c.Cost.ColorIdentity().Union(c.BasicLandColors)
}

// IsInstant reports whether the card can be cast at instant speed.
func (c *Card) IsInstant() bool {
	return c.Kind == KindInstant
}

// IsLand reports whether the card is a land.
func (c *Card) IsLand() bool {
	return c.Kind == KindLand
}

// IsBasicLand reports whether the card is a basic land.
func (c *Card) IsBasicLand() bool {
	return c.Kind == KindLand && slices.Contains(c.Types, "Basic")
}

// IsCreature reports whether the card carries creature state.
func (c *Card) IsCreature() bool {
	return c.Creature != nil
}

// Loyalty returns the planeswalker's loyalty counters.
func (c *Card) Loyalty() int {
	return c.Counters.Get(counters.CounterTypeLoyalty)
}

func (c *Card) String() string {
	return c.Name
}
