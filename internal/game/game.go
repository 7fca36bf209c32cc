package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/magefree/commander-go/internal/game/mana"
	"github.com/magefree/commander-go/internal/game/rules"
	"github.com/magefree/commander-go/internal/game/watchers"
	"go.uber.org/zap"
)

// Shuffler shuffles a sequence in place. *rand.Rand from math/rand/v2
// satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Rules holds the tunable format constants.
type Rules struct {
	StartingLife             int
	CommanderDamageThreshold int
	CommanderTaxPerCast      int
	OpeningHand              int
	// SkipFirstDraw skips the draw step on the first turn of the game.
	SkipFirstDraw bool
}

// DefaultRules returns the Commander defaults.
func DefaultRules() Rules {
	return Rules{
		StartingLife:             DefaultStartingLife,
		CommanderDamageThreshold: 21,
		CommanderTaxPerCast:      mana.DefaultTaxPerCast,
		OpeningHand:              7,
		SkipFirstDraw:            true,
	}
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger used for narration.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithShuffler sets the shuffle source.
func WithShuffler(s Shuffler) Option {
	return func(g *Game) {
		g.shuffler = s
	}
}

// WithRules overrides the format constants.
func WithRules(r Rules) Option {
	return func(g *Game) {
		g.rules = r
	}
}

// WithDeckValidation makes NewGame fail when a deck breaks color identity.
func WithDeckValidation() Option {
	return func(g *Game) {
		g.validateDecks = true
	}
}

// WithID sets the game ID instead of a random one.
func WithID(id uuid.UUID) Option {
	return func(g *Game) {
		g.ID = id
	}
}

// Zone names a place a card can be in.
type Zone string

const (
	ZoneLibrary     Zone = "LIBRARY"
	ZoneHand        Zone = "HAND"
	ZoneBattlefield Zone = "BATTLEFIELD"
	ZoneGraveyard   Zone = "GRAVEYARD"
	ZoneExile       Zone = "EXILE"
	ZoneCommand     Zone = "COMMAND"
)

// CardRef points at a playable card by zone and index.
type CardRef struct {
	Zone  Zone
	Index int
}

// Game is a single Commander game. It is not safe for concurrent use; one
// goroutine drives it from start to finish.
type Game struct {
	ID      uuid.UUID
	Players []*Player

	// Battlefield is shared by all players; ownership is kept in owners.
	Battlefield []*Card
	owners      map[uuid.UUID]int

	// CommanderDamage maps commander card ID to victim seat to accumulated
	// combat damage. Entries only exist for commanders and never decrease.
	CommanderDamage map[uuid.UUID]map[int]int

	turn      *rules.TurnManager
	nonactive int
	combat    *combatState
	started   bool
	over      bool

	rules         Rules
	validateDecks bool
	logger        *zap.Logger
	shuffler      Shuffler
	bus           *rules.EventBus
	watchers      *rules.WatcherRegistry
}

// NewGame seats the players in order and records ownership of every card
// they bring. With WithDeckValidation it returns a *rules.DeckValidationError
// listing every card outside its commanders' color identity.
func NewGame(players []*Player, opts ...Option) (*Game, error) {
	if len(players) < 2 {
		return nil, ErrNotEnoughPlayers
	}

	g := &Game{
		ID:              uuid.New(),
		Players:         players,
		owners:          make(map[uuid.UUID]int),
		CommanderDamage: make(map[uuid.UUID]map[int]int),
		nonactive:       rules.NoPlayer,
		rules:           DefaultRules(),
		logger:          zap.NewNop(),
		bus:             rules.NewEventBus(),
		watchers:        rules.NewWatcherRegistry(),
	}
	for _, opt := range opts {
		opt(g)
	}

	for i, p := range players {
		p.Index = i
		p.Life = g.rules.StartingLife
		for _, zone := range [][]*Card{p.Deck, p.Hand, p.CommandZone, p.Commanders} {
			for _, c := range zone {
				g.owners[c.ID] = i
			}
		}
	}
	g.turn = rules.NewTurnManager(len(players), 0)

	for _, w := range watchers.Standard() {
		g.watchers.AddWatcher(w)
	}
	g.bus.Subscribe(g.watchers.NotifyWatchers)

	if g.validateDecks {
		if err := g.ValidateDecks(); err != nil {
			return nil, fmt.Errorf("new game: %w", err)
		}
	}
	return g, nil
}

// Events returns the game's event bus.
func (g *Game) Events() *rules.EventBus {
	return g.bus
}

// Watchers returns the game's watcher registry.
func (g *Game) Watchers() *rules.WatcherRegistry {
	return g.watchers
}

// Rules returns the format constants in use.
func (g *Game) Rules() Rules {
	return g.rules
}

// Logger returns the game's logger.
func (g *Game) Logger() *zap.Logger {
	return g.logger
}

// ActiveSeat returns the seat of the active player.
func (g *Game) ActiveSeat() int {
	return g.turn.ActiveSeat()
}

// ActivePlayer returns the active player.
func (g *Game) ActivePlayer() *Player {
	return g.Players[g.turn.ActiveSeat()]
}

// SetActivePlayer makes seat the active player.
func (g *Game) SetActivePlayer(seat int) {
	g.turn.SetActiveSeat(seat)
}

// NonactivePlayer returns the defending player during combat, or nil.
func (g *Game) NonactivePlayer() *Player {
	if g.nonactive == rules.NoPlayer {
		return nil
	}
	return g.Players[g.nonactive]
}

// Phase returns the current phase.
func (g *Game) Phase() rules.Phase {
	return g.turn.Phase()
}

// TurnNumber returns the current turn number.
func (g *Game) TurnNumber() int {
	return g.turn.TurnNumber()
}

// OwnerOf returns the seat owning the card, or false if the game has never
// seen it.
func (g *Game) OwnerOf(c *Card) (int, bool) {
	seat, ok := g.owners[c.ID]
	return seat, ok
}

// Opponents returns the living seats other than seat, in turn order after it.
func (g *Game) Opponents(seat int) []int {
	var out []int
	for i := 1; i < len(g.Players); i++ {
		s := (seat + i) % len(g.Players)
		if !g.Players[s].HasLost {
			out = append(out, s)
		}
	}
	return out
}

// CommanderIdentity returns the combined color identity of a seat's commanders.
func (g *Game) CommanderIdentity(seat int) mana.Identity {
	return g.Players[seat].CommanderIdentity()
}

// ValidateDecks checks every card each player brought against the union of
// that player's commander identities.
func (g *Game) ValidateDecks() error {
	decks := make([]rules.DeckSubmission, 0, len(g.Players))
	for _, p := range g.Players {
		sub := rules.DeckSubmission{Player: p.Index, PlayerName: p.Name}
		for _, c := range p.Commanders {
			sub.Commanders = append(sub.Commanders, rules.IdentityCard{Name: c.Name, Identity: c.ColorIdentity()})
		}
		for _, zone := range [][]*Card{p.Deck, p.Hand} {
			for _, c := range zone {
				sub.Cards = append(sub.Cards, rules.IdentityCard{Name: c.Name, Identity: c.ColorIdentity()})
			}
		}
		decks = append(decks, sub)
	}
	return rules.ValidateColorIdentity(decks)
}

func (g *Game) narrate(verbose bool, msg string, fields ...zap.Field) {
	if verbose {
		g.logger.Info(msg, fields...)
		return
	}
	g.logger.Debug(msg, fields...)
}

func (g *Game) publish(evt rules.Event) {
	evt.Turn = g.turn.TurnNumber()
	g.bus.Publish(evt)
}

func (g *Game) publishCard(t rules.EventType, seat int, c *Card, amount int) {
	evt := rules.NewEventWithAmount(t, seat, c.ID.String(), amount)
	evt.SourceName = c.Name
	g.publish(evt)
}

// PutOntoBattlefield puts a card onto the battlefield under its owner.
func (g *Game) PutOntoBattlefield(owner int, c *Card) {
	g.owners[c.ID] = owner
	if c.Creature != nil {
		c.Creature.SummoningSick = true
		c.Creature.clearCombat()
	}
	g.Battlefield = append(g.Battlefield, c)
	evt := rules.NewEvent(rules.EventZoneChange, owner, c.ID.String())
	evt.SourceName = c.Name
	evt.Zone = string(ZoneBattlefield)
	g.publish(evt)
}

// CreateToken puts a token onto the battlefield.
func (g *Game) CreateToken(owner int, token *Card, verbose bool) {
	token.IsToken = true
	g.PutOntoBattlefield(owner, token)
	g.publishCard(rules.EventCreatedToken, owner, token, 1)
	g.narrate(verbose, "token created",
		zap.String("player", g.Players[owner].Name),
		zap.String("token", token.Name),
	)
}

// OnBattlefield reports whether c is on the battlefield.
func (g *Game) OnBattlefield(c *Card) bool {
	for _, x := range g.Battlefield {
		if x == c {
			return true
		}
	}
	return false
}

// Permanents returns the permanents owned by seat, in battlefield order.
func (g *Game) Permanents(seat int) []*Card {
	var out []*Card
	for _, c := range g.Battlefield {
		if g.owners[c.ID] == seat {
			out = append(out, c)
		}
	}
	return out
}

// MoveFromBattlefield takes c off the battlefield into dest. Commanders that
// would go to the graveyard or exile go to the command zone instead. Tokens
// cease to exist. Returns false if c was not on the battlefield.
func (g *Game) MoveFromBattlefield(c *Card, dest Zone, verbose bool) bool {
	var ok bool
	g.Battlefield, ok = removeCard(g.Battlefield, c)
	if !ok {
		return false
	}
	g.detachFromCombat(c)
	c.Tapped = false
	if c.Creature != nil {
		c.Creature.ClearDamage()
	}

	owner := g.owners[c.ID]
	p := g.Players[owner]
	if c.IsCommander && (dest == ZoneGraveyard || dest == ZoneExile) {
		dest = ZoneCommand
	}
	if !c.IsToken {
		switch dest {
		case ZoneHand:
			p.Hand = append(p.Hand, c)
		case ZoneCommand:
			p.CommandZone = append(p.CommandZone, c)
		case ZoneLibrary:
			p.Deck = append(p.Deck, c)
		}
	}

	evt := rules.NewEvent(rules.EventZoneChange, owner, c.ID.String())
	evt.SourceName = c.Name
	evt.Zone = string(dest)
	g.publish(evt)
	g.narrate(verbose, "card left the battlefield",
		zap.String("card", c.Name),
		zap.String("owner", p.Name),
		zap.String("to", string(dest)),
	)
	return true
}

// ReturnToHand returns a permanent to its owner's hand.
func (g *Game) ReturnToHand(c *Card, verbose bool) bool {
	return g.MoveFromBattlefield(c, ZoneHand, verbose)
}

// Shuffle shuffles a player's deck with the game's shuffler. Without a
// shuffler the deck order is left alone.
func (g *Game) Shuffle(seat int) {
	p := g.Players[seat]
	if g.shuffler != nil {
		g.shuffler.Shuffle(len(p.Deck), func(i, j int) {
			p.Deck[i], p.Deck[j] = p.Deck[j], p.Deck[i]
		})
	}
	g.publish(rules.NewEvent(rules.EventLibraryShuffled, seat, ""))
}

// Draw draws a card for seat.
func (g *Game) Draw(seat int, verbose bool) (*Card, bool) {
	p := g.Players[seat]
	c, ok := p.Draw()
	if !ok {
		g.publish(rules.NewEvent(rules.EventDrewFromEmpty, seat, ""))
		g.narrate(verbose, "drew from an empty deck", zap.String("player", p.Name))
		return nil, false
	}
	g.publishCard(rules.EventDrawCard, seat, c, 1)
	g.narrate(verbose, "card drawn",
		zap.String("player", p.Name),
		zap.String("card", c.Name),
	)
	return c, true
}

// AddMana adds mana to a player's pool.
func (g *Game) AddMana(seat int, t mana.ManaType, amount int, verbose bool) {
	if amount <= 0 {
		return
	}
	g.Players[seat].AddMana(t, amount)
	evt := rules.NewEventWithAmount(rules.EventManaAdded, seat, "", amount)
	evt.SourceName = string(t)
	g.publish(evt)
	g.narrate(verbose, "mana added",
		zap.String("player", g.Players[seat].Name),
		zap.String("mana", mana.ColorName(t)),
		zap.Int("amount", amount),
	)
}

// PayGenericDebt spends mana of type t against seat's generic debt.
func (g *Game) PayGenericDebt(seat int, t mana.ManaType, verbose bool) {
	p := g.Players[seat]
	before := p.GenericDebt
	p.PayGenericDebt(t)
	if paid := before - p.GenericDebt; paid > 0 {
		evt := rules.NewEventWithAmount(rules.EventManaPaid, seat, "", paid)
		evt.SourceName = string(t)
		g.publish(evt)
		g.narrate(verbose, "generic debt paid",
			zap.String("player", p.Name),
			zap.String("mana", mana.ColorName(t)),
			zap.Int("paid", paid),
			zap.Int("remaining", p.GenericDebt),
		)
	}
}

// LoseLife makes seat lose life. source may be nil.
func (g *Game) LoseLife(seat, amount int, source *Card, verbose bool) {
	if amount <= 0 {
		return
	}
	p := g.Players[seat]
	p.LoseLife(amount)
	evt := rules.NewEventWithAmount(rules.EventLostLife, seat, "", amount)
	if source != nil {
		evt.SourceID = source.ID.String()
		evt.SourceName = source.Name
	}
	g.publish(evt)
	g.narrate(verbose, "life lost",
		zap.String("player", p.Name),
		zap.String("source", evt.SourceName),
		zap.Int("amount", amount),
		zap.Int("life", p.Life),
	)
}

// GainLife makes seat gain life.
func (g *Game) GainLife(seat, amount int, verbose bool) {
	if amount <= 0 {
		return
	}
	p := g.Players[seat]
	p.GainLife(amount)
	g.publish(rules.NewEventWithAmount(rules.EventGainedLife, seat, "", amount))
	g.narrate(verbose, "life gained",
		zap.String("player", p.Name),
		zap.Int("amount", amount),
		zap.Int("life", p.Life),
	)
}

// UseTappedAbility taps an untapped permanent and runs its index-th tapped
// ability. It does nothing and returns false if the card is tapped or not on
// the battlefield. An index outside the ability list panics.
func (g *Game) UseTappedAbility(c *Card, index int, verbose bool) bool {
	if c.Tapped || !g.OnBattlefield(c) {
		return false
	}
	if index < 0 || index >= len(c.TappedAbilities) {
		panic(fmt.Sprintf("game: %s has no tapped ability %d", c.Name, index))
	}
	c.Tapped = true
	owner := g.owners[c.ID]
	g.publishCard(rules.EventActivatedAbility, owner, c, index)
	g.narrate(verbose, "tapped for ability",
		zap.String("player", g.Players[owner].Name),
		zap.String("card", c.Name),
		zap.Int("ability", index),
	)
	c.TappedAbilities[index](g, owner, c)
	return true
}

// UntapAll untaps every permanent owned by seat.
func (g *Game) UntapAll(seat int, verbose bool) {
	untapped := 0
	for _, c := range g.Battlefield {
		if g.owners[c.ID] == seat && c.Tapped {
			c.Tapped = false
			untapped++
		}
	}
	g.narrate(verbose, "permanents untapped",
		zap.String("player", g.Players[seat].Name),
		zap.Int("count", untapped),
	)
}
