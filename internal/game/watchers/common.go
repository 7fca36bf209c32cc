package watchers

import (
	"maps"

	"github.com/magefree/commander-go/internal/game/rules"
)

// SpellsCastWatcher counts spells cast per seat.
type SpellsCastWatcher struct {
	*rules.BaseWatcher
	spellsCast map[int]int
}

// NewSpellsCastWatcher creates a new spells cast watcher.
func NewSpellsCastWatcher() *SpellsCastWatcher {
	return &SpellsCastWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame, "SpellsCastWatcher"),
		spellsCast:  make(map[int]int),
	}
}

// Watch implements the Watcher interface.
func (w *SpellsCastWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventSpellCast || event.Player == rules.NoPlayer {
		return
	}
	w.spellsCast[event.Player]++
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *SpellsCastWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.spellsCast = make(map[int]int)
}

// GetCount returns the number of spells cast by a seat.
func (w *SpellsCastWatcher) GetCount(seat int) int {
	return w.spellsCast[seat]
}

// Total returns the number of spells cast in the game.
func (w *SpellsCastWatcher) Total() int {
	return sum(w.spellsCast)
}

// Copy creates a copy of this watcher.
func (w *SpellsCastWatcher) Copy() rules.Watcher {
	cp := NewSpellsCastWatcher()
	cp.SetCondition(w.ConditionMet())
	cp.spellsCast = maps.Clone(w.spellsCast)
	return cp
}

// CommanderCastWatcher counts casts from the command zone per commander.
type CommanderCastWatcher struct {
	*rules.BaseWatcher
	casts map[string]int
}

// NewCommanderCastWatcher creates a new commander cast watcher.
func NewCommanderCastWatcher() *CommanderCastWatcher {
	return &CommanderCastWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame, "CommanderCastWatcher"),
		casts:       make(map[string]int),
	}
}

// Watch implements the Watcher interface.
func (w *CommanderCastWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventCommanderCast || event.SourceID == "" {
		return
	}
	w.casts[event.SourceID]++
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *CommanderCastWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.casts = make(map[string]int)
}

// GetCount returns how many times the commander with the given card ID was cast.
func (w *CommanderCastWatcher) GetCount(cardID string) int {
	return w.casts[cardID]
}

// Total returns the number of commander casts in the game.
func (w *CommanderCastWatcher) Total() int {
	return sum(w.casts)
}

// Copy creates a copy of this watcher.
func (w *CommanderCastWatcher) Copy() rules.Watcher {
	cp := NewCommanderCastWatcher()
	cp.SetCondition(w.ConditionMet())
	cp.casts = maps.Clone(w.casts)
	return cp
}

// CreaturesDiedWatcher tracks creatures put into the graveyard from the battlefield.
type CreaturesDiedWatcher struct {
	*rules.BaseWatcher
	creaturesDiedByOwner map[int]int
}

// NewCreaturesDiedWatcher creates a new creatures died watcher.
func NewCreaturesDiedWatcher() *CreaturesDiedWatcher {
	return &CreaturesDiedWatcher{
		BaseWatcher:          rules.NewBaseWatcher(rules.WatcherScopeGame, "CreaturesDiedWatcher"),
		creaturesDiedByOwner: make(map[int]int),
	}
}

// Watch implements the Watcher interface.
func (w *CreaturesDiedWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventCreatureDied {
		return
	}
	w.creaturesDiedByOwner[event.Player]++
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *CreaturesDiedWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.creaturesDiedByOwner = make(map[int]int)
}

// GetAmountByOwner returns the number of creatures that died for an owner.
func (w *CreaturesDiedWatcher) GetAmountByOwner(seat int) int {
	return w.creaturesDiedByOwner[seat]
}

// GetTotalAmount returns the total number of creatures that died.
func (w *CreaturesDiedWatcher) GetTotalAmount() int {
	return sum(w.creaturesDiedByOwner)
}

// Copy creates a copy of this watcher.
func (w *CreaturesDiedWatcher) Copy() rules.Watcher {
	cp := NewCreaturesDiedWatcher()
	cp.SetCondition(w.ConditionMet())
	cp.creaturesDiedByOwner = maps.Clone(w.creaturesDiedByOwner)
	return cp
}

// LifeLostWatcher tracks life lost per seat during the current turn.
type LifeLostWatcher struct {
	*rules.BaseWatcher
	lifeLost map[int]int
}

// NewLifeLostWatcher creates a new turn-scoped life lost watcher.
func NewLifeLostWatcher() *LifeLostWatcher {
	return &LifeLostWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeTurn, "LifeLostWatcher"),
		lifeLost:    make(map[int]int),
	}
}

// Watch implements the Watcher interface.
func (w *LifeLostWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventLostLife || event.Amount <= 0 {
		return
	}
	w.lifeLost[event.Player] += event.Amount
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *LifeLostWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.lifeLost = make(map[int]int)
}

// GetLifeLost returns the life a seat lost this turn.
func (w *LifeLostWatcher) GetLifeLost(seat int) int {
	return w.lifeLost[seat]
}

// Copy creates a copy of this watcher.
func (w *LifeLostWatcher) Copy() rules.Watcher {
	cp := NewLifeLostWatcher()
	cp.SetCondition(w.ConditionMet())
	cp.lifeLost = maps.Clone(w.lifeLost)
	return cp
}

// CardsDrawnWatcher counts cards drawn per seat.
type CardsDrawnWatcher struct {
	*rules.BaseWatcher
	drawn map[int]int
}

// NewCardsDrawnWatcher creates a new cards drawn watcher.
func NewCardsDrawnWatcher() *CardsDrawnWatcher {
	return &CardsDrawnWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeGame, "CardsDrawnWatcher"),
		drawn:       make(map[int]int),
	}
}

// Watch implements the Watcher interface.
func (w *CardsDrawnWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventDrawCard {
		return
	}
	w.drawn[event.Player]++
	w.SetCondition(true)
}

// Reset clears the watcher's state.
func (w *CardsDrawnWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.drawn = make(map[int]int)
}

// GetCount returns the number of cards a seat drew.
func (w *CardsDrawnWatcher) GetCount(seat int) int {
	return w.drawn[seat]
}

// Total returns the number of cards drawn in the game.
func (w *CardsDrawnWatcher) Total() int {
	return sum(w.drawn)
}

// Copy creates a copy of this watcher.
func (w *CardsDrawnWatcher) Copy() rules.Watcher {
	cp := NewCardsDrawnWatcher()
	cp.SetCondition(w.ConditionMet())
	cp.drawn = maps.Clone(w.drawn)
	return cp
}

// Standard returns the watchers every game registers.
func Standard() []rules.Watcher {
	return []rules.Watcher{
		NewSpellsCastWatcher(),
		NewCommanderCastWatcher(),
		NewCreaturesDiedWatcher(),
		NewLifeLostWatcher(),
		NewCardsDrawnWatcher(),
	}
}

func sum[K comparable](counts map[K]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}
