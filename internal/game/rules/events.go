package rules

import (
	"sync"
)

// EventType indicates the category of a game event.
type EventType string

const (
	// Turn events
	EventGameStarted   EventType = "GAME_STARTED"
	EventBeginTurn     EventType = "BEGIN_TURN"
	EventPhaseChanged  EventType = "PHASE_CHANGED"
	EventEmptyManaPool EventType = "EMPTY_MANA_POOL"

	// Card events
	EventDrawCard        EventType = "DRAW_CARD"
	EventDrewFromEmpty   EventType = "DREW_FROM_EMPTY"
	EventLibraryShuffled EventType = "LIBRARY_SHUFFLED"
	EventZoneChange      EventType = "ZONE_CHANGE"

	// Land/Spell/Ability events
	EventLandPlayed       EventType = "LAND_PLAYED"
	EventSpellCast        EventType = "SPELL_CAST"
	EventCommanderCast    EventType = "COMMANDER_CAST"
	EventActivatedAbility EventType = "ACTIVATED_ABILITY"
	EventManaAdded        EventType = "MANA_ADDED"
	EventManaPaid         EventType = "MANA_PAID"
	EventCreatedToken     EventType = "CREATED_TOKEN"

	// Life/Damage events
	EventDamagedPlayer   EventType = "DAMAGED_PLAYER"
	EventCommanderDamage EventType = "COMMANDER_DAMAGE"
	EventDamagedCreature EventType = "DAMAGED_CREATURE"
	EventLostLife        EventType = "LOST_LIFE"
	EventGainedLife      EventType = "GAINED_LIFE"

	// Combat events
	EventAttackerDeclared EventType = "ATTACKER_DECLARED"
	EventBlockerDeclared  EventType = "BLOCKER_DECLARED"
	EventCreatureDied     EventType = "CREATURE_DIED"

	// Game end events
	EventPlayerLost        EventType = "PLAYER_LOST"
	EventGameOver          EventType = "GAME_OVER"
	EventStateBasedActions EventType = "STATE_BASED_ACTIONS"
)

// NoPlayer marks an event field that does not refer to a seat.
const NoPlayer = -1

// Event represents a state change that other subsystems may react to.
type Event struct {
	Type       EventType
	Player     int    // seat that caused or owns the event
	Target     int    // seat affected, NoPlayer when unused
	SourceID   string // card ID of the source
	SourceName string
	Amount     int
	Flag       bool   // combat damage, commander cast, token, etc.
	Zone       string // destination zone for zone changes
	Turn       int
}

// NewEvent creates a new event with common fields populated.
func NewEvent(eventType EventType, player int, sourceID string) Event {
	return Event{
		Type:     eventType,
		Player:   player,
		Target:   NoPlayer,
		SourceID: sourceID,
	}
}

// NewEventWithAmount creates a new event with an amount value.
func NewEventWithAmount(eventType EventType, player int, sourceID string, amount int) Event {
	evt := NewEvent(eventType, player, sourceID)
	evt.Amount = amount
	return evt
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus provides a synchronous publish/subscribe implementation with type filtering.
type EventBus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener
	typedListeners map[EventType][]TypedListener
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle,
// whether it was registered with Subscribe or SubscribeTyped.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	delete(bus.listeners, handle)
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
// Listeners must not publish re-entrantly while holding game locks.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, listener := range bus.listeners {
		listener(event)
	}
	for _, listener := range bus.typedListeners[event.Type] {
		listener.Callback(event)
	}
}
