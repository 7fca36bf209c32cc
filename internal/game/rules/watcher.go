package rules

import (
	"sync"
)

// WatcherScope defines when a watcher's tracked state is cleared.
type WatcherScope int

const (
	// WatcherScopeGame tracks events for the entire game.
	WatcherScopeGame WatcherScope = iota
	// WatcherScopeTurn tracks events for the current turn only.
	WatcherScopeTurn
)

// String returns the string representation of the watcher scope.
func (ws WatcherScope) String() string {
	switch ws {
	case WatcherScopeGame:
		return "GAME"
	case WatcherScopeTurn:
		return "TURN"
	default:
		return "UNKNOWN"
	}
}

// Watcher observes game events and accumulates per-game statistics.
type Watcher interface {
	// Watch is called for every event published on the game's bus.
	Watch(event Event)

	// Reset clears tracked state.
	Reset()

	// ConditionMet returns true once the watcher has seen a matching event.
	ConditionMet() bool

	GetScope() WatcherScope

	// GetKey returns a unique key for this watcher instance.
	GetKey() string

	Copy() Watcher
}

// BaseWatcher provides the bookkeeping shared by all watchers.
type BaseWatcher struct {
	scope     WatcherScope
	condition bool
	key       string
}

// NewBaseWatcher creates a new base watcher with the specified scope.
func NewBaseWatcher(scope WatcherScope, key string) *BaseWatcher {
	return &BaseWatcher{
		scope: scope,
		key:   key,
	}
}

// GetScope returns the watcher's scope.
func (bw *BaseWatcher) GetScope() WatcherScope {
	return bw.scope
}

// ConditionMet returns whether the condition has been met.
func (bw *BaseWatcher) ConditionMet() bool {
	return bw.condition
}

// SetCondition sets the condition flag.
func (bw *BaseWatcher) SetCondition(condition bool) {
	bw.condition = condition
}

// Reset clears the condition.
func (bw *BaseWatcher) Reset() {
	bw.condition = false
}

// GetKey returns the unique key for this watcher.
func (bw *BaseWatcher) GetKey() string {
	return bw.key
}

// WatcherRegistry manages watchers for a game.
type WatcherRegistry struct {
	mu       sync.RWMutex
	watchers map[string]Watcher
	order    []string
}

// NewWatcherRegistry creates a new watcher registry.
func NewWatcherRegistry() *WatcherRegistry {
	return &WatcherRegistry{
		watchers: make(map[string]Watcher),
	}
}

// AddWatcher adds a watcher to the registry, replacing any watcher with the same key.
func (wr *WatcherRegistry) AddWatcher(watcher Watcher) {
	if watcher == nil {
		return
	}

	wr.mu.Lock()
	defer wr.mu.Unlock()

	key := watcher.GetKey()
	if _, exists := wr.watchers[key]; !exists {
		wr.order = append(wr.order, key)
	}
	wr.watchers[key] = watcher
}

// RemoveWatcher removes a watcher from the registry.
func (wr *WatcherRegistry) RemoveWatcher(key string) {
	wr.mu.Lock()
	defer wr.mu.Unlock()

	if _, ok := wr.watchers[key]; !ok {
		return
	}
	delete(wr.watchers, key)
	for i, k := range wr.order {
		if k == key {
			wr.order = append(wr.order[:i], wr.order[i+1:]...)
			break
		}
	}
}

// GetWatcher retrieves a watcher by key.
func (wr *WatcherRegistry) GetWatcher(key string) Watcher {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	return wr.watchers[key]
}

// GetAllWatchers returns all registered watchers in registration order.
func (wr *WatcherRegistry) GetAllWatchers() []Watcher {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	result := make([]Watcher, 0, len(wr.order))
	for _, key := range wr.order {
		result = append(result, wr.watchers[key])
	}
	return result
}

// ResetWatchersByScope resets all watchers for a given scope.
func (wr *WatcherRegistry) ResetWatchersByScope(scope WatcherScope) {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	for _, key := range wr.order {
		if w := wr.watchers[key]; w.GetScope() == scope {
			w.Reset()
		}
	}
}

// NotifyWatchers notifies all watchers of an event; watchers filter internally.
func (wr *WatcherRegistry) NotifyWatchers(event Event) {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	for _, key := range wr.order {
		wr.watchers[key].Watch(event)
	}
}

// Copy returns a registry holding deep copies of every watcher.
func (wr *WatcherRegistry) Copy() *WatcherRegistry {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	cp := NewWatcherRegistry()
	for _, key := range wr.order {
		cp.order = append(cp.order, key)
		cp.watchers[key] = wr.watchers[key].Copy()
	}
	return cp
}
