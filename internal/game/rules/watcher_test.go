package rules

import (
	"testing"
)

// spellWatcher flags any spell cast.
type spellWatcher struct {
	*BaseWatcher
	seen int
}

func newSpellWatcher(scope WatcherScope, key string) *spellWatcher {
	return &spellWatcher{BaseWatcher: NewBaseWatcher(scope, key)}
}

func (w *spellWatcher) Watch(event Event) {
	if event.Type == EventSpellCast {
		w.seen++
		w.SetCondition(true)
	}
}

func (w *spellWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.seen = 0
}

func (w *spellWatcher) Copy() Watcher {
	cp := newSpellWatcher(w.GetScope(), w.GetKey())
	cp.seen = w.seen
	cp.SetCondition(w.ConditionMet())
	return cp
}

func TestWatcherRegistry(t *testing.T) {
	registry := NewWatcherRegistry()

	gameWatcher := newSpellWatcher(WatcherScopeGame, "game")
	turnWatcher := newSpellWatcher(WatcherScopeTurn, "turn")
	registry.AddWatcher(gameWatcher)
	registry.AddWatcher(turnWatcher)
	registry.AddWatcher(nil)

	if registry.GetWatcher("game") == nil {
		t.Fatal("should retrieve game watcher")
	}
	if n := len(registry.GetAllWatchers()); n != 2 {
		t.Fatalf("expected 2 watchers, got %d", n)
	}

	registry.NotifyWatchers(NewEvent(EventSpellCast, 0, "spell1"))
	registry.NotifyWatchers(NewEvent(EventLandPlayed, 0, "land1"))
	if !gameWatcher.ConditionMet() || gameWatcher.seen != 1 {
		t.Fatalf("game watcher should have seen one spell, got %d", gameWatcher.seen)
	}

	registry.ResetWatchersByScope(WatcherScopeTurn)
	if turnWatcher.ConditionMet() {
		t.Fatal("turn watcher should be reset")
	}
	if !gameWatcher.ConditionMet() {
		t.Fatal("game watcher must survive a turn reset")
	}

	registry.RemoveWatcher("game")
	if registry.GetWatcher("game") != nil {
		t.Fatal("watcher should be removed")
	}
}

func TestWatcherRegistryCopyIsIndependent(t *testing.T) {
	registry := NewWatcherRegistry()
	w := newSpellWatcher(WatcherScopeGame, "spells")
	registry.AddWatcher(w)
	registry.NotifyWatchers(NewEvent(EventSpellCast, 1, "spell"))

	cp := registry.Copy()
	registry.NotifyWatchers(NewEvent(EventSpellCast, 1, "spell"))

	copied := cp.GetWatcher("spells").(*spellWatcher)
	if copied.seen != 1 {
		t.Fatalf("copy should not observe later events, got %d", copied.seen)
	}
	if w.seen != 2 {
		t.Fatalf("original should have seen 2 spells, got %d", w.seen)
	}
}

func TestWatcherScopeString(t *testing.T) {
	if WatcherScopeTurn.String() != "TURN" || WatcherScope(9).String() != "UNKNOWN" {
		t.Fatal("unexpected scope names")
	}
}
