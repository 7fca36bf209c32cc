package rules

import (
	"testing"
)

func TestEventBusSubscribeTyped(t *testing.T) {
	bus := NewEventBus()

	spellCastCount := 0
	lifeLostCount := 0

	handle1 := bus.SubscribeTyped(EventSpellCast, func(e Event) {
		spellCastCount++
	})
	bus.SubscribeTyped(EventLostLife, func(e Event) {
		lifeLostCount += e.Amount
	})

	bus.Publish(NewEvent(EventSpellCast, 0, "card1"))
	bus.Publish(NewEventWithAmount(EventLostLife, 1, "card1", 3))
	if spellCastCount != 1 {
		t.Fatalf("expected spell cast count 1, got %d", spellCastCount)
	}
	if lifeLostCount != 3 {
		t.Fatalf("expected 3 life lost, got %d", lifeLostCount)
	}

	bus.Unsubscribe(handle1)
	bus.Publish(NewEvent(EventSpellCast, 0, "card2"))
	if spellCastCount != 1 {
		t.Fatalf("expected spell cast count still 1 after unsubscribe, got %d", spellCastCount)
	}
}

func TestEventBusSubscribeAll(t *testing.T) {
	bus := NewEventBus()

	allEventCount := 0
	handle := bus.Subscribe(func(e Event) {
		allEventCount++
	})

	bus.Publish(NewEvent(EventSpellCast, 0, "card1"))
	bus.Publish(NewEvent(EventGainedLife, 1, ""))
	bus.Publish(NewEvent(EventZoneChange, 2, "card2"))

	if allEventCount != 3 {
		t.Fatalf("expected all event count 3, got %d", allEventCount)
	}

	bus.Unsubscribe(handle)
	bus.Publish(NewEvent(EventSpellCast, 0, "card3"))
	if allEventCount != 3 {
		t.Fatalf("expected all event count still 3 after unsubscribe, got %d", allEventCount)
	}
}

func TestEventBusNilListener(t *testing.T) {
	bus := NewEventBus()
	if h := bus.Subscribe(nil); h != -1 {
		t.Fatalf("expected -1 handle for nil listener, got %d", h)
	}
	if h := bus.SubscribeTyped(EventGameOver, nil); h != -1 {
		t.Fatalf("expected -1 handle for nil callback, got %d", h)
	}
}

func TestNewEventDefaults(t *testing.T) {
	evt := NewEventWithAmount(EventCommanderDamage, 2, "cmd", 7)
	if evt.Target != NoPlayer {
		t.Fatalf("expected no target seat, got %d", evt.Target)
	}
	if evt.Player != 2 || evt.Amount != 7 || evt.SourceID != "cmd" {
		t.Fatalf("unexpected event fields: %+v", evt)
	}
}
