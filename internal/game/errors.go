package game

import "errors"

var (
	// ErrNotEnoughPlayers is returned by NewGame for fewer than two players.
	ErrNotEnoughPlayers = errors.New("a game needs at least two players")
	// ErrGameStarted is returned when Start is called twice.
	ErrGameStarted = errors.New("game already started")
	// ErrInvalidCardRef is returned when a CardRef does not point at a card.
	ErrInvalidCardRef = errors.New("invalid card reference")
	// ErrCannotAfford is returned by PlayCard when the pool cannot pay the cost.
	ErrCannotAfford = errors.New("cannot afford card")
	// ErrLandAlreadyPlayed is returned when a second land is played in a turn.
	ErrLandAlreadyPlayed = errors.New("land already played this turn")
	// ErrInvalidOrderIndex is returned for a damage assignment order outside 0..n!-1.
	ErrInvalidOrderIndex = errors.New("damage assignment order index out of range")
	// ErrIllegalDamageAssignment is returned when combat damage is not assigned
	// lethal-before-next or does not use the attacker's full power.
	ErrIllegalDamageAssignment = errors.New("illegal damage assignment")
)
