package rules

import (
	"errors"
	"fmt"
	"strings"

	"github.com/magefree/commander-go/internal/game/mana"
)

// ErrDeckValidation is wrapped by every *DeckValidationError.
var ErrDeckValidation = errors.New("deck validation failed")

// IdentityCard is the part of a card the color-identity check looks at.
type IdentityCard struct {
	Name     string
	Identity mana.Identity
}

// DeckSubmission is one player's commanders and deck.
type DeckSubmission struct {
	Player     int
	PlayerName string
	Commanders []IdentityCard
	Cards      []IdentityCard
}

// CommanderIdentity returns the union of the commanders' color identities.
func (d DeckSubmission) CommanderIdentity() mana.Identity {
	var id mana.Identity
	for _, c := range d.Commanders {
		id = id.Union(c.Identity)
	}
	return id
}

// Violation describes one card whose identity falls outside its commanders'.
type Violation struct {
	Player       int
	PlayerName   string
	Card         string
	CardIdentity mana.Identity
	Allowed      mana.Identity
}

// DeckValidationError lists every offending card across all decks.
type DeckValidationError struct {
	Violations []Violation
}

func (e *DeckValidationError) Error() string {
	var b strings.Builder
	b.WriteString("Deck Validation Failed: ")
	for i, v := range e.Violations {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%s (player %d %s) has identity %s outside commander identity %s",
			v.Card, v.Player, v.PlayerName, v.CardIdentity, v.Allowed)
	}
	return b.String()
}

func (e *DeckValidationError) Unwrap() error {
	return ErrDeckValidation
}

// CardNames returns the offending card names in the order found.
func (e *DeckValidationError) CardNames() []string {
	names := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		names = append(names, v.Card)
	}
	return names
}

// ValidateColorIdentity checks that every card's color identity is a subset of
// its player's commander identity. All violations are collected before failing.
func ValidateColorIdentity(decks []DeckSubmission) error {
	var violations []Violation
	for _, d := range decks {
		allowed := d.CommanderIdentity()
		for _, c := range d.Cards {
			if c.Identity.SubsetOf(allowed) {
				continue
			}
			violations = append(violations, Violation{
				Player:       d.Player,
				PlayerName:   d.PlayerName,
				Card:         c.Name,
				CardIdentity: c.Identity,
				Allowed:      allowed,
			})
		}
	}
	if len(violations) == 0 {
		return nil
	}
	return &DeckValidationError{Violations: violations}
}
