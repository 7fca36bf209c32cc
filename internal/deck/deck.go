// Package deck reads Commander deck lists from YAML.
package deck

import (
	"errors"
	"fmt"
	"os"

	"github.com/magefree/commander-go/internal/cardpool"
	"github.com/magefree/commander-go/internal/game"
	"gopkg.in/yaml.v3"
)

// ErrDeckNotFound is returned when a named deck is missing from a file.
var ErrDeckNotFound = errors.New("deck not found")

// File is the top-level YAML structure.
type File struct {
	Decks []Deck `yaml:"decks"`
}

// Deck is one deck list: its commanders and the rest of the cards.
type Deck struct {
	Name       string      `yaml:"name"`
	Commanders []string    `yaml:"commanders"`
	Cards      []CardEntry `yaml:"cards"`
}

// CardEntry is a card name and how many copies the deck runs.
type CardEntry struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// Parse decodes a deck file.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}
	for i, d := range f.Decks {
		if d.Name == "" {
			return nil, fmt.Errorf("deck %d has no name", i+1)
		}
		for _, e := range d.Cards {
			if e.Count < 0 {
				return nil, fmt.Errorf("deck %q: negative count for %q", d.Name, e.Name)
			}
		}
	}
	return &f, nil
}

// Load reads and decodes a deck file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Find returns the deck with the given name.
func (f *File) Find(name string) (Deck, error) {
	for _, d := range f.Decks {
		if d.Name == name {
			return d, nil
		}
	}
	return Deck{}, fmt.Errorf("%w: %q", ErrDeckNotFound, name)
}

// Size returns the number of cards in the deck, commanders included.
func (d Deck) Size() int {
	n := len(d.Commanders)
	for _, e := range d.Cards {
		n += e.copies()
	}
	return n
}

// copies treats a missing count as a single copy.
func (e CardEntry) copies() int {
	if e.Count == 0 {
		return 1
	}
	return e.Count
}

// Build creates fresh card instances for the deck.
func (d Deck) Build() (commanders, cards []*game.Card, err error) {
	for _, name := range d.Commanders {
		c, err := cardpool.Lookup(name)
		if err != nil {
			return nil, nil, fmt.Errorf("deck %q: %w", d.Name, err)
		}
		commanders = append(commanders, c)
	}
	for _, e := range d.Cards {
		for i := 0; i < e.copies(); i++ {
			c, err := cardpool.Lookup(e.Name)
			if err != nil {
				return nil, nil, fmt.Errorf("deck %q: %w", d.Name, err)
			}
			cards = append(cards, c)
		}
	}
	return commanders, cards, nil
}

// NewPlayer builds the deck and seats it as a player.
func (d Deck) NewPlayer(name string) (*game.Player, error) {
	commanders, cards, err := d.Build()
	if err != nil {
		return nil, err
	}
	return game.NewPlayer(name, cards, commanders...), nil
}
