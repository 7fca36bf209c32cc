// Package cardpool holds the playable card content: basic lands, the staple
// Commander cards and a handful of vanilla creatures.
package cardpool

import (
	"errors"
	"fmt"
	"sort"

	"github.com/magefree/commander-go/internal/game"
)

// ErrUnknownCard is returned by Lookup for names missing from the registry.
var ErrUnknownCard = errors.New("unknown card")

// Registry maps card names to their constructors. Every call returns a new
// card with its own ID.
var Registry = map[string]func() *game.Card{
	"Plains":   Plains,
	"Island":   Island,
	"Swamp":    Swamp,
	"Mountain": Mountain,
	"Forest":   Forest,

	"Sol Ring":              SolRing,
	"Arcane Signet":         ArcaneSignet,
	"Command Tower":         CommandTower,
	"Cultivate":             Cultivate,
	"Swords to Plowshares":  SwordsToPlowshares,
	"Cyclonic Rift":         CyclonicRift,
	"Rhystic Study":         RhysticStudy,
	"Smothering Tithe":      SmotheringTithe,
	"Dockside Extortionist": DocksideExtortionist,
	"Demonic Tutor":         DemonicTutor,

	"Grizzly Bears":             GrizzlyBears,
	"Hill Giant":                HillGiant,
	"Craw Wurm":                 CrawWurm,
	"Yargle, Glutton of Urborg": Yargle,
	"Isamaru, Hound of Konda":   Isamaru,
	"Zurgo Bellstriker":         ZurgoBellstriker,
}

// Lookup returns a new instance of the named card.
func Lookup(name string) (*game.Card, error) {
	ctor, ok := Registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCard, name)
	}
	return ctor(), nil
}

// MustLookup is like Lookup but panics on unknown names.
func MustLookup(name string) *game.Card {
	c, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return c
}

// Names returns every registered card name, sorted.
func Names() []string {
	names := make([]string, 0, len(Registry))
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
