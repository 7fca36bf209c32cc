package mana

import "strings"

// Identity is a set of colors.
type Identity uint8

var colorBits = map[ManaType]Identity{
	ManaWhite: 1 << 0,
	ManaBlue:  1 << 1,
	ManaBlack: 1 << 2,
	ManaRed:   1 << 3,
	ManaGreen: 1 << 4,
}

var colorNames = map[ManaType]string{
	ManaWhite: "White",
	ManaBlue:  "Blue",
	ManaBlack: "Black",
	ManaRed:   "Red",
	ManaGreen: "Green",
}

// IdentityOf returns the identity containing the given colors. Non-colors are ignored.
func IdentityOf(colors ...ManaType) Identity {
	var id Identity
	for _, c := range colors {
		id = id.With(c)
	}
	return id
}

// With returns id plus c.
func (id Identity) With(c ManaType) Identity {
	return id | colorBits[c]
}

// Has reports whether c is in id.
func (id Identity) Has(c ManaType) bool {
	bit, ok := colorBits[c]
	return ok && id&bit != 0
}

// Union returns the colors in either identity.
func (id Identity) Union(other Identity) Identity {
	return id | other
}

// SubsetOf reports whether every color of id is also in other.
func (id Identity) SubsetOf(other Identity) bool {
	return id&^other == 0
}

// IsColorless reports whether id has no colors.
func (id Identity) IsColorless() bool {
	return id == 0
}

// Colors returns the colors of id in WUBRG order.
func (id Identity) Colors() []ManaType {
	out := make([]ManaType, 0, 5)
	for _, c := range Colors {
		if id.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// String returns e.g. "Blue/Red", or "Colorless".
func (id Identity) String() string {
	if id.IsColorless() {
		return "Colorless"
	}
	names := make([]string, 0, 5)
	for _, c := range id.Colors() {
		names = append(names, colorNames[c])
	}
	return strings.Join(names, "/")
}

// ColorName returns the display name of a color, e.g. "Green".
func ColorName(c ManaType) string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	if c == ManaColorless {
		return "Colorless"
	}
	return string(c)
}

var basicLandColors = map[string]ManaType{
	"Plains":   ManaWhite,
	"Island":   ManaBlue,
	"Swamp":    ManaBlack,
	"Mountain": ManaRed,
	"Forest":   ManaGreen,
}

// BasicLandIdentity returns the colors implied by basic land subtypes.
func BasicLandIdentity(subtypes []string) Identity {
	var id Identity
	for _, st := range subtypes {
		if c, ok := basicLandColors[st]; ok {
			id = id.With(c)
		}
	}
	return id
}
