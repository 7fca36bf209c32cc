package mana

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var symbolPattern = regexp.MustCompile(`\{([^}]+)\}`)

// ManaCost represents a parsed mana cost. All amounts are non-negative.
type ManaCost struct {
	Generic   int
	White     int
	Blue      int
	Black     int
	Red       int
	Green     int
	Colorless int
}

// NewCost builds a cost from a symbol → amount mapping.
func NewCost(amounts map[ManaType]int) ManaCost {
	var mc ManaCost
	for t, n := range amounts {
		if n < 0 {
			n = 0
		}
		switch t {
		case ManaGeneric:
			mc.Generic += n
		case ManaWhite:
			mc.White += n
		case ManaBlue:
			mc.Blue += n
		case ManaBlack:
			mc.Black += n
		case ManaRed:
			mc.Red += n
		case ManaGreen:
			mc.Green += n
		case ManaColorless:
			mc.Colorless += n
		}
	}
	return mc
}

// ParseCost parses a mana cost string (e.g., "{1}{G}", "{2}{R}{R}", "{C}").
func ParseCost(costStr string) (ManaCost, error) {
	var cost ManaCost
	if strings.TrimSpace(costStr) == "" {
		return cost, nil
	}

	matches := symbolPattern.FindAllStringSubmatch(costStr, -1)
	if len(matches) == 0 {
		return cost, fmt.Errorf("no mana symbols in %q", costStr)
	}

	for _, match := range matches {
		symbol := strings.ToUpper(strings.TrimSpace(match[1]))

		switch symbol {
		case "W":
			cost.White++
		case "U":
			cost.Blue++
		case "B":
			cost.Black++
		case "R":
			cost.Red++
		case "G":
			cost.Green++
		case "C":
			cost.Colorless++
		default:
			num, err := strconv.Atoi(symbol)
			if err != nil || num < 0 {
				return ManaCost{}, fmt.Errorf("unknown mana symbol: {%s}", symbol)
			}
			cost.Generic += num
		}
	}

	return cost, nil
}

// MustParseCost is ParseCost for static card definitions.
func MustParseCost(costStr string) ManaCost {
	cost, err := ParseCost(costStr)
	if err != nil {
		panic(err)
	}
	return cost
}

// Amount returns the required amount for a symbol.
func (mc ManaCost) Amount(t ManaType) int {
	switch t {
	case ManaGeneric:
		return mc.Generic
	case ManaWhite:
		return mc.White
	case ManaBlue:
		return mc.Blue
	case ManaBlack:
		return mc.Black
	case ManaRed:
		return mc.Red
	case ManaGreen:
		return mc.Green
	case ManaColorless:
		return mc.Colorless
	}
	return 0
}

// ManaValue returns the total amount of mana in the cost.
func (mc ManaCost) ManaValue() int {
	return mc.Generic + mc.White + mc.Blue + mc.Black + mc.Red + mc.Green + mc.Colorless
}

// ColorIdentity returns the colors with a positive amount in the cost.
func (mc ManaCost) ColorIdentity() Identity {
	var id Identity
	for _, c := range Colors {
		if mc.Amount(c) > 0 {
			id = id.With(c)
		}
	}
	return id
}

// String renders the cost in {N}{W}{U}{B}{R}{G}{C} order.
func (mc ManaCost) String() string {
	var b strings.Builder
	if mc.Generic > 0 {
		fmt.Fprintf(&b, "{%d}", mc.Generic)
	}
	for _, t := range PoolTypes {
		for i := 0; i < mc.Amount(t); i++ {
			b.WriteString("{" + t.Symbol() + "}")
		}
	}
	if b.Len() == 0 {
		return "{0}"
	}
	return b.String()
}
